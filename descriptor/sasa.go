/*
 * sasa.go, part of gostates.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package descriptor

import (
	"math"

	chem "github.com/rmera/gostates"
	v3 "github.com/rmera/gostates/v3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

//sasa is the solvent-accessible surface area of the whole structure, in nm^2, obtained with the
//Shrake-Rupley algorithm: each atom is covered with points at its van der Waals radius plus
//the probe radius, and the fraction of points not buried in another such sphere gives its
//accessible area.
type sasa struct {
	probe  float64
	sphere [][3]float64
	top    chem.Atomer
	radii  []float64
}

func newSASA(traj *chem.Trajectory, O *Options) (*sasa, error) {
	if O.ProbeRadius < 0 {
		return nil, chem.Errorf(chem.InputError, "newSASA", "negative probe radius %g", O.ProbeRadius)
	}
	n := O.SpherePoints
	if n <= 0 {
		n = DefaultOptions().SpherePoints
	}
	S := &sasa{probe: O.ProbeRadius, sphere: GoldenSpiral(n), top: traj.Topology(0)}
	var err error
	S.radii, err = S.expandedRadii(S.top)
	if err != nil {
		return nil, decorate(err, "newSASA")
	}
	return S, nil
}

func (S *sasa) expandedRadii(top chem.Atomer) ([]float64, error) {
	r, err := chem.VdwRadii(top)
	if err != nil {
		return nil, err
	}
	for i := range r {
		r[i] += S.probe
	}
	return r, nil
}

func (S *sasa) columns() []string { return []string{"sasa"} }

func (S *sasa) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	radii := S.radii
	if top != S.top {
		var err error
		radii, err = S.expandedRadii(top)
		if err != nil {
			return decorate(err, "sasa")
		}
	}
	row[0] = ShrakeRupley(f.Coords, radii, S.sphere)
	return nil
}

//GoldenSpiral returns n points distributed almost uniformly over the unit sphere.
func GoldenSpiral(n int) [][3]float64 {
	ret := make([][3]float64, n)
	inc := math.Pi * (3 - math.Sqrt(5))
	for k := range ret {
		y := 1 - (2*float64(k)+1)/float64(n)
		r := math.Sqrt(1 - y*y)
		phi := float64(k) * inc
		ret[k] = [3]float64{math.Cos(phi) * r, y, math.Sin(phi) * r}
	}
	return ret
}

//ShrakeRupley returns the total accessible area of the spheres centered in coords, with the
//given radii, using the points in sphere (on the unit sphere) to sample each surface.
func ShrakeRupley(coords *v3.Matrix, radii []float64, sphere [][3]float64) float64 {
	n := coords.NVecs()
	pts := make(atomPoints, n)
	maxr := 0.0
	for i := range pts {
		pts[i] = atomPoint{idx: i, x: [3]float64{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)}}
		maxr = math.Max(maxr, radii[i])
	}
	centers := make([][3]float64, n)
	for i, p := range pts {
		centers[i] = p.x
	}
	tree := kdtree.New(pts, false)
	var total float64
	neigh := make([]int, 0, 64)
	for i := 0; i < n; i++ {
		ri := radii[i]
		//every sphere that can overlap this one.
		cut := ri + maxr
		keep := kdtree.NewDistKeeper(cut * cut)
		tree.NearestSet(keep, atomPoint{idx: i, x: centers[i]})
		neigh = neigh[:0]
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			j := c.Comparable.(atomPoint).idx
			if j == i {
				continue
			}
			lim := ri + radii[j]
			if c.Dist < lim*lim {
				neigh = append(neigh, j)
			}
		}
		accessible := 0
		for _, s := range sphere {
			p := [3]float64{centers[i][0] + ri*s[0], centers[i][1] + ri*s[1], centers[i][2] + ri*s[2]}
			buried := false
			for _, j := range neigh {
				if sqDist(p, centers[j]) < radii[j]*radii[j] {
					buried = true
					break
				}
			}
			if !buried {
				accessible++
			}
		}
		total += 4 * math.Pi * ri * ri * float64(accessible) / float64(len(sphere))
	}
	return total
}

func sqDist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

//atomPoint is an atom position that remembers the atom's index, as the tree reorders the points.
type atomPoint struct {
	idx int
	x   [3]float64
}

func (p atomPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.x[d] - c.(atomPoint).x[d]
}

func (p atomPoint) Dims() int { return 3 }

//Distance returns the squared euclidean distance.
func (p atomPoint) Distance(c kdtree.Comparable) float64 {
	return sqDist(p.x, c.(atomPoint).x)
}

type atomPoints []atomPoint

func (p atomPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p atomPoints) Len() int                      { return len(p) }
func (p atomPoints) Pivot(d kdtree.Dim) int {
	return atomPlane{Dim: d, atomPoints: p}.Pivot()
}
func (p atomPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

//atomPlane sorts atomPoints along one dimension.
type atomPlane struct {
	kdtree.Dim
	atomPoints
}

func (p atomPlane) Less(i, j int) bool {
	return p.atomPoints[i].x[p.Dim] < p.atomPoints[j].x[p.Dim]
}
func (p atomPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p atomPlane) Slice(start, end int) kdtree.SortSlicer {
	p.atomPoints = p.atomPoints[start:end]
	return p
}
func (p atomPlane) Swap(i, j int) {
	p.atomPoints[i], p.atomPoints[j] = p.atomPoints[j], p.atomPoints[i]
}
