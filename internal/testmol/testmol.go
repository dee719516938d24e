/*
 * testmol.go, part of gostates.
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

//Package testmol builds small synthetic peptides and trajectories for the tests of the other packages.
package testmol

import (
	"math"
	"math/rand"

	chem "github.com/rmera/gostates"
	v3 "github.com/rmera/gostates/v3"
)

//backbone template, in nm, relative to the residue origin.
var template = []struct {
	name, symbol string
	pos          [3]float64
}{
	{"N", "N", [3]float64{0.000, 0.000, 0.000}},
	{"H", "H", [3]float64{-0.030, -0.090, 0.010}},
	{"CA", "C", [3]float64{0.100, 0.100, 0.000}},
	{"C", "C", [3]float64{0.230, 0.050, 0.020}},
	{"O", "O", [3]float64{0.260, -0.070, 0.030}},
}

//Spacing between residue origins along x, in nm.
const Spacing = 0.38

//Peptide returns the topology and coordinates of an extended chain of nres alanine-like
//residues, with N, H, CA, C and O atoms (residue IDs start at 1, chain "A").
func Peptide(nres int) (*chem.Topology, *v3.Matrix) {
	ats := make([]*chem.Atom, 0, nres*len(template))
	coords := v3.Zeros(nres * len(template))
	for r := 0; r < nres; r++ {
		for _, t := range template {
			i := len(ats)
			ats = append(ats, &chem.Atom{Name: t.name, ID: i + 1, MolName: "ALA", MolID: r + 1, Chain: "A", Symbol: t.symbol})
			coords.Set(i, 0, t.pos[0]+Spacing*float64(r))
			coords.Set(i, 1, t.pos[1])
			coords.Set(i, 2, t.pos[2])
		}
	}
	top, _ := chem.NewTopology(ats)
	return top, coords
}

//Jitter returns a copy of coords where every coordinate has been displaced by
//a uniform random amount in [-scale, scale].
func Jitter(coords *v3.Matrix, rng *rand.Rand, scale float64) *v3.Matrix {
	ret := coords.Copy()
	for i := 0; i < ret.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			ret.Set(i, j, ret.At(i, j)+scale*(2*rng.Float64()-1))
		}
	}
	return ret
}

//RotateZ returns a copy of coords rotated by angle radians around the z axis
//and translated by shift.
func RotateZ(coords *v3.Matrix, angle float64, shift [3]float64) *v3.Matrix {
	ret := v3.Zeros(coords.NVecs())
	s, c := math.Sin(angle), math.Cos(angle)
	for i := 0; i < coords.NVecs(); i++ {
		x, y, z := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
		ret.Set(i, 0, c*x-s*y+shift[0])
		ret.Set(i, 1, s*x+c*y+shift[1])
		ret.Set(i, 2, z+shift[2])
	}
	return ret
}

//Trajectory returns a trajectory of nframes jittered copies of a peptide with nres residues.
//Frames [0, nframes/2) are jittered around the extended chain, and the rest around a copy
//of it that has been stretched along y, so the trajectory has two clear states.
func Trajectory(nres, nframes int, seed int64) *chem.Trajectory {
	top, coords := Peptide(nres)
	stretched := coords.Copy()
	for i := 0; i < stretched.NVecs(); i++ {
		stretched.Set(i, 1, 1.8*stretched.At(i, 1)+0.02*float64(i%5))
	}
	rng := rand.New(rand.NewSource(seed))
	frames := make([]*v3.Matrix, nframes)
	for f := range frames {
		base := coords
		if f >= nframes/2 {
			base = stretched
		}
		frames[f] = Jitter(base, rng, 0.004)
	}
	T, _ := chem.NewTrajectory(top, frames)
	return T
}
