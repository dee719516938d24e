/*
 * kmeans.go, part of gostates.
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

//Package cluster partitions the points of the reduced feature space with Lloyd's k-means
//algorithm (with k-means++ seeding), and estimates the number of clusters from the bend
//of the inertia curve.
package cluster

import (
	"math"
	"math/rand"
	"runtime"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Options contains the options for the clustering.
type Options struct {
	NInit   int //restarts, the lowest-inertia one is kept.
	MaxIter int //Lloyd iterations per restart.
	Cpus    int //used by EstimateK.
}

//DefaultOptions returns the usual 10 restarts of at most 300 iterations, on all CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.NInit = 10
	r.MaxIter = 300
	r.Cpus = runtime.NumCPU()
	return r
}

//Model is the result of a clustering.
type Model struct {
	K          int
	Centroids  *mat.Dense //K x D, in the space of the clustered points.
	Labels     []int      //one per point, in [0, K).
	Inertia    float64    //sum of the squared distances of the points to their centroids.
	Iterations int        //Lloyd iterations of the kept restart.
	Reseeds    int        //empty clusters reseeded, over all restarts.
}

//Sizes returns the number of points in each cluster.
func (M *Model) Sizes() []int {
	ret := make([]int, M.K)
	for _, l := range M.Labels {
		ret[l]++
	}
	return ret
}

//KMeans clusters the rows of points in k clusters. Restart r is seeded with seed+r, so
//the result only depends on the input and on seed. If O is nil, DefaultOptions are used.
//It is a ClusteringDegeneracy error to ask for more clusters than distinct points.
func KMeans(points *mat.Dense, k int, seed int64, O *Options) (*Model, error) {
	if O == nil {
		O = DefaultOptions()
	}
	n, d := points.Dims()
	if n == 0 || d == 0 {
		return nil, chem.NewError(chem.InputError, "cluster.KMeans", "no points to cluster")
	}
	if k < 1 || k > n {
		return nil, chem.Errorf(chem.InputError, "cluster.KMeans", "can't make %d clusters out of %d points", k, n)
	}
	if dis := Distinct(points); dis < k {
		return nil, chem.Errorf(chem.ClusteringDegeneracy, "cluster.KMeans", "can't make %d clusters out of %d distinct points", k, dis)
	}
	ninit := O.NInit
	if ninit < 1 {
		ninit = 1
	}
	maxiter := O.MaxIter
	if maxiter < 1 {
		maxiter = DefaultOptions().MaxIter
	}
	var best *Model
	reseeds := 0
	for r := 0; r < ninit; r++ {
		m := lloyd(points, plusplus(points, k, rand.New(rand.NewSource(seed+int64(r)))), maxiter)
		reseeds += m.Reseeds
		//strict, so ties keep the earliest restart.
		if best == nil || m.Inertia < best.Inertia {
			best = m
		}
	}
	best.Reseeds = reseeds
	return best, nil
}

//Distinct returns the number of distinct rows in points.
func Distinct(points *mat.Dense) int {
	n, _ := points.Dims()
	count := 0
	for i := 0; i < n; i++ {
		dup := false
		for j := 0; j < i; j++ {
			if floats.Equal(points.RawRowView(i), points.RawRowView(j)) {
				dup = true
				break
			}
		}
		if !dup {
			count++
		}
	}
	return count
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

//nearest returns the index of the centroid closest to p, the lowest one in case of ties,
//and the squared distance to it.
func nearest(p []float64, C *mat.Dense) (int, float64) {
	k, _ := C.Dims()
	bi, bd := 0, math.Inf(1)
	for c := 0; c < k; c++ {
		if d := sqDist(p, C.RawRowView(c)); d < bd {
			bi, bd = c, d
		}
	}
	return bi, bd
}

//plusplus picks k initial centroids with the k-means++ procedure.
func plusplus(points *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := points.Dims()
	C := mat.NewDense(k, d, nil)
	C.SetRow(0, points.RawRowView(rng.Intn(n)))
	d2 := make([]float64, n)
	for i := range d2 {
		d2[i] = sqDist(points.RawRowView(i), C.RawRowView(0))
	}
	for c := 1; c < k; c++ {
		total := floats.Sum(d2)
		chosen := -1
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, v := range d2 {
				acc += v
				if acc > target && v > 0 {
					chosen = i
					break
				}
			}
			//rounding can leave the target past the last positive weight.
			for i := n - 1; chosen < 0; i-- {
				if d2[i] > 0 {
					chosen = i
				}
			}
		} else {
			chosen = rng.Intn(n)
		}
		C.SetRow(c, points.RawRowView(chosen))
		for i := range d2 {
			d2[i] = math.Min(d2[i], sqDist(points.RawRowView(i), C.RawRowView(c)))
		}
	}
	return C
}

//lloyd runs one k-means from the initial centroids C, which it modifies, until convergence
//or for maxiter iterations. No cluster of the result is empty.
func lloyd(points *mat.Dense, C *mat.Dense, maxiter int) *Model {
	n, _ := points.Dims()
	k, _ := C.Dims()
	M := &Model{K: k, Centroids: C, Labels: make([]int, n)}
	for i := range M.Labels {
		M.Labels[i] = -1
	}
	dist := make([]float64, n)
	counts := make([]int, k)
	for M.Iterations = 0; M.Iterations < maxiter; M.Iterations++ {
		changed := false
		for i := 0; i < n; i++ {
			l, dd := nearest(points.RawRowView(i), M.Centroids)
			if l != M.Labels[i] {
				changed = true
				M.Labels[i] = l
			}
			dist[i] = dd
		}
		if !changed {
			break
		}
		M.Centroids.Zero()
		for c := range counts {
			counts[c] = 0
		}
		for i, l := range M.Labels {
			floats.Add(M.Centroids.RawRowView(l), points.RawRowView(i))
			counts[l]++
		}
		used := make(map[int]bool)
		for c, cnt := range counts {
			if cnt > 0 {
				floats.Scale(1/float64(cnt), M.Centroids.RawRowView(c))
				continue
			}
			//empty cluster: it takes the point farthest from its centroid.
			far := -1
			for i := range dist {
				if !used[i] && (far < 0 || dist[i] > dist[far]) {
					far = i
				}
			}
			used[far] = true
			M.Centroids.SetRow(c, points.RawRowView(far))
			M.Reseeds++
		}
	}
	for i := 0; i < n; i++ {
		M.Labels[i], _ = nearest(points.RawRowView(i), M.Centroids)
	}
	//the iterations can end right after a reseed that the last assignment undoes.
	M.Reseeds += fillEmpty(points, M)
	M.Inertia = 0
	for i, l := range M.Labels {
		M.Inertia += sqDist(points.RawRowView(i), M.Centroids.RawRowView(l))
	}
	return M
}

//fillEmpty moves into each empty cluster of M the point farthest from its centroid, among
//those in clusters with more than one member, and then sets every centroid to the mean of its
//members. It returns the number of clusters filled. The labels of the moved points are not
//necessarily those of their nearest centroid afterwards.
func fillEmpty(points *mat.Dense, M *Model) int {
	n, _ := points.Dims()
	counts := M.Sizes()
	dist := make([]float64, n)
	for i, l := range M.Labels {
		dist[i] = sqDist(points.RawRowView(i), M.Centroids.RawRowView(l))
	}
	filled := 0
	for c, cnt := range counts {
		if cnt > 0 {
			continue
		}
		far := -1
		for i, l := range M.Labels {
			if counts[l] > 1 && (far < 0 || dist[i] > dist[far]) {
				far = i
			}
		}
		if far < 0 {
			//fewer points than clusters. KMeans doesn't allow it.
			break
		}
		counts[M.Labels[far]]--
		counts[c]++
		M.Labels[far] = c
		dist[far] = 0
		filled++
	}
	if filled == 0 {
		return 0
	}
	M.Centroids.Zero()
	for i, l := range M.Labels {
		floats.Add(M.Centroids.RawRowView(l), points.RawRowView(i))
	}
	for c, cnt := range counts {
		if cnt > 0 {
			floats.Scale(1/float64(cnt), M.Centroids.RawRowView(c))
		}
	}
	return filled
}
