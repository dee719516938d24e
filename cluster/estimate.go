/*
 * estimate.go, part of gostates.
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

package cluster

import (
	"fmt"
	"runtime"
	"sort"

	chem "github.com/rmera/gostates"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Chooser picks the number of clusters from the mean inertia obtained for each candidate.
//kRange is sorted in increasing order and inertia[i] corresponds to kRange[i].
type Chooser interface {
	ChooseK(kRange []int, inertia []float64) (int, error)
}

//Elbow chooses k at the sharpest bend of the inertia curve. With D1[i] = I[i]-I[i+1] the drop in
//inertia when going from kRange[i] to kRange[i+1], and D2[i] = D1[i+1]-D1[i], the sharpest bend is
//the most negative D2 (the first one, in case of ties), and D2[i] corresponds to k = kRange[i+1].
//The result is clamped to [max(2, min kRange), max kRange - 1]. At least 3 candidates are needed.
//
//D1 is the drop of the curve, that is, minus its first difference. The minimum of D2 is then
//the point where the curve stops falling steeply, which for two well separated groups is k=2.
//Taking the minimum of the plain second difference of I instead picks the point after the bend
//(k=3 for two groups), so the sign of D1 must be kept as it is.
type Elbow struct{}

//ChooseK implements Chooser.
func (E Elbow) ChooseK(kRange []int, inertia []float64) (int, error) {
	k, _, err := E.choose(kRange, inertia)
	return k, err
}

//choose also returns the value before clamping.
func (E Elbow) choose(kRange []int, inertia []float64) (int, int, error) {
	if len(kRange) != len(inertia) {
		return 0, 0, chem.Errorf(chem.DimensionMismatch, "cluster.Elbow", "%d candidates but %d inertia values", len(kRange), len(inertia))
	}
	if len(kRange) < 3 {
		return 0, 0, chem.Errorf(chem.InputError, "cluster.Elbow", "the elbow needs at least 3 candidate cluster counts, got %d", len(kRange))
	}
	d1 := make([]float64, len(inertia)-1)
	for i := range d1 {
		d1[i] = inertia[i] - inertia[i+1]
	}
	best := 0
	bestv := d1[1] - d1[0]
	for i := 1; i < len(d1)-1; i++ {
		if v := d1[i+1] - d1[i]; v < bestv {
			best, bestv = i, v
		}
	}
	raw := kRange[best+1]
	lo := kRange[0]
	if lo < 2 {
		lo = 2
	}
	hi := kRange[len(kRange)-1] - 1
	k := raw
	if k < lo {
		k = lo
	}
	if k > hi {
		k = hi
	}
	return k, raw, nil
}

//Estimate is the result of EstimateK.
type Estimate struct {
	KRange  []int     //candidates actually tried
	Inertia []float64 //mean inertia for each candidate
	Std     []float64 //standard deviation of the inertia over the runs
	K       int
	Raw     int  //the elbow choice before clamping, when the Elbow chooser is used.
	Clamped bool //true if K differs from Raw
	Reseeds int  //empty clusters reseeded over all the runs
	//Fallback is true if there were too few distinct points for the chooser, and K is
	//the largest number of clusters the points allow.
	Fallback bool
}

//String returns a one-line summary of the estimate
func (E *Estimate) String() string {
	return fmt.Sprintf("k=%d (candidates %v, mean inertia %v, clamped: %v)", E.K, E.KRange, E.Inertia, E.Clamped)
}

//runSeed returns the seed for run r of the ith candidate. KMeans seeds its restarts with
//consecutive values starting at the seed it gets, so each run gets its own block of O.NInit
//seeds, and no two runs share a restart.
func runSeed(seed int64, i, r, nRuns int, O *Options) int64 {
	ninit := O.NInit
	if ninit < 1 {
		ninit = 1
	}
	return seed + int64((i*nRuns+r)*ninit)
}

//EstimateK clusters points nRuns times for each candidate number of clusters in kRange, and
//gives the candidates' mean inertia to chooser (Elbow if nil) to pick k. The restarts of all
//the runs use different seeds (see runSeed). Candidates larger than the number of distinct
//points are dropped. If that leaves fewer than 3 candidates, chooser is not used: K is the
//largest usable candidate (or the number of distinct points, if no candidate is usable) and
//Fallback is set.
//The runs are independent and are done concurrently, with at most O.Cpus at a time.
func EstimateK(points *mat.Dense, kRange []int, nRuns int, seed int64, chooser Chooser, O *Options) (*Estimate, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if chooser == nil {
		chooser = Elbow{}
	}
	if nRuns < 1 {
		return nil, chem.Errorf(chem.InputError, "cluster.EstimateK", "invalid number of runs %d", nRuns)
	}
	ks := append([]int(nil), kRange...)
	sort.Ints(ks)
	dis := Distinct(points)
	E := &Estimate{}
	for i, k := range ks {
		if k < 1 || (i > 0 && k == ks[i-1]) {
			return nil, chem.Errorf(chem.InputError, "cluster.EstimateK", "invalid candidate list %v", kRange)
		}
		if k <= dis {
			E.KRange = append(E.KRange, k)
		}
	}
	if dis == 0 {
		return nil, chem.NewError(chem.InputError, "cluster.EstimateK", "no points to cluster")
	}
	//with fewer than 3 usable candidates the curve has no bend to look for.
	fallback := len(E.KRange) < len(ks) && len(E.KRange) < 3
	if len(E.KRange) == 0 {
		E.KRange = []int{dis}
	}
	inertia := make([][]float64, len(E.KRange))
	reseeds := make([][]int, len(E.KRange))
	cpus := O.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(cpus)
	for i, k := range E.KRange {
		inertia[i] = make([]float64, nRuns)
		reseeds[i] = make([]int, nRuns)
		for r := 0; r < nRuns; r++ {
			i, k, r := i, k, r
			g.Go(func() error {
				m, err := KMeans(points, k, runSeed(seed, i, r, nRuns, O), O)
				if err != nil {
					return err
				}
				inertia[i][r] = m.Inertia
				reseeds[i][r] = m.Reseeds
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		if e, ok := err.(chem.Error); ok {
			e.Decorate("cluster.EstimateK")
		}
		return nil, err
	}
	E.Inertia = make([]float64, len(E.KRange))
	E.Std = make([]float64, len(E.KRange))
	for i := range E.KRange {
		E.Inertia[i], E.Std[i] = stat.PopMeanStdDev(inertia[i], nil)
		for _, r := range reseeds[i] {
			E.Reseeds += r
		}
	}
	if fallback {
		E.K = E.KRange[len(E.KRange)-1]
		E.Raw = E.K
		E.Fallback = true
		return E, nil
	}
	var err error
	if el, ok := chooser.(Elbow); ok {
		E.K, E.Raw, err = el.choose(E.KRange, E.Inertia)
	} else {
		E.K, err = chooser.ChooseK(E.KRange, E.Inertia)
		E.Raw = E.K
	}
	if err != nil {
		if e, ok := err.(chem.Error); ok {
			e.Decorate("cluster.EstimateK")
		}
		return nil, err
	}
	E.Clamped = E.K != E.Raw
	return E, nil
}
