/*
 * split.go, part of gostates.
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

package classify

import (
	"math"
	"math/rand"
	"sort"

	chem "github.com/rmera/gostates"
)

//byClass returns the indexes of the elements of y for each label in classes, in order.
func byClass(y []int, classes []int) [][]int {
	pos := make(map[int]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	ret := make([][]int, len(classes))
	for i, l := range y {
		ret[pos[l]] = append(ret[pos[l]], i)
	}
	return ret
}

//Count returns the number of elements of each class in y, for the sorted classes.
func Count(y []int) (classes []int, counts []int) {
	classes = labelsOf(y)
	for _, m := range byClass(y, classes) {
		counts = append(counts, len(m))
	}
	return classes, counts
}

//StratifiedSplit splits the indexes 0..len(y)-1 into a training and a test set, keeping the
//proportion of each class. Each class gives max(1, round(testFrac*n)) of its n members to the
//test set, but never all of them, so every class needs at least 2 members. Both sets are sorted.
func StratifiedSplit(y []int, testFrac float64, seed int64) (train, test []int, err error) {
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, chem.Errorf(chem.InputError, "StratifiedSplit", "invalid test fraction %g", testFrac)
	}
	classes := labelsOf(y)
	rng := rand.New(rand.NewSource(seed))
	for ci, members := range byClass(y, classes) {
		n := len(members)
		if n < 2 {
			return nil, nil, chem.Errorf(chem.StratificationError, "StratifiedSplit", "class %d has %d members, at least 2 are needed", classes[ci], n)
		}
		nt := int(math.Round(testFrac * float64(n)))
		if nt < 1 {
			nt = 1
		}
		if nt > n-1 {
			nt = n - 1
		}
		rng.Shuffle(n, func(i, j int) { members[i], members[j] = members[j], members[i] })
		test = append(test, members[:nt]...)
		train = append(train, members[nt:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

//KFold splits a seeded permutation of 0..n-1 into k folds of nearly equal size, and returns
//the (sorted) test indexes of each fold.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 || k > n {
		return nil, chem.Errorf(chem.InputError, "KFold", "can't make %d folds out of %d elements", k, n)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	for i, v := range perm {
		folds[i%k] = append(folds[i%k], v)
	}
	for _, f := range folds {
		sort.Ints(f)
	}
	return folds, nil
}

//StratifiedKFold splits 0..len(y)-1 in k folds keeping the proportion of each class. The members
//of each class are shuffled and dealt to the folds in turn, continuing where the previous class
//left off, so fold sizes differ by at most one. Every class needs at least k members.
func StratifiedKFold(y []int, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, chem.Errorf(chem.InputError, "StratifiedKFold", "invalid number of folds %d", k)
	}
	classes := labelsOf(y)
	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)
	next := 0
	for ci, members := range byClass(y, classes) {
		if len(members) < k {
			return nil, chem.Errorf(chem.StratificationError, "StratifiedKFold", "class %d has %d members, fewer than the %d folds", classes[ci], len(members), k)
		}
		rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		for _, m := range members {
			folds[next] = append(folds[next], m)
			next = (next + 1) % k
		}
	}
	for _, f := range folds {
		sort.Ints(f)
	}
	return folds, nil
}

//complement returns the sorted elements of 0..n-1 that are not in the sorted slice idx.
func complement(n int, idx []int) []int {
	ret := make([]int, 0, n-len(idx))
	j := 0
	for i := 0; i < n; i++ {
		if j < len(idx) && idx[j] == i {
			j++
			continue
		}
		ret = append(ret, i)
	}
	return ret
}
