/*
 * distances.go, part of gostates.
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
	"fmt"

	chem "github.com/rmera/gostates"
)

//distances are all the pairwise distances between the selected backbone atoms,
//in the order (0,1), (0,2)...(0,n-1), (1,2)...
type distances struct {
	sel  *selection
	cols []string
}

func newDistances(traj *chem.Trajectory, O *Options) (*distances, error) {
	top := traj.Topology(0)
	sel, err := newSelection("distances", top, namesSelector(O.DistanceAtoms))
	if err != nil {
		return nil, decorate(err, "newDistances")
	}
	n := len(sel.idx)
	if n < 2 {
		return nil, chem.Errorf(chem.InputError, "newDistances", "%d atoms selected, at least 2 needed", n)
	}
	D := &distances{sel: sel, cols: make([]string, 0, n*(n-1)/2)}
	for i := 0; i < n; i++ {
		a := top.Atom(sel.idx[i])
		for j := i + 1; j < n; j++ {
			b := top.Atom(sel.idx[j])
			D.cols = append(D.cols, fmt.Sprintf("%s%d-%s%d", a.Name, a.MolID, b.Name, b.MolID))
		}
	}
	return D, nil
}

func (D *distances) columns() []string { return D.cols }

func (D *distances) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	idx, err := D.sel.indexes(f, top)
	if err != nil {
		return err
	}
	k := 0
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			row[k] = f.Coords.Distance(idx[i], f.Coords, idx[j])
			k++
		}
	}
	return nil
}
