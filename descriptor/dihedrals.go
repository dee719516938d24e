/*
 * dihedrals.go, part of gostates.
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

//dihedrals gives the phi and psi backbone dihedrals, in radians, of every residue
//that has a previous and a next residue in its chain.
type dihedrals struct {
	chains string
	top    chem.Atomer
	sets   []chem.RamaSet
	cols   []string
}

func newDihedrals(traj *chem.Trajectory, O *Options) (*dihedrals, error) {
	top := traj.Topology(0)
	sets, err := chem.RamaList(top, O.Chains, nil)
	if err != nil {
		return nil, decorate(err, "newDihedrals")
	}
	if len(sets) == 0 {
		return nil, chem.NewError(chem.InputError, "newDihedrals", "no residue with a complete set of backbone dihedrals")
	}
	D := &dihedrals{chains: O.Chains, top: top, sets: sets, cols: make([]string, 0, 2*len(sets))}
	for _, s := range sets {
		D.cols = append(D.cols, fmt.Sprintf("phi:%d", s.MolID), fmt.Sprintf("psi:%d", s.MolID))
	}
	return D, nil
}

func (D *dihedrals) columns() []string { return D.cols }

func (D *dihedrals) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	sets := D.sets
	if top != D.top {
		var err error
		sets, err = chem.RamaList(top, D.chains, nil)
		if err != nil {
			return decorate(err, "dihedrals")
		}
		if len(sets) != len(D.sets) {
			return chem.Errorf(chem.DimensionMismatch, "dihedrals", "frame %d has %d residues with dihedrals, the trajectory %d", f.Index, len(sets), len(D.sets))
		}
	}
	angles, err := chem.RamaCalc(f.Coords, sets)
	if err != nil {
		return decorate(err, "dihedrals")
	}
	for i, a := range angles {
		row[2*i] = a[0]
		row[2*i+1] = a[1]
	}
	return nil
}
