/*
 * rmsd.go, part of gostates.
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
	chem "github.com/rmera/gostates"
	v3 "github.com/rmera/gostates/v3"
)

//rmsd is the RMSD of the backbone atoms of each frame against the reference frame,
//after the optimal superposition.
type rmsd struct {
	sel *selection
	ref *v3.Matrix
}

func newRMSD(traj *chem.Trajectory, O *Options) (*rmsd, error) {
	if O.ReferenceFrame < 0 || O.ReferenceFrame >= traj.Len() {
		return nil, chem.Errorf(chem.InputError, "newRMSD", "reference frame %d out of range for %d frames", O.ReferenceFrame, traj.Len())
	}
	sel, err := newSelection("rmsd", traj.Topology(0), namesSelector(O.BackboneNames))
	if err != nil {
		return nil, decorate(err, "newRMSD")
	}
	R := &rmsd{sel: sel}
	rf := traj.Frames[O.ReferenceFrame]
	idx, err := sel.indexes(rf, traj.Topology(O.ReferenceFrame))
	if err != nil {
		return nil, decorate(err, "newRMSD")
	}
	R.ref = v3.Zeros(len(idx))
	R.ref.SomeVecs(rf.Coords, idx)
	return R, nil
}

func (R *rmsd) columns() []string { return []string{"rmsd"} }

func (R *rmsd) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	idx, err := R.sel.indexes(f, top)
	if err != nil {
		return err
	}
	test := v3.Zeros(len(idx))
	test.SomeVecs(f.Coords, idx)
	row[0], err = chem.SuperRMSD(test, R.ref)
	if err != nil {
		return decorate(err, "rmsd")
	}
	return nil
}
