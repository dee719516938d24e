/*
 * rg.go, part of gostates.
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
)

//gyration is the radius of gyration of the whole structure, mass-weighted or not.
type gyration struct {
	weighted bool
	top      chem.Atomer
	masses   []float64
}

func newGyration(traj *chem.Trajectory, O *Options) (*gyration, error) {
	G := &gyration{weighted: O.MassWeighted, top: traj.Topology(0)}
	if G.weighted {
		var err error
		G.masses, err = chem.Masses(G.top)
		if err != nil {
			return nil, decorate(err, "newGyration")
		}
	}
	return G, nil
}

func (G *gyration) columns() []string { return []string{"rg"} }

func (G *gyration) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	m := G.masses
	if G.weighted && top != G.top {
		var err error
		m, err = chem.Masses(top)
		if err != nil {
			return decorate(err, "gyration")
		}
	}
	rg, err := chem.RadiusOfGyration(f.Coords, m)
	if err != nil {
		return decorate(err, "gyration")
	}
	row[0] = rg
	return nil
}
