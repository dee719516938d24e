/*
 * hbond.go, part of gostates.
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
)

//HBondCriterion decides whether a donor d, its hydrogen h and an acceptor a form a hydrogen bond.
//Each argument is a one-vector matrix.
type HBondCriterion interface {
	IsHBond(d, h, a *v3.Matrix) bool
}

//BakerHubbard is the geometric hydrogen bond criterion of Baker and Hubbard:
//an H-acceptor distance below HADistance (nm) and a donor-H-acceptor angle
//of at least MinAngle (degrees).
type BakerHubbard struct {
	HADistance float64
	MinAngle   float64
}

//DefaultBakerHubbard returns the usual 0.25 nm, 120 degrees criterion.
func DefaultBakerHubbard() BakerHubbard {
	return BakerHubbard{HADistance: 0.25, MinAngle: 120}
}

//IsHBond implements HBondCriterion.
func (B BakerHubbard) IsHBond(d, h, a *v3.Matrix) bool {
	if h.Distance(0, a, 0) > B.HADistance {
		return false
	}
	hd := v3.Zeros(1)
	ha := v3.Zeros(1)
	hd.Sub(d.Dense, h.Dense)
	ha.Sub(a.Dense, h.Dense)
	n := hd.Norm() * ha.Norm()
	if n == 0 {
		return false
	}
	cos := math.Max(-1, math.Min(1, hd.Dot(ha)/n))
	return chem.Rad2Deg(math.Acos(cos)) >= B.MinAngle
}

type donor struct {
	d, h int
}

//hbonds counts, per frame, the donor-hydrogen-acceptor triplets that fulfill the criterion.
//Donors and acceptors are N and O atoms. A donor is paired with the hydrogens of its residue
//that are closer to it than a cutoff in the reference frame.
type hbonds struct {
	crit      HBondCriterion
	cutoff    float64
	top       chem.Atomer
	donors    []donor
	acceptors []int
}

func newHBonds(traj *chem.Trajectory, O *Options) (*hbonds, error) {
	if O.ReferenceFrame < 0 || O.ReferenceFrame >= traj.Len() {
		return nil, chem.Errorf(chem.InputError, "newHBonds", "reference frame %d out of range for %d frames", O.ReferenceFrame, traj.Len())
	}
	H := &hbonds{crit: O.HBond, cutoff: O.DonorHDistance}
	if H.crit == nil {
		H.crit = DefaultBakerHubbard()
	}
	ref := traj.Frames[O.ReferenceFrame]
	H.top = traj.Topology(O.ReferenceFrame)
	H.donors, H.acceptors = H.pairs(H.top, ref.Coords)
	return H, nil
}

func polar(at *chem.Atom) bool {
	e := at.Element()
	return e == "N" || e == "O"
}

//pairs returns the donor-hydrogen pairs and the acceptors in top, using the coordinates in coords.
func (H *hbonds) pairs(top chem.Atomer, coords *v3.Matrix) ([]donor, []int) {
	var donors []donor
	var acceptors []int
	for i := 0; i < top.Len(); i++ {
		ai := top.Atom(i)
		if !polar(ai) {
			continue
		}
		acceptors = append(acceptors, i)
		for j := 0; j < top.Len(); j++ {
			aj := top.Atom(j)
			if aj.Element() != "H" || aj.MolID != ai.MolID || aj.Chain != ai.Chain {
				continue
			}
			if coords.Distance(i, coords, j) <= H.cutoff {
				donors = append(donors, donor{i, j})
			}
		}
	}
	return donors, acceptors
}

func (H *hbonds) columns() []string { return []string{"count"} }

func (H *hbonds) compute(f *chem.Frame, top chem.Atomer, row []float64) error {
	donors, acceptors := H.donors, H.acceptors
	if top != H.top {
		donors, acceptors = H.pairs(top, f.Coords)
	}
	count := 0
	for _, d := range donors {
		dv := f.Coords.VecView(d.d)
		hv := f.Coords.VecView(d.h)
		for _, a := range acceptors {
			if a == d.d {
				continue
			}
			if H.crit.IsHBond(dv, hv, f.Coords.VecView(a)) {
				count++
			}
		}
	}
	row[0] = float64(count)
	return nil
}
