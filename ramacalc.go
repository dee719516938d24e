/*
 * ramacalc.go, part of gostates.
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

package chem

import (
	"fmt"
	"strings"

	v3 "github.com/rmera/gostates/v3"
)

//RamaSet contains the indexes of the atoms needed to obtain the phi and psi
//dihedrals of one residue, plus the residue's ID and name.
type RamaSet struct {
	Cprev   int
	N       int
	Ca      int
	C       int
	Npost   int
	MolID   int
	MolName string
}

//RamaCalc obtains the values for the phi and psi dihedrals indicated in dihedrals, for the
//structure M. The angles are in radians, and the result has one {phi, psi} pair per element
//of dihedrals.
func RamaCalc(M *v3.Matrix, dihedrals []RamaSet) ([][]float64, error) {
	if M == nil || dihedrals == nil {
		return nil, NewError(InputError, "RamaCalc", "Nil data given")
	}
	r := M.NVecs()
	Rama := make([][]float64, 0, len(dihedrals))
	for _, j := range dihedrals {
		if j.Npost >= r || j.Cprev >= r || j.N >= r || j.Ca >= r || j.C >= r {
			return nil, Errorf(DimensionMismatch, "RamaCalc", "dihedral atoms of residue %d out of range for %d atoms", j.MolID, r)
		}
		Cprev := M.VecView(j.Cprev)
		N := M.VecView(j.N)
		Ca := M.VecView(j.Ca)
		C := M.VecView(j.C)
		Npost := M.VecView(j.Npost)
		phi := Dihedral(Cprev, N, Ca, C)
		psi := Dihedral(N, Ca, C, Npost)
		Rama = append(Rama, []float64{phi, psi})
	}
	return Rama, nil
}

//RamaList takes a topology and returns a slice of RamaSet, which contains the
//indexes for each phi/psi dihedral pair. Only residues that have a previous and a next
//residue in the same chain are included. If resran is not empty, only the residues
//with IDs in resran are included. Only residues belonging to a chain included
//in chains are considered; if chains is empty, all chains are used.
func RamaList(M Atomer, chains string, resran []int) ([]RamaSet, error) {
	if M == nil {
		return nil, NewError(InputError, "RamaList", "Nil data given")
	}
	RamaList := make([]RamaSet, 0, M.Len()/8)
	C := -1
	N := -1
	Ca := -1
	Cprev := -1
	Npost := -1
	chainprev := "NOTAVALIDCHAIN" //any non-valid chain name
	for num := 0; num < M.Len(); num++ {
		at := M.Atom(num)
		if chains != "" && !strings.Contains(chains, at.Chain) {
			continue
		}
		if at.Chain != chainprev {
			chainprev = at.Chain
			C = -1
			N = -1
			Ca = -1
			Cprev = -1
			Npost = -1
		}
		if at.Name == "C" && Cprev == -1 {
			Cprev = num
		}
		if at.Name == "N" && Cprev != -1 && N == -1 && at.MolID > M.Atom(Cprev).MolID {
			N = num
		}
		if at.Name == "C" && Cprev != -1 && at.MolID > M.Atom(Cprev).MolID {
			C = num
		}
		if at.Name == "CA" && Cprev != -1 && at.MolID > M.Atom(Cprev).MolID {
			Ca = num
		}
		if at.Name == "N" && Ca != -1 && at.MolID > M.Atom(Ca).MolID {
			Npost = num
		}
		//when we have them all, we save
		if Cprev != -1 && Ca != -1 && N != -1 && C != -1 && Npost != -1 {
			//We check that the residue ids are what they are supposed to be
			r1 := M.Atom(Cprev).MolID
			r2 := M.Atom(N).MolID
			r2a := M.Atom(Ca).MolID
			r2b := M.Atom(C).MolID
			r3 := M.Atom(Npost).MolID
			if len(resran) == 0 || isInInt(resran, r2) {
				if r1 != r2-1 || r2 != r2a || r2a != r2b || r2b != r3-1 {
					return nil, NewError(InputError, "RamaList", fmt.Sprintf("Incorrect backbone Cprev: %d N-1: %d CA: %d C: %d Npost-1: %d", r1, r2-1, r2a, r2b, r3-1))
				}
				RamaList = append(RamaList, RamaSet{Cprev, N, Ca, C, Npost, r2, M.Atom(Ca).MolName})
			}
			N = Npost
			Ca = -1
			Cprev = C
			C = -1
			Npost = -1
		}
	}
	return RamaList, nil
}
