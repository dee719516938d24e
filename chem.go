/*
 * chem.go, part of gostates.
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
	"strings"
	"unicode"
)

//Atom contains the information of an atom, except for the coordinates,
//which will be in a v3.Matrix.
type Atom struct {
	Name    string
	ID      int
	MolName string //residue name
	MolID   int    //residue id
	Chain   string
	Symbol  string
	Mass    float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

//Element returns the chemical symbol of the atom. If the Symbol field
//is empty, the symbol is guessed from the atom name, PDB style.
func (A *Atom) Element() string {
	if A.Symbol != "" {
		return A.Symbol
	}
	for _, r := range A.Name {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
	}
	return ""
}

/*****Topology type***/

//Topology contains the information about a molecule which is not expected to change in time
//(i.e. everything except for coordinates).
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the given atoms. It returns error if
//the slice is empty.
func NewTopology(ats []*Atom) (*Topology, error) {
	if len(ats) == 0 {
		return nil, NewError(InputError, "NewTopology", "Supplied an empty atom list")
	}
	top := new(Topology)
	top.Atoms = ats
	return top, nil
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Masses returns a slice with the masses of each atom in the topology.
//Atoms with a zero Mass field get the mass of their element.
func (T *Topology) Masses() ([]float64, error) {
	return Masses(T)
}

//Masses returns a slice with the masses of the atoms in mol. It returns
//an error if the mass of an atom is unknown.
func Masses(mol Atomer) ([]float64, error) {
	ret := make([]float64, mol.Len())
	for i := range ret {
		at := mol.Atom(i)
		if at.Mass > 0 {
			ret[i] = at.Mass
			continue
		}
		m, ok := symbolMass[at.Element()]
		if !ok {
			return nil, Errorf(InputError, "Masses", "unknown mass for atom %d (%s, element '%s')", i, at.Name, at.Element())
		}
		ret[i] = m
	}
	return ret, nil
}

//VdwRadii returns a slice with the van der Waals radii (nm) of the atoms
//in mol. It returns an error if the radius of an atom is unknown.
func VdwRadii(mol Atomer) ([]float64, error) {
	ret := make([]float64, mol.Len())
	for i := range ret {
		at := mol.Atom(i)
		r, ok := symbolVdwrad[at.Element()]
		if !ok {
			return nil, Errorf(InputError, "VdwRadii", "unknown van der Waals radius for atom %d (%s, element '%s')", i, at.Name, at.Element())
		}
		ret[i] = r
	}
	return ret, nil
}
