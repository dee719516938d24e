/*
 * json.go, part of gostates.
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

package chemjson

import (
	"encoding/json"
	"io"
	"os"

	chem "github.com/rmera/gostates"
)

//Atom is the ready-to-serialize container for one atom.
type Atom struct {
	Name    string  `json:"name"`
	ID      int     `json:"id,omitempty"`
	MolName string  `json:"resname,omitempty"`
	MolID   int     `json:"resid"`
	Chain   string  `json:"chain,omitempty"`
	Symbol  string  `json:"symbol,omitempty"`
	Mass    float64 `json:"mass,omitempty"`
}

func fromChem(at *chem.Atom) Atom {
	return Atom{Name: at.Name, ID: at.ID, MolName: at.MolName, MolID: at.MolID, Chain: at.Chain, Symbol: at.Symbol, Mass: at.Mass}
}

func (A Atom) toChem() *chem.Atom {
	return &chem.Atom{Name: A.Name, ID: A.ID, MolName: A.MolName, MolID: A.MolID, Chain: A.Chain, Symbol: A.Symbol, Mass: A.Mass}
}

//EncodeTopology writes mol to out as a JSON array of atoms, in one line.
func EncodeTopology(out io.Writer, mol chem.Atomer) error {
	if mol == nil || mol.Len() == 0 {
		return chem.NewError(chem.InputError, "chemjson.EncodeTopology", "empty topology")
	}
	ats := make([]Atom, mol.Len())
	for i := range ats {
		ats[i] = fromChem(mol.Atom(i))
	}
	if err := json.NewEncoder(out).Encode(ats); err != nil {
		return chem.Errorf(chem.InputError, "chemjson.EncodeTopology", "%s", err.Error())
	}
	return nil
}

//DecodeTopology reads a JSON array of atoms from in and returns the corresponding topology.
//Atoms without a name, or an empty array, are an InputError.
func DecodeTopology(in io.Reader) (*chem.Topology, error) {
	const funcname = "chemjson.DecodeTopology"
	var ats []Atom
	if err := json.NewDecoder(in).Decode(&ats); err != nil {
		return nil, chem.Errorf(chem.InputError, funcname, "malformed topology: %s", err.Error())
	}
	if len(ats) == 0 {
		return nil, chem.NewError(chem.InputError, funcname, "topology without atoms")
	}
	ret := make([]*chem.Atom, len(ats))
	for i, a := range ats {
		if a.Name == "" {
			return nil, chem.Errorf(chem.InputError, funcname, "atom %d has no name", i)
		}
		ret[i] = a.toChem()
	}
	return chem.NewTopology(ret)
}

//ReadTopologyFile decodes the topology in the JSON file name.
func ReadTopologyFile(name string) (*chem.Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, "chemjson.ReadTopologyFile", "%s", err.Error())
	}
	defer f.Close()
	top, err := DecodeTopology(f)
	if err != nil {
		if e, ok := err.(chem.Error); ok {
			e.Decorate("chemjson.ReadTopologyFile")
		}
		return nil, err
	}
	return top, nil
}
