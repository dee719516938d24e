/*
 * pdb.go, part of gostates.
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
	"bufio"
	"fmt"
	"io"
	"os"

	v3 "github.com/rmera/gostates/v3"
)

//PDBWrite writes the structure given by coords (in nm) and mol to out, in PDB format.
//A TER record is written every time the chain changes. Atom names longer than
//4 characters are an error.
func PDBWrite(out io.Writer, coords *v3.Matrix, mol Atomer, remarks ...string) error {
	if coords.NVecs() != mol.Len() {
		return Errorf(DimensionMismatch, "PDBWrite", "topology (%d) and coordinates (%d) don't have the same number of atoms", mol.Len(), coords.NVecs())
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH GOSTATES\n")
	for _, r := range remarks {
		fmt.Fprintf(w, "REMARK     %s\n", r)
	}
	chainprev := ""
	if mol.Len() > 0 {
		chainprev = mol.Atom(0).Chain
	}
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		if a.Chain != chainprev {
			fmt.Fprintln(w, "TER")
			chainprev = a.Chain
		}
		chain := " "
		if a.Chain != "" {
			chain = a.Chain[:1]
		}
		c := coords.VecView(i)
		var format string
		switch {
		case len(a.Name) < 4:
			format = "%-6s%5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
		case len(a.Name) == 4:
			format = "%-6s%5d %4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n"
		default:
			return Errorf(InputError, "PDBWrite", "can't write atom name '%s' in PDB format", a.Name)
		}
		//the PDB format uses A.
		fmt.Fprintf(w, format, "ATOM", a.ID, a.Name, a.MolName, chain, a.MolID,
			10*c.At(0, 0), 10*c.At(0, 1), 10*c.At(0, 2), 1.0, 0.0, a.Element())
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return Errorf(InputError, "PDBWrite", "%s", err.Error())
	}
	return nil
}

//PDBFileWrite writes coords and mol to a PDB file with the given name.
func PDBFileWrite(name string, coords *v3.Matrix, mol Atomer, remarks ...string) error {
	out, err := os.Create(name)
	if err != nil {
		return Errorf(InputError, "PDBFileWrite", "%s", err.Error())
	}
	if err := PDBWrite(out, coords, mol, remarks...); err != nil {
		out.Close()
		return errDecorate(err, "PDBFileWrite")
	}
	if err := out.Close(); err != nil {
		return Errorf(InputError, "PDBFileWrite", "%s", err.Error())
	}
	return nil
}
