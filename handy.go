/*
 * handy.go, part of gostates.
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

import "math"

//Deg2Rad converts degrees to radians
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

//Rad2Deg converts radians to degrees
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

//SelectNames returns the indexes in mol of the atoms with a name in names, in the order
//they appear in mol. If residues is not nil, only atoms with a MolID in residues are returned.
func SelectNames(mol Atomer, names []string, residues []int) []int {
	ret := make([]int, 0, mol.Len()/4)
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		if (residues == nil || isInInt(residues, a.MolID)) && isInString(names, a.Name) {
			ret = append(ret, i)
		}
	}
	return ret
}

//isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//Same as the previous, but with strings.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
