/*
 * atomicdata.go, part of gostates.
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

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning van der Waals radii to elements, in nm.
//Bondi radii, plus a few common ions.
var symbolVdwrad = map[string]float64{
	"H":  0.120,
	"C":  0.170,
	"N":  0.155,
	"O":  0.152,
	"P":  0.180,
	"S":  0.180,
	"Se": 0.190,
	"F":  0.147,
	"Cl": 0.175,
	"Br": 0.185,
	"I":  0.198,
	"Na": 0.227,
	"K":  0.275,
	"Mg": 0.173,
	"Ca": 0.231,
	"Zn": 0.139,
	"Cu": 0.140,
	"Fe": 0.200,
}
