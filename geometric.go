/*
 * geometric.go, part of gostates.
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
	"math"

	v3 "github.com/rmera/gostates/v3"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Dihedral calculates the dihedral between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. The result is in radians, in the (-pi, pi] range.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	//bma=b minus a
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bma.Sub(b.Dense, a.Dense)
	cmb.Sub(c.Dense, b.Dense)
	dmc.Sub(d.Dense, c.Dense)
	bmascaled := v3.Zeros(1)
	bmascaled.Scale(cmb.Norm(), bma.Dense)
	v1 := v3.Zeros(1)
	v2 := v3.Zeros(1)
	v1.Cross(bma, cmb)
	v2.Cross(cmb, dmc)
	first := bmascaled.Dot(v2)
	second := v1.Dot(v2)
	dihedral := math.Atan2(first, second)
	if dihedral <= -math.Pi {
		dihedral = math.Pi
	}
	return dihedral
}

//MassCenter returns the center of mass of coords, with the masses in mass.
//If mass is nil, all atoms get the same weight (i.e. the geometric center is returned).
func MassCenter(coords *v3.Matrix, mass []float64) (*v3.Matrix, error) {
	n := coords.NVecs()
	if mass != nil && len(mass) != n {
		return nil, Errorf(DimensionMismatch, "MassCenter", "%d masses for %d atoms", len(mass), n)
	}
	ret := v3.Zeros(1)
	var total float64
	for i := 0; i < n; i++ {
		m := 1.0
		if mass != nil {
			m = mass[i]
		}
		total += m
		for j := 0; j < 3; j++ {
			ret.Set(0, j, ret.At(0, j)+m*coords.At(i, j))
		}
	}
	if total <= appzero {
		return nil, NewError(NumericDegeneracy, "MassCenter", "total mass is zero")
	}
	ret.Dense.Scale(1/total, ret.Dense)
	return ret, nil
}

//RadiusOfGyration returns the root-mean-square distance of the atoms in coords
//from their center of mass, weighted by mass. If mass is nil, unit weights are used.
func RadiusOfGyration(coords *v3.Matrix, mass []float64) (float64, error) {
	com, err := MassCenter(coords, mass)
	if err != nil {
		return 0, errDecorate(err, "RadiusOfGyration")
	}
	var acc, total float64
	for i := 0; i < coords.NVecs(); i++ {
		m := 1.0
		if mass != nil {
			m = mass[i]
		}
		d := coords.Distance(i, com, 0)
		acc += m * d * d
		total += m
	}
	return math.Sqrt(acc / total), nil
}

//RMSD returns the RMSD (root of the mean square deviation) for the sets of cartesian
//coordinates in test and template, without superimposing them.
func RMSD(test, template *v3.Matrix) (float64, error) {
	if test.NVecs() != template.NVecs() {
		return 0, Errorf(DimensionMismatch, "RMSD", "ill formed matrices for RMSD calculation: %d and %d atoms", test.NVecs(), template.NVecs())
	}
	var acc float64
	for i := 0; i < template.NVecs(); i++ {
		d := test.Distance(i, template, i)
		acc += d * d
	}
	return math.Sqrt(acc / float64(template.NVecs())), nil
}

//Super superimposes test onto templa with the least-squares rotation and translation
//(Kabsch algorithm) and returns the transformed copy of test. Neither argument is modified.
func Super(test, templa *v3.Matrix) (*v3.Matrix, error) {
	n := templa.NVecs()
	if test.NVecs() != n {
		return nil, Errorf(DimensionMismatch, "Super", "can't superimpose %d atoms onto %d", test.NVecs(), n)
	}
	ctest, _, err := centered(test)
	if err != nil {
		return nil, errDecorate(err, "Super")
	}
	ctempla, templacen, err := centered(templa)
	if err != nil {
		return nil, errDecorate(err, "Super")
	}
	//H = P^T Q, with P the moving and Q the fixed sets.
	var H mat.Dense
	H.Mul(ctest.Dense.T(), ctempla.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(&H, mat.SVDFull); !ok {
		return nil, NewError(NumericDegeneracy, "Super", "SVD factorization failed")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	//Correction so we get a rotation and not a reflection.
	var VUt mat.Dense
	VUt.Mul(&V, U.T())
	D := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&VUt) < 0 {
		D.SetDiag(2, -1)
	}
	var R, tmp mat.Dense
	tmp.Mul(&V, D)
	R.Mul(&tmp, U.T())
	//rows are points, so we apply R^T on the right.
	ret := v3.Zeros(n)
	ret.Mul(ctest.Dense, R.T())
	ret.AddVec(ret, templacen)
	return ret, nil
}

//SuperRMSD returns the RMSD between test and templa after the optimal superposition
//of test onto templa.
func SuperRMSD(test, templa *v3.Matrix) (float64, error) {
	s, err := Super(test, templa)
	if err != nil {
		return 0, errDecorate(err, "SuperRMSD")
	}
	return RMSD(s, templa)
}

//returns a centered copy of A and its geometric center
func centered(A *v3.Matrix) (*v3.Matrix, *v3.Matrix, error) {
	cen, err := MassCenter(A, nil)
	if err != nil {
		return nil, nil, err
	}
	ret := v3.Zeros(A.NVecs())
	ret.SubVec(A, cen)
	return ret, cen, nil
}
