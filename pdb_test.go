/*
 * pdb_test.go, part of gostates.
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
	"bytes"
	"strings"
	"testing"

	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDBWrite(Te *testing.T) {
	top, err := NewTopology([]*Atom{
		{Name: "CA", ID: 1, MolName: "GLY", MolID: 1, Chain: "A"},
		{Name: "HD21", ID: 2, MolName: "ASN", MolID: 2, Chain: "A", Symbol: "H"},
		{Name: "OW", ID: 3, MolName: "SOL", MolID: 3, Chain: "B", Symbol: "O"},
	})
	require.NoError(Te, err)
	coords, err := v3.NewMatrix([]float64{0.1, 0.2, 0.3, 1, 0, 0, -0.05, 0, 2})
	require.NoError(Te, err)
	var b bytes.Buffer
	require.NoError(Te, PDBWrite(&b, coords, top, "FRAME 4"))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(Te, lines, 7)
	assert.Equal(Te, "REMARK     FRAME 4", lines[1])
	assert.Equal(Te, "ATOM      1  CA  GLY A   1       1.000   2.000   3.000  1.00  0.00           C  ", lines[2])
	assert.Equal(Te, "ATOM      2 HD21 ASN A   2      10.000   0.000   0.000  1.00  0.00           H  ", lines[3])
	assert.Equal(Te, "TER", lines[4])
	assert.True(Te, strings.HasPrefix(lines[5], "ATOM      3  OW  SOL B   3      -0.500   0.000  20.000"))
	assert.Equal(Te, "END", lines[6])

	top.Atoms[0].Name = "CATOM"
	err = PDBWrite(&b, coords, top)
	assert.True(Te, IsKind(err, InputError))
	err = PDBWrite(&b, coords.VecView(0), top)
	assert.True(Te, IsKind(err, DimensionMismatch))
}
