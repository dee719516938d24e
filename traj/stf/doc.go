/*
 * doc.go, part of gostates.
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

//Package stf implements the simple trajectory format (STF), a plain-text, compressed
//trajectory format from goChem. gostates reads its input trajectories from STF files and
//can write them too, which the tests (and the users converting from other formats) use.
/******************** Format  ***************************************************

An STF file is compressed with z-standard (zstd) unless its name ends in
'z' (gzip), 'r' (raw deflate) or 'l' (LZW).

The file has a header starting in the first line, made of key=value lines, and
ending with a line that starts with "**" followed by whitespace and the number
of atoms per frame. The header must give the precision under the key "prec".
It may carry the topology under the key "topology", as a JSON array of atoms
(see the chemjson package).

After the header, each frame has one line per atom, with the x, y and z
coordinates in Angstrom, multiplied by 10^prec and rounded to integers.
Each frame ends with a line starting with "*", optionally followed by the 9
components of the box vectors.

The reader in this package returns coordinates in nm, the length unit used by
gostates, and the writer takes them in nm.

***************************************************************************************************/
package stf
