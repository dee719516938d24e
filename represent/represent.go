/*
 * represent.go, part of gostates.
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

//Package represent picks, for each cluster, the member frame closest to the cluster's centroid,
//and exports it as a structure file.
package represent

import (
	"fmt"
	"math"
	"path/filepath"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/cluster"
	v3 "github.com/rmera/gostates/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Frame is the representative frame of a cluster.
type Frame struct {
	Cluster  int
	Index    int     //index of the frame in the trajectory (and row in the clustered points)
	Distance float64 //euclidean distance from the frame's point to the centroid
	Coords   *v3.Matrix
	Top      chem.Atomer
}

//String returns a short description of the frame.
func (F *Frame) String() string {
	return fmt.Sprintf("cluster %d: frame %d (distance to centroid %.4g)", F.Cluster, F.Index, F.Distance)
}

//Select returns, for each of the model's clusters, the member whose row in points is closest to
//the cluster centroid. Ties go to the lowest frame index. If traj is not nil, the coordinates and
//the topology of the selected frames are included.
func Select(points *mat.Dense, model *cluster.Model, traj *chem.Trajectory) ([]*Frame, error) {
	n, d := points.Dims()
	if len(model.Labels) != n {
		return nil, chem.Errorf(chem.DimensionMismatch, "represent.Select", "%d points but %d labels", n, len(model.Labels))
	}
	if k, cd := model.Centroids.Dims(); k != model.K || cd != d {
		return nil, chem.Errorf(chem.DimensionMismatch, "represent.Select", "%dx%d centroids for %d clusters of %d-dimensional points", k, cd, model.K, d)
	}
	if traj != nil && traj.Len() != n {
		return nil, chem.Errorf(chem.DimensionMismatch, "represent.Select", "%d points but %d frames", n, traj.Len())
	}
	ret := make([]*Frame, model.K)
	for i, l := range model.Labels {
		if l < 0 || l >= model.K {
			return nil, chem.Errorf(chem.InputError, "represent.Select", "frame %d has label %d, out of [0,%d)", i, l, model.K)
		}
		dist := floats.Distance(points.RawRowView(i), model.Centroids.RawRowView(l), 2)
		//strict comparison, so the lowest index wins ties.
		if ret[l] == nil || dist < ret[l].Distance {
			ret[l] = &Frame{Cluster: l, Index: i, Distance: dist}
		}
	}
	for c, f := range ret {
		if f == nil {
			return nil, chem.Errorf(chem.ClusteringDegeneracy, "represent.Select", "cluster %d has no members", c)
		}
		if math.IsNaN(f.Distance) {
			return nil, chem.Errorf(chem.NumericDegeneracy, "represent.Select", "invalid distance for cluster %d", c)
		}
		if traj != nil {
			f.Coords = traj.Frames[f.Index].Coords
			f.Top = traj.Topology(f.Index)
		}
	}
	return ret, nil
}

//FileName returns the name of the structure file for the representative of cluster c.
func FileName(c int) string {
	return fmt.Sprintf("state_%d.pdb", c)
}

//Export writes each frame to dir as a PDB file named after its cluster, and returns the
//names of the files written. Frames need coordinates and topology.
func Export(frames []*Frame, dir string) ([]string, error) {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		if f.Coords == nil || f.Top == nil {
			return names, chem.Errorf(chem.InputError, "represent.Export", "representative of cluster %d has no structure", f.Cluster)
		}
		name := filepath.Join(dir, FileName(f.Cluster))
		remark := fmt.Sprintf("CLUSTER %d FRAME %d DISTANCE %.6f", f.Cluster, f.Index, f.Distance)
		if err := chem.PDBFileWrite(name, f.Coords, f.Top, remark); err != nil {
			if e, ok := err.(chem.Error); ok {
				e.Decorate("represent.Export")
			}
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
