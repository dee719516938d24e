/*
 * descriptor.go, part of gostates.
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

package descriptor

import (
	"fmt"
	"runtime"
	"sync"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/features"
	"golang.org/x/sync/errgroup"
)

//Kind identifies a descriptor.
type Kind string

const (
	Dihedrals Kind = "dihedrals"
	HBonds    Kind = "hbonds"
	Rg        Kind = "rg"
	RMSD      Kind = "rmsd"
	SASA      Kind = "sasa"
	Distances Kind = "distances"
)

//AllKinds returns all the descriptor kinds, in the order in which their blocks are built by default.
func AllKinds() []Kind {
	return []Kind{Dihedrals, HBonds, Rg, RMSD, SASA, Distances}
}

//ParseKind returns the Kind named s, or an InputError if there is no such descriptor.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", chem.Errorf(chem.InputError, "descriptor.ParseKind", "unknown descriptor '%s'", s)
}

//Options contains the options for the descriptor extraction.
type Options struct {
	ProbeRadius    float64  //solvent probe radius for SASA, nm.
	SpherePoints   int      //points per atom sphere for SASA.
	ReferenceFrame int      //reference for RMSD and for the donor-hydrogen pairing.
	MassWeighted   bool     //weight the radius of gyration with the atomic masses.
	BackboneNames  []string //atoms superimposed for the RMSD.
	DistanceAtoms  []string //atoms for the pairwise distances.
	Chains         string   //chains considered for the dihedrals, all of them if empty.
	HBond          HBondCriterion
	DonorHDistance float64 //largest donor-hydrogen distance, nm, to consider them bonded.
	Cpus           int
	//Progress, if not nil, is called once per finished frame with the number of frames
	//done so far and the total. Calls are serialized.
	Progress func(done, total int)
}

//DefaultOptions returns reasonable options for atomistic trajectories in nm.
func DefaultOptions() *Options {
	r := new(Options)
	r.ProbeRadius = 0.14
	r.SpherePoints = 960
	r.ReferenceFrame = 0
	r.MassWeighted = true
	r.BackboneNames = []string{"N", "CA", "C", "O"}
	r.DistanceAtoms = []string{"CA"}
	r.HBond = DefaultBakerHubbard()
	r.DonorHDistance = 0.13
	r.Cpus = runtime.NumCPU()
	return r
}

//descriptor is one kind of descriptor, set up for a given trajectory.
type descriptor interface {
	//columns are the names of the columns of the block.
	columns() []string
	//compute puts in row the values for the frame f, with topology top.
	compute(f *chem.Frame, top chem.Atomer, row []float64) error
}

func newDescriptor(k Kind, traj *chem.Trajectory, O *Options) (descriptor, error) {
	switch k {
	case Dihedrals:
		return newDihedrals(traj, O)
	case HBonds:
		return newHBonds(traj, O)
	case Rg:
		return newGyration(traj, O)
	case RMSD:
		return newRMSD(traj, O)
	case SASA:
		return newSASA(traj, O)
	case Distances:
		return newDistances(traj, O)
	}
	return nil, chem.Errorf(chem.InputError, "descriptor.Extract", "unknown descriptor '%s'", k)
}

//Extract computes the descriptors in kinds for every frame of traj, and returns one block per kind,
//in the order of kinds. If kinds is empty, all the descriptors are computed. If O is nil, the
//default options are used.
func Extract(traj *chem.Trajectory, kinds []Kind, O *Options) ([]*features.Block, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	if err := traj.Check(); err != nil {
		return nil, decorate(err, "descriptor.Extract")
	}
	N := traj.Len()
	descs := make([]descriptor, len(kinds))
	blocks := make([]*features.Block, len(kinds))
	seen := make(map[Kind]bool)
	for i, k := range kinds {
		if seen[k] {
			return nil, chem.Errorf(chem.InputError, "descriptor.Extract", "descriptor %s requested twice", k)
		}
		seen[k] = true
		d, err := newDescriptor(k, traj, O)
		if err != nil {
			return nil, decorate(err, "descriptor.Extract")
		}
		descs[i] = d
		blocks[i] = features.NewBlock(string(k), d.columns(), N)
	}
	cpus := O.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(cpus)
	var mu sync.Mutex
	done := 0
	for fi := range traj.Frames {
		fi := fi
		g.Go(func() error {
			f := traj.Frames[fi]
			top := traj.Topology(fi)
			for i, d := range descs {
				//each frame only writes its own row, so no locking is needed.
				row := blocks[i].Data.RawRowView(fi)
				if err := d.compute(f, top, row); err != nil {
					return decorate(err, fmt.Sprintf("descriptor.Extract (%s, frame %d)", kinds[i], fi))
				}
			}
			if O.Progress != nil {
				mu.Lock()
				done++
				O.Progress(done, N)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

func decorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}

//selection caches the indexes of the atoms selected by sel for the trajectory topology, and
//recomputes them for frames with their own topology, which must give the same number of atoms.
type selection struct {
	name string
	sel  func(chem.Atomer) ([]int, error)
	top  chem.Atomer
	idx  []int
}

func newSelection(name string, top chem.Atomer, sel func(chem.Atomer) ([]int, error)) (*selection, error) {
	idx, err := sel(top)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, chem.Errorf(chem.InputError, "descriptor."+name, "the %s descriptor selects no atoms", name)
	}
	return &selection{name: name, sel: sel, top: top, idx: idx}, nil
}

//indexes returns the selection for the frame with topology top.
func (S *selection) indexes(f *chem.Frame, top chem.Atomer) ([]int, error) {
	if top == S.top {
		return S.idx, nil
	}
	idx, err := S.sel(top)
	if err != nil {
		return nil, err
	}
	if len(idx) != len(S.idx) {
		return nil, chem.Errorf(chem.DimensionMismatch, "descriptor."+S.name, "frame %d selects %d atoms for the %s descriptor, the trajectory %d", f.Index, len(idx), S.name, len(S.idx))
	}
	return idx, nil
}

//namesSelector returns a selection function for the atoms with names in names.
func namesSelector(names []string) func(chem.Atomer) ([]int, error) {
	return func(top chem.Atomer) ([]int, error) {
		return chem.SelectNames(top, names, nil), nil
	}
}
