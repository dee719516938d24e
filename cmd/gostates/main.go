/*
 * main.go, part of gostates.
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

//gostates finds the conformational states of a molecular dynamics trajectory, picks a
//representative structure for each, and benchmarks classifiers on the state assignment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/chemjson"
	"github.com/rmera/gostates/pipeline"
	"github.com/rmera/gostates/traj/dcd"
	"github.com/rmera/gostates/traj/stf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	name    = "gostates"
	version = "0.1.0"
)

type args struct {
	Traj        string   `help:"Trajectory file (stf, or dcd with -top)" arg:"-t"`
	Top         string   `help:"Topology file (JSON atom list). Overrides the topology stored in the trajectory"`
	Config      string   `help:"YAML configuration file. Flags override its values" arg:"-c"`
	Seed        *int64   `help:"Random seed (required, here or in the configuration file)" arg:"-s"`
	Out         string   `help:"Output directory" arg:"-o"`
	Kmin        *int     `help:"Smallest number of clusters tried"`
	Kmax        *int     `help:"Largest number of clusters tried"`
	Runs        *int     `help:"Clustering runs per candidate number of clusters"`
	Variance    *float64 `help:"Percentage of the variance kept by the PCA"`
	Probe       *float64 `help:"Probe radius for the SASA, nm"`
	Ref         *int     `help:"Reference frame for RMSD"`
	CVFolds     *int     `help:"Cross-validation folds"`
	LCFolds     *int     `help:"Stratified folds for the learning curves"`
	Descriptors []string `help:"Descriptors to compute (dihedrals hbonds rg rmsd sasa distances)" arg:"separate"`
	Classifiers []string `help:"Classifier families to benchmark (svm knn forest logistic)" arg:"separate"`
	Cpus        int      `help:"Goroutines for the parallel stages (0: all CPUs)"`
	Compress    bool     `help:"Compress the CSV output with zstd"`
	Metrics     string   `help:"Write the run metrics, in Prometheus text format, to this file" arg:"-m"`
	NoProgress  bool     `help:"Don't show a progress bar"`
	Verbose     bool     `help:"Debug output" arg:"-v"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf("%s %s: conformational states of MD trajectories", name, version)
}

//config builds the pipeline configuration from the file given, if any, and the flags.
func (a args) config() (*pipeline.Config, error) {
	C := pipeline.DefaultConfig()
	if a.Config != "" {
		var err error
		if C, err = pipeline.LoadConfig(a.Config); err != nil {
			return nil, err
		}
	}
	if a.Traj != "" {
		C.TrajectoryPath = a.Traj
	}
	if a.Top != "" {
		C.TopologyPath = a.Top
	}
	if a.Seed != nil {
		C.Seed(*a.Seed)
	}
	if a.Out != "" {
		C.OutputDir = a.Out
	}
	if len(C.KRange) == 2 {
		setInt(&C.KRange[0], a.Kmin)
		setInt(&C.KRange[1], a.Kmax)
	}
	setInt(&C.NRunsForElbow, a.Runs)
	setInt(&C.ReferenceFrameIndex, a.Ref)
	setInt(&C.CrossValidationFolds, a.CVFolds)
	setInt(&C.LearningCurveFolds, a.LCFolds)
	if a.Variance != nil {
		C.VarianceThresholdPct = *a.Variance
	}
	if a.Probe != nil {
		C.ProbeRadius = *a.Probe
	}
	if len(a.Descriptors) > 0 {
		C.Descriptors = a.Descriptors
	}
	if len(a.Classifiers) > 0 {
		C.Classifiers = a.Classifiers
	}
	if a.Cpus > 0 {
		C.Cpus = a.Cpus
	}
	if a.Compress {
		C.Compress = true
	}
	if a.Metrics != "" {
		C.MetricsPath = a.Metrics
	}
	if C.TrajectoryPath == "" {
		return nil, chem.NewError(chem.InputError, "gostates", "no trajectory given")
	}
	return C, C.Validate()
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

//load reads the trajectory and, if given, the topology file. DCD trajectories need the
//topology file, STF trajectories can carry the topology in their header.
func load(C *pipeline.Config) (*chem.Trajectory, error) {
	var top chem.Atomer
	if C.TopologyPath != "" {
		t, err := chemjson.ReadTopologyFile(C.TopologyPath)
		if err != nil {
			return nil, err
		}
		top = t
	}
	if dcd.IsDCD(C.TrajectoryPath) {
		return dcd.ReadFile(C.TrajectoryPath, top)
	}
	return stf.ReadFile(C.TrajectoryPath, top)
}

func main() {
	var a args
	arg.MustParse(&a)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if a.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	C, err := a.config()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	traj, err := load(C)
	if err != nil {
		log.Fatal().Err(err).Str("trajectory", C.TrajectoryPath).Msg("could not read the input")
	}
	P, err := pipeline.New(C, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	var bar *pb.ProgressBar
	if !a.NoProgress {
		bar = pb.StartNew(traj.Len())
		P.Progress = func(done, total int) {
			bar.SetCurrent(int64(done))
			if done == total {
				bar.Finish()
			}
		}
	}
	R, err := P.Run(context.Background(), traj)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	names, err := pipeline.Export(R, C.OutputDir, C.Compress)
	if err != nil {
		log.Fatal().Err(err).Str("dir", C.OutputDir).Msg("could not write the results")
	}
	log.Info().Int("files", len(names)).Str("dir", C.OutputDir).Msg("results written")

	fmt.Printf("%d states (%s)\n", R.Clustering.K, R.Estimate)
	for _, f := range R.Representatives {
		fmt.Println(f)
	}
	fmt.Println("Classifier ranking:")
	for i, b := range R.Benchmark {
		fmt.Printf("%d. %s\n", i+1, b)
	}
	for _, d := range R.Diagnostics {
		fmt.Println("warning:", d)
	}
}
