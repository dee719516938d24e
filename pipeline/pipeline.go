/*
 * pipeline.go, part of gostates.
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

//Package pipeline runs the whole analysis on a trajectory: descriptor extraction, feature
//aggregation and standardization, PCA, estimation of the number of clusters, k-means
//clustering, the classifier benchmark and the selection of representative frames.
//Each stage gets its input from the typed output of the previous ones, and all the
//outputs are kept in a Result.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/classify"
	"github.com/rmera/gostates/cluster"
	"github.com/rmera/gostates/descriptor"
	"github.com/rmera/gostates/features"
	"github.com/rmera/gostates/pca"
	"github.com/rmera/gostates/represent"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

//Stage names, as used in logs, metrics and diagnostics.
const (
	StageFeatures    = "features"
	StageStandardize = "standardize"
	StagePCA         = "pca"
	StageEstimateK   = "estimatek"
	StageCluster     = "cluster"
	StageBenchmark   = "benchmark"
	StageRepresent   = "represent"
)

//Diagnostic is a non-fatal problem found in a stage.
type Diagnostic struct {
	Stage string
	Kind  chem.ErrKind
	Err   error
}

func (D Diagnostic) String() string {
	return D.Stage + ": " + D.Err.Error()
}

//Result contains the outputs of every stage of a run.
type Result struct {
	RunID           string
	Blocks          []*features.Block
	Features        *features.Matrix
	Standardizer    *features.Standardizer
	Standardized    *features.Matrix
	PCA             *pca.Model
	Components      int        //principal components kept
	Points          *mat.Dense //frames in the reduced space, N x Components
	Reconstruction  float64    //mean squared reconstruction error with Components components
	Estimate        *cluster.Estimate
	Clustering      *cluster.Model
	Benchmark       []*classify.Result
	Representatives []*represent.Frame
	Diagnostics     []Diagnostic
}

//Pipeline runs the analysis with a given configuration.
type Pipeline struct {
	Config  *Config
	Log     zerolog.Logger
	Metrics *Metrics
	RunID   string
	//Progress, if not nil, is called after each frame is processed by the descriptor extraction.
	Progress func(done, total int)
}

//New returns a pipeline for the configuration C, which is validated. Every log entry
//of the pipeline carries a new run id.
func New(C *Config, log zerolog.Logger) (*Pipeline, error) {
	if err := C.Validate(); err != nil {
		return nil, errDecorate(err, "pipeline.New")
	}
	id := uuid.New().String()
	P := &Pipeline{
		Config:  C,
		RunID:   id,
		Log:     log.With().Str("run", id).Logger(),
		Metrics: NewMetrics(id),
	}
	return P, nil
}

//kindOf returns the kind of err if it is, or wraps, a *chem.CError, and 0 otherwise.
func kindOf(err error) chem.ErrKind {
	var ce *chem.CError
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return 0
}

//diagnose records err, if not nil, as a non-fatal problem of stage.
func (P *Pipeline) diagnose(R *Result, stage string, err error) {
	if err == nil {
		return
	}
	d := Diagnostic{Stage: stage, Kind: kindOf(err), Err: err}
	R.Diagnostics = append(R.Diagnostics, d)
	P.Metrics.Diagnostics.WithLabelValues(d.Kind.String()).Inc()
	P.Log.Warn().Str("stage", stage).Str("kind", d.Kind.String()).Err(err).Msg("recovered")
}

//fatal logs and wraps an error that aborts the run in stage.
func (P *Pipeline) fatal(stage string, err error) error {
	P.Log.Error().Str("stage", stage).Err(err).Msg("run aborted")
	return errors.Wrapf(err, "stage %s", stage)
}

//Run runs every stage on traj and returns their outputs. Input and dimension errors abort the
//run, other problems are recorded in the result's Diagnostics. The context is only checked
//between stages.
func (P *Pipeline) Run(ctx context.Context, traj *chem.Trajectory) (*Result, error) {
	C := P.Config
	seed := *C.RandomSeed
	R := &Result{RunID: P.RunID}
	if err := traj.Check(); err != nil {
		return nil, P.fatal("input", err)
	}
	if C.ReferenceFrameIndex >= traj.Len() {
		return nil, P.fatal("input", chem.Errorf(chem.InputError, "Pipeline.Run", "reference frame %d, but the trajectory has %d frames", C.ReferenceFrameIndex, traj.Len()))
	}
	P.Metrics.Frames.Set(float64(traj.Len()))
	P.Log.Info().Int("frames", traj.Len()).Int("atoms", traj.Topology(0).Len()).Int64("seed", seed).Msg("starting")

	stage := func(name string) (time.Time, error) {
		if err := ctx.Err(); err != nil {
			return time.Time{}, errors.Wrapf(err, "run canceled before stage %s", name)
		}
		P.Log.Debug().Str("stage", name).Msg("starting stage")
		return time.Now(), nil
	}

	//descriptors
	start, err := stage(StageFeatures)
	if err != nil {
		return nil, err
	}
	kinds, err := C.Kinds()
	if err != nil {
		return nil, P.fatal(StageFeatures, err)
	}
	dopts := descriptor.DefaultOptions()
	dopts.ProbeRadius = C.ProbeRadius
	dopts.ReferenceFrame = C.ReferenceFrameIndex
	dopts.Cpus = C.Cpus
	dopts.Progress = P.Progress
	if R.Blocks, err = descriptor.Extract(traj, kinds, dopts); err != nil {
		return nil, P.fatal(StageFeatures, err)
	}
	if R.Features, err = features.Aggregate(R.Blocks); err != nil {
		return nil, P.fatal(StageFeatures, err)
	}
	_, D := R.Features.Dims()
	P.Metrics.Features.Set(float64(D))
	P.Metrics.observe(StageFeatures, start)
	P.Log.Info().Str("stage", StageFeatures).Int("blocks", len(R.Blocks)).Int("columns", D).Msg("features extracted")

	//standardization
	if start, err = stage(StageStandardize); err != nil {
		return nil, err
	}
	var Z *mat.Dense
	if R.Standardizer, Z, err = features.FitStandardize(R.Features.Data); err != nil {
		return nil, P.fatal(StageStandardize, err)
	}
	if R.Standardized, err = R.Features.WithData(Z); err != nil {
		return nil, P.fatal(StageStandardize, err)
	}
	P.diagnose(R, StageStandardize, R.Standardizer.DegeneracyError(R.Features))
	P.Metrics.observe(StageStandardize, start)

	//PCA
	if start, err = stage(StagePCA); err != nil {
		return nil, err
	}
	if R.PCA, err = pca.Fit(Z); err != nil {
		return nil, P.fatal(StagePCA, err)
	}
	R.Components, err = R.PCA.SelectComponents(C.VarianceThresholdPct)
	if chem.IsKind(err, chem.NumericDegeneracy) {
		P.diagnose(R, StagePCA, err)
	} else if err != nil {
		return nil, P.fatal(StagePCA, err)
	}
	if R.Points, err = R.PCA.Transform(Z, R.Components); err != nil {
		return nil, P.fatal(StagePCA, err)
	}
	if R.Reconstruction, err = R.PCA.ReconstructionError(Z, R.Components); err != nil {
		return nil, P.fatal(StagePCA, err)
	}
	P.Metrics.Components.Set(float64(R.Components))
	P.Metrics.observe(StagePCA, start)
	cum := R.PCA.CumulativeVariance()
	P.Log.Info().Str("stage", StagePCA).Int("components", R.Components).Int("rank", R.PCA.Rank).
		Float64("variance", cum[R.Components-1]).Float64("reconstruction", R.Reconstruction).Msg("reduced")

	//number of clusters
	if start, err = stage(StageEstimateK); err != nil {
		return nil, err
	}
	copts := cluster.DefaultOptions()
	copts.Cpus = C.Cpus
	if R.Estimate, err = cluster.EstimateK(R.Points, C.Candidates(), C.NRunsForElbow, seed, cluster.Elbow{}, copts); err != nil {
		return nil, P.fatal(StageEstimateK, err)
	}
	if R.Estimate.Reseeds > 0 {
		P.diagnose(R, StageEstimateK, chem.Errorf(chem.ClusteringDegeneracy, "cluster.EstimateK", "%d empty clusters reseeded", R.Estimate.Reseeds))
	}
	if R.Estimate.Fallback {
		P.diagnose(R, StageEstimateK, chem.Errorf(chem.ClusteringDegeneracy, "cluster.EstimateK", "too few distinct points for the elbow, using k=%d", R.Estimate.K))
	}
	if R.Estimate.Clamped {
		P.Log.Warn().Str("stage", StageEstimateK).Int("elbow", R.Estimate.Raw).Int("k", R.Estimate.K).Msg("elbow clamped")
	}
	P.Metrics.observe(StageEstimateK, start)
	P.Log.Info().Str("stage", StageEstimateK).Ints("candidates", R.Estimate.KRange).Floats64("inertia", R.Estimate.Inertia).Int("k", R.Estimate.K).Msg("number of clusters chosen")

	//clustering
	if start, err = stage(StageCluster); err != nil {
		return nil, err
	}
	if R.Clustering, err = cluster.KMeans(R.Points, R.Estimate.K, seed, copts); err != nil {
		return nil, P.fatal(StageCluster, err)
	}
	if R.Clustering.Reseeds > 0 {
		P.diagnose(R, StageCluster, chem.Errorf(chem.ClusteringDegeneracy, "cluster.KMeans", "%d empty clusters reseeded", R.Clustering.Reseeds))
	}
	P.Metrics.Clusters.Set(float64(R.Clustering.K))
	P.Metrics.observe(StageCluster, start)
	P.Log.Info().Str("stage", StageCluster).Ints("sizes", R.Clustering.Sizes()).Float64("inertia", R.Clustering.Inertia).Msg("clustered")

	//representatives. They only depend on the clustering, so they go before the benchmark.
	if start, err = stage(StageRepresent); err != nil {
		return nil, err
	}
	if R.Representatives, err = represent.Select(R.Points, R.Clustering, traj); err != nil {
		return nil, P.fatal(StageRepresent, err)
	}
	P.Metrics.observe(StageRepresent, start)
	for _, f := range R.Representatives {
		P.Log.Info().Str("stage", StageRepresent).Int("cluster", f.Cluster).Int("frame", f.Index).Float64("distance", f.Distance).Msg("representative")
	}

	//classifiers
	if start, err = stage(StageBenchmark); err != nil {
		return nil, err
	}
	fams, err := C.Families()
	if err != nil {
		return nil, P.fatal(StageBenchmark, err)
	}
	bopts := classify.DefaultOptions()
	bopts.CVFolds = C.CrossValidationFolds
	bopts.CurveFolds = C.LearningCurveFolds
	bopts.Cpus = C.Cpus
	if R.Benchmark, err = classify.Benchmark(fams, R.Points, R.Clustering.Labels, seed, bopts); err != nil {
		return nil, P.fatal(StageBenchmark, err)
	}
	for _, b := range R.Benchmark {
		if b.Err != nil {
			P.diagnose(R, StageBenchmark, errors.Wrapf(b.Err, "classifier %s", b.Name))
			continue
		}
		P.Metrics.Accuracy.WithLabelValues(b.Name).Set(b.Accuracy)
		P.Log.Info().Str("stage", StageBenchmark).Str("family", b.Name).Float64("accuracy", b.Accuracy).Float64("cv", b.CVMean).Msg("evaluated")
	}
	P.Metrics.observe(StageBenchmark, start)

	if C.MetricsPath != "" {
		if err := P.Metrics.WriteFile(C.MetricsPath); err != nil {
			P.Log.Error().Err(err).Str("path", C.MetricsPath).Msg("could not write metrics")
		}
	}
	P.Log.Info().Int("k", R.Clustering.K).Int("diagnostics", len(R.Diagnostics)).Msg("done")
	return R, nil
}
