/*
 * config.go, part of gostates.
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

package pipeline

import (
	"bytes"
	"io"
	"os"
	"runtime"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/classify"
	"github.com/rmera/gostates/descriptor"
	"gopkg.in/yaml.v3"
)

//Config contains every option of a pipeline run. It can be read from a YAML file
//with the keys given in the field tags.
type Config struct {
	TrajectoryPath       string   `yaml:"trajectoryPath"`
	TopologyPath         string   `yaml:"topologyPath"`
	ProbeRadius          float64  `yaml:"probeRadius"`
	ReferenceFrameIndex  int      `yaml:"referenceFrameIndex"`
	VarianceThresholdPct float64  `yaml:"varianceThresholdPct"`
	KRange               []int    `yaml:"kRange"` //smallest and largest number of clusters tried.
	NRunsForElbow        int      `yaml:"nRunsForElbow"`
	CrossValidationFolds int      `yaml:"crossValidationFolds"`
	LearningCurveFolds   int      `yaml:"learningCurveFolds"`
	RandomSeed           *int64   `yaml:"randomSeed"` //required, there is no default seed.
	Descriptors          []string `yaml:"descriptors"`
	Classifiers          []string `yaml:"classifiers"`
	OutputDir            string   `yaml:"outputDir"`
	Cpus                 int      `yaml:"cpus"`
	Compress             bool     `yaml:"compress"`
	MetricsPath          string   `yaml:"metricsPath"`
}

//DefaultConfig returns the default configuration. It has no random seed, which
//has to be set before the configuration is valid.
func DefaultConfig() *Config {
	r := new(Config)
	r.ProbeRadius = 0.14
	r.ReferenceFrameIndex = 0
	r.VarianceThresholdPct = 95
	r.KRange = []int{1, 10}
	r.NRunsForElbow = 10
	r.CrossValidationFolds = 4
	r.LearningCurveFolds = 5
	for _, k := range descriptor.AllKinds() {
		r.Descriptors = append(r.Descriptors, string(k))
	}
	for _, f := range classify.Families() {
		r.Classifiers = append(r.Classifiers, f.Name)
	}
	r.OutputDir = "."
	r.Cpus = runtime.NumCPU()
	return r
}

//LoadConfig reads the YAML file name on top of the default configuration, so keys
//absent from the file keep their default values. Unknown keys are an error.
func LoadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, "pipeline.LoadConfig", "%s", err.Error())
	}
	C := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(C); err != nil && err != io.EOF {
		return nil, chem.Errorf(chem.InputError, "pipeline.LoadConfig", "%s: %s", name, err.Error())
	}
	return C, nil
}

//Seed sets the random seed.
func (C *Config) Seed(seed int64) {
	C.RandomSeed = &seed
}

//Candidates returns the numbers of clusters to try, from KRange.
func (C *Config) Candidates() []int {
	ret := make([]int, 0, C.KRange[1]-C.KRange[0]+1)
	for k := C.KRange[0]; k <= C.KRange[1]; k++ {
		ret = append(ret, k)
	}
	return ret
}

//Kinds returns the descriptor kinds to compute.
func (C *Config) Kinds() ([]descriptor.Kind, error) {
	ret := make([]descriptor.Kind, 0, len(C.Descriptors))
	for _, s := range C.Descriptors {
		k, err := descriptor.ParseKind(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, k)
	}
	return ret, nil
}

//Families returns the classifier families to benchmark.
func (C *Config) Families() ([]classify.Family, error) {
	ret := make([]classify.Family, 0, len(C.Classifiers))
	for _, s := range C.Classifiers {
		f, ok := classify.FamilyByName(s)
		if !ok {
			return nil, chem.Errorf(chem.InputError, "Config.Families", "unknown classifier '%s'", s)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

//Validate returns an InputError describing the first invalid option found, or nil.
//It does not check that the input files exist.
func (C *Config) Validate() error {
	const caller = "Config.Validate"
	switch {
	case C.RandomSeed == nil:
		return chem.NewError(chem.InputError, caller, "randomSeed is required")
	case C.ProbeRadius < 0:
		return chem.Errorf(chem.InputError, caller, "negative probeRadius %g", C.ProbeRadius)
	case C.ReferenceFrameIndex < 0:
		return chem.Errorf(chem.InputError, caller, "negative referenceFrameIndex %d", C.ReferenceFrameIndex)
	case C.VarianceThresholdPct <= 0 || C.VarianceThresholdPct > 100:
		return chem.Errorf(chem.InputError, caller, "varianceThresholdPct %g out of (0, 100]", C.VarianceThresholdPct)
	case len(C.KRange) != 2 || C.KRange[0] < 1 || C.KRange[1]-C.KRange[0] < 2:
		return chem.Errorf(chem.InputError, caller, "kRange must be [min, max] with 1 <= min and at least 3 values, got %v", C.KRange)
	case C.NRunsForElbow < 1:
		return chem.Errorf(chem.InputError, caller, "nRunsForElbow must be positive, got %d", C.NRunsForElbow)
	case C.CrossValidationFolds < 2:
		return chem.Errorf(chem.InputError, caller, "crossValidationFolds must be at least 2, got %d", C.CrossValidationFolds)
	case C.LearningCurveFolds < 2:
		return chem.Errorf(chem.InputError, caller, "learningCurveFolds must be at least 2, got %d", C.LearningCurveFolds)
	case len(C.Descriptors) == 0:
		return chem.NewError(chem.InputError, caller, "no descriptors selected")
	case len(C.Classifiers) == 0:
		return chem.NewError(chem.InputError, caller, "no classifiers selected")
	}
	if _, err := C.Kinds(); err != nil {
		return errDecorate(err, caller)
	}
	if _, err := C.Families(); err != nil {
		return errDecorate(err, caller)
	}
	return nil
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}
