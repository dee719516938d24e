/*
 * metrics.go, part of gostates.
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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	chem "github.com/rmera/gostates"
)

//Metrics holds the Prometheus collectors of one pipeline run, in their own registry.
type Metrics struct {
	Registry    *prometheus.Registry
	StageTime   *prometheus.HistogramVec
	Frames      prometheus.Gauge
	Features    prometheus.Gauge
	Components  prometheus.Gauge
	Clusters    prometheus.Gauge
	Diagnostics *prometheus.CounterVec
	Accuracy    *prometheus.GaugeVec
}

//NewMetrics returns a registry with the pipeline collectors registered, and the run label set to run.
func NewMetrics(run string) *Metrics {
	labels := prometheus.Labels{"run": run}
	M := &Metrics{
		Registry: prometheus.NewRegistry(),
		StageTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "gostates",
			Name:        "stage_duration_seconds",
			Help:        "Wall time of each pipeline stage.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		Frames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gostates", Name: "frames", Help: "Frames in the trajectory.", ConstLabels: labels,
		}),
		Features: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gostates", Name: "features", Help: "Columns of the feature matrix.", ConstLabels: labels,
		}),
		Components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gostates", Name: "pca_components", Help: "Principal components kept.", ConstLabels: labels,
		}),
		Clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gostates", Name: "clusters", Help: "Number of clusters chosen.", ConstLabels: labels,
		}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gostates", Name: "diagnostics_total", Help: "Non-fatal problems recorded, by kind.", ConstLabels: labels,
		}, []string{"kind"}),
		Accuracy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gostates", Name: "classifier_accuracy", Help: "Holdout accuracy of each classifier family.", ConstLabels: labels,
		}, []string{"family"}),
	}
	M.Registry.MustRegister(M.StageTime, M.Frames, M.Features, M.Components, M.Clusters, M.Diagnostics, M.Accuracy)
	return M
}

//observe records the time elapsed since start for stage.
func (M *Metrics) observe(stage string, start time.Time) {
	M.StageTime.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

//WriteFile writes the metrics to name in the Prometheus text format.
func (M *Metrics) WriteFile(name string) error {
	if err := prometheus.WriteToTextfile(name, M.Registry); err != nil {
		return chem.Errorf(chem.InputError, "Metrics.WriteFile", "%s", err.Error())
	}
	return nil
}
