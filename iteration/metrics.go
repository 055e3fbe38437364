// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package iteration

import "github.com/prometheus/client_golang/prometheus"

// metrics is nil (all calls no-op) unless the caller opted in via
// WithMetrics; per §5, WMC parallelism and evaluation itself never depend
// on these counters, so skipping registration costs nothing.
type metrics struct {
	rounds    prometheus.Counter
	variables prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, name string) *metrics {
	if reg == nil {
		return nil
	}
	if name == "" {
		name = "default"
	}
	m := &metrics{
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "provdl_iteration_rounds_total",
			Help:        "Semi-naive evaluation rounds executed.",
			ConstLabels: prometheus.Labels{"iteration": name},
		}),
		variables: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "provdl_iteration_variables",
			Help:        "Static and dynamic variables currently registered.",
			ConstLabels: prometheus.Labels{"iteration": name},
		}),
	}
	reg.MustRegister(m.rounds, m.variables)
	return m
}

func (m *metrics) round() {
	if m == nil {
		return
	}
	m.rounds.Inc()
}

func (m *metrics) setVariableCount(n int) {
	if m == nil {
		return
	}
	m.variables.Set(float64(n))
}
