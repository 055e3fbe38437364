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

import (
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kevinawalsh/provdl/variable"
)

// Options configures an Iteration. The zero value is valid: it yields a
// discarding logger, default variable rotation thresholds, and no metrics.
type Options struct {
	Name            string
	Logger          hclog.Logger
	VariableOptions variable.Options
	Registerer      prometheus.Registerer
}

// Option mutates an Options in place; see With* constructors below.
type Option func(*Options)

// WithLogger attaches a logger; sub-components log under its "iteration"
// name.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithVariableOptions overrides the size-doubling and gallop-crossover
// thresholds every variable created by this Iteration uses.
func WithVariableOptions(vo variable.Options) Option {
	return func(o *Options) { o.VariableOptions = vo }
}

// WithMetrics registers a round counter and a variable-count gauge against reg,
// labeled with name. Metrics are off (nil Registerer) by default.
func WithMetrics(reg prometheus.Registerer, name string) Option {
	return func(o *Options) { o.Registerer = reg; o.Name = name }
}
