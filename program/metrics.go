// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "counter_program"

type metrics struct {
	instructions *prometheus.CounterVec
	failures     *prometheus.CounterVec
	counter      prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions",
			Help:      "number of instructions applied by kind",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "number of failed invocations by error code",
		}, []string{"code"}),
		counter: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_counter",
			Help:      "counter value written by the most recent successful invocation",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(m.instructions),
		reg.Register(m.failures),
		reg.Register(m.counter),
	)
	return m, errs.Err
}
