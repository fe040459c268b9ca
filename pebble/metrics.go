// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsInterval = 10 * time.Second

type metrics struct {
	getLatency prometheus.Summary

	compactions       prometheus.Gauge
	activeCompactions prometheus.Gauge
	zombieTableSize   prometheus.Gauge
	zombieTableCount  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		getLatency: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "pebble",
			Name:      "read_latency",
			Help:      "time spent waiting for db get (ns)",
		}),
		compactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "compactions",
			Help:      "number of compactions since open",
		}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
		zombieTableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "zombie_table_size",
			Help:      "number of bytes present in tables no longer referenced by the db that are referenced by iterators",
		}),
		zombieTableCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "zombie_table_count",
			Help:      "number of table files no longer referenced by the db that are referenced by iterators",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(m.getLatency),
		reg.Register(m.compactions),
		reg.Register(m.activeCompactions),
		reg.Register(m.zombieTableSize),
		reg.Register(m.zombieTableCount),
	)
	return m, errs.Err
}

func (m *metrics) update(pm *pebble.Metrics) {
	m.compactions.Set(float64(pm.Compact.Count))
	m.activeCompactions.Set(float64(pm.Compact.NumInProgress))
	m.zombieTableSize.Set(float64(pm.Table.ZombieSize))
	m.zombieTableCount.Set(float64(pm.Table.ZombieCount))
}
