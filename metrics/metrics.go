/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package metrics exposes Prometheus collectors for registry activity.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name when no namespace is given.
const DefaultNamespace = "objectassoc"

// Metrics holds the registry's Prometheus collectors
type Metrics struct {
	Hits            prometheus.Counter
	Misses          prometheus.Counter
	Initializations prometheus.Counter
	Stores          prometheus.Counter
	Removals        prometheus.Counter
	TypeMismatches  prometheus.Counter
	HostsReclaimed  prometheus.Counter
	TrackedHosts    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_hits_total",
			Help:      "Total number of reads that found a typed association",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_misses_total",
			Help:      "Total number of reads that found no usable association",
		}),
		Initializations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initializations_total",
			Help:      "Total number of initializer invocations by get-or-initialize",
		}),
		Stores: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stores_total",
			Help:      "Total number of associations written",
		}),
		Removals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Total number of associations removed explicitly",
		}),
		TypeMismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "type_mismatches_total",
			Help:      "Total number of reads that found a value of another type",
		}),
		HostsReclaimed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hosts_reclaimed_total",
			Help:      "Total number of hosts whose associations were dropped after collection",
		}),
		TrackedHosts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_hosts",
			Help:      "Current number of hosts tracked by the registry",
		}),
	}
}

// IncrementHits records a lookup that found a typed value.
func (m *Metrics) IncrementHits() {
	if m != nil {
		m.Hits.Inc()
	}
}

// IncrementMisses records a lookup that found nothing usable.
func (m *Metrics) IncrementMisses() {
	if m != nil {
		m.Misses.Inc()
	}
}

// IncrementInitializations records an initializer call.
func (m *Metrics) IncrementInitializations() {
	if m != nil {
		m.Initializations.Inc()
	}
}

// IncrementStores records a stored association.
func (m *Metrics) IncrementStores() {
	if m != nil {
		m.Stores.Inc()
	}
}

// IncrementRemovals records a removed association.
func (m *Metrics) IncrementRemovals() {
	if m != nil {
		m.Removals.Inc()
	}
}

// IncrementTypeMismatches records a value read back under the wrong type.
func (m *Metrics) IncrementTypeMismatches() {
	if m != nil {
		m.TypeMismatches.Inc()
	}
}

// HostTracked records a host gaining its first association.
func (m *Metrics) HostTracked() {
	if m != nil {
		m.TrackedHosts.Inc()
	}
}

// HostReclaimed records a collected host being dropped.
func (m *Metrics) HostReclaimed() {
	if m != nil {
		m.HostsReclaimed.Inc()
		m.TrackedHosts.Dec()
	}
}

// HostUntracked records a live host losing all of its associations at once.
func (m *Metrics) HostUntracked() {
	if m != nil {
		m.TrackedHosts.Dec()
	}
}

// SetTrackedHosts overwrites the tracked hosts gauge.
func (m *Metrics) SetTrackedHosts(count int) {
	if m != nil {
		m.TrackedHosts.Set(float64(count))
	}
}
