/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("Counters", func(t *testing.T) {
		m := New(prometheus.NewRegistry(), "")

		m.IncrementHits()
		m.IncrementHits()
		m.IncrementMisses()
		m.IncrementInitializations()
		m.IncrementStores()
		m.IncrementRemovals()
		m.IncrementTypeMismatches()

		assert.Equal(t, 2.0, testutil.ToFloat64(m.Hits))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Initializations))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Stores))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Removals))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.TypeMismatches))
	})

	t.Run("HostLifecycle", func(t *testing.T) {
		m := New(prometheus.NewRegistry(), "test")

		m.HostTracked()
		m.HostTracked()
		m.HostReclaimed()

		assert.Equal(t, 1.0, testutil.ToFloat64(m.TrackedHosts))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HostsReclaimed))

		m.SetTrackedHosts(0)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.TrackedHosts))
	})

	t.Run("Namespace", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := New(reg, "custom")
		m.IncrementHits()

		families, err := reg.Gather()
		require.NoError(t, err)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "custom_lookup_hits_total")
	})

	t.Run("NilIsNoop", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() {
			m.IncrementHits()
			m.IncrementMisses()
			m.IncrementInitializations()
			m.IncrementStores()
			m.IncrementRemovals()
			m.IncrementTypeMismatches()
			m.HostTracked()
			m.HostReclaimed()
			m.SetTrackedHosts(3)
		})
	})
}
