/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"cmp"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"
	"golang.org/x/sync/singleflight"

	"github.com/suparena/objectassoc/datastore"
	"github.com/suparena/objectassoc/datastore/sharded"
	"github.com/suparena/objectassoc/metrics"
	"github.com/suparena/objectassoc/storagemodels"
)

// Key identifies an association site.
type Key = storagemodels.Key

// NewKey creates a new association key. Keys are compared by pointer, so
// two calls with the same name return two independent keys.
func NewKey(name string) *Key {
	return storagemodels.NewKey(name)
}

// Registry is a concurrency-safe side table of values associated with host
// objects. The zero value is not usable; create one with New.
type Registry struct {
	table   datastore.Table
	mode    storagemodels.ConcurrencyMode
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	flight  singleflight.Group

	hits       atomic.Int64
	misses     atomic.Int64
	inits      atomic.Int64
	mismatches atomic.Int64
	reclaimed  atomic.Int64
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Table == nil {
		o.Table = sharded.New(o.Shards)
	}

	return &Registry{
		table:   o.Table,
		mode:    o.Mode,
		logger:  o.Logger,
		metrics: o.Metrics,
		now:     o.Clock,
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry { return New() })

// Default returns the process-wide registry used by the root package.
func Default() *Registry {
	return defaultRegistry()
}

// Mode returns the registry's get-or-initialize concurrency mode.
func (r *Registry) Mode() storagemodels.ConcurrencyMode { return r.mode }

// Len returns the number of stored associations.
func (r *Registry) Len() int { return r.table.Len() }

// Hosts returns the number of hosts the registry is tracking.
func (r *Registry) Hosts() int { return r.table.Hosts() }

// Reset drops every association. Hosts dropped this way are not counted as
// reclaimed when they are later collected.
func (r *Registry) Reset() {
	r.table.Reset()
	r.metrics.SetTrackedHosts(0)
	r.logger.Debug("registry reset")
}

// Stats returns counters describing the registry's activity.
func (r *Registry) Stats() storagemodels.Stats {
	return storagemodels.Stats{
		Hosts:           r.table.Hosts(),
		Records:         r.table.Len(),
		Hits:            r.hits.Load(),
		Misses:          r.misses.Load(),
		Initializations: r.inits.Load(),
		TypeMismatches:  r.mismatches.Load(),
		HostsReclaimed:  r.reclaimed.Load(),
		Mode:            r.mode.String(),
	}
}

// Snapshot describes every stored association, ordered by host and key name.
func (r *Registry) Snapshot() []storagemodels.RecordInfo {
	var infos []storagemodels.RecordInfo
	r.table.Range(func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool {
		infos = append(infos, storagemodels.RecordInfo{
			Host:      host.String(),
			Key:       key.Name(),
			KeyID:     key.ID().String(),
			Type:      rec.Type.String(),
			Weak:      rec.Weak,
			CreatedAt: strfmt.DateTime(rec.CreatedAt),
			UpdatedAt: strfmt.DateTime(rec.UpdatedAt),
		})
		return true
	})

	slices.SortFunc(infos, func(a, b storagemodels.RecordInfo) int {
		return cmp.Or(
			cmp.Compare(a.Host, b.Host),
			cmp.Compare(a.Key, b.Key),
			cmp.Compare(a.KeyID, b.KeyID),
		)
	})
	return infos
}

// load returns the record for (host, key) if it carries the type tag want.
// A record under another type is reported and treated as missing.
func (r *Registry) load(host storagemodels.HostID, key *storagemodels.Key, want reflect.Type) (storagemodels.Record, bool) {
	if host.IsZero() || key == nil {
		return storagemodels.Record{}, false
	}

	rec, ok := r.table.Load(host, key)
	if !ok {
		return storagemodels.Record{}, false
	}
	if rec.Type != want {
		r.mismatches.Add(1)
		r.metrics.IncrementTypeMismatches()
		r.logger.Debug("association type mismatch",
			"host", host.String(),
			"key", key.Name(),
			"stored", rec.Type.String(),
			"requested", want.String())
		return storagemodels.Record{}, false
	}
	return rec, true
}

func (r *Registry) hit() {
	r.hits.Add(1)
	r.metrics.IncrementHits()
}

func (r *Registry) miss() {
	r.misses.Add(1)
	r.metrics.IncrementMisses()
}

func (r *Registry) record(value any, typ reflect.Type, weak bool) storagemodels.Record {
	now := r.now()
	return storagemodels.Record{
		Value:     value,
		Type:      typ,
		Weak:      weak,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// store writes rec and, the first time host gains an association, arranges
// for its associations to be dropped once host is collected.
func store[H any](r *Registry, host *H, id storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) {
	if r.table.Store(id, key, rec) {
		runtime.AddCleanup(host, r.reclaim, id)
		r.metrics.HostTracked()
		r.logger.Debug("tracking host", "host", id.String())
	}
	r.metrics.IncrementStores()
	runtime.KeepAlive(host)
}

func (r *Registry) remove(id storagemodels.HostID, key *storagemodels.Key) bool {
	if id.IsZero() || key == nil {
		return false
	}
	if !r.table.Delete(id, key) {
		return false
	}
	r.metrics.IncrementRemovals()
	return true
}

// reclaim runs on the runtime's cleanup goroutine after a host is collected.
func (r *Registry) reclaim(id storagemodels.HostID) {
	removed, tracked := r.table.DeleteHost(id)
	if !tracked {
		return
	}
	r.reclaimed.Add(1)
	r.metrics.HostReclaimed()
	r.logger.Debug("host reclaimed", "host", id.String(), "records", removed)
}
