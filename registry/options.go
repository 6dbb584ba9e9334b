/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"log/slog"
	"time"

	"github.com/suparena/objectassoc/datastore"
	"github.com/suparena/objectassoc/metrics"
	"github.com/suparena/objectassoc/storagemodels"
)

// Options configures a Registry
type Options struct {
	Table   datastore.Table               // Backing table (default: sharded)
	Shards  int                           // Shard count for the default table
	Mode    storagemodels.ConcurrencyMode // get-or-initialize behavior (default: LastWriteWins)
	Logger  *slog.Logger                  // Debug logging (default: discard)
	Metrics *metrics.Metrics              // Prometheus collectors (default: none)
	Clock   func() time.Time              // Timestamp source (default: time.Now)
}

// Option is a functional option for configuring a Registry
type Option func(*Options)

// DefaultOptions returns the default registry options
func DefaultOptions() Options {
	return Options{
		Mode:   storagemodels.LastWriteWins,
		Logger: slog.New(slog.DiscardHandler),
		Clock:  time.Now,
	}
}

// WithTable sets the backing table
func WithTable(t datastore.Table) Option {
	return func(opts *Options) {
		opts.Table = t
	}
}

// WithShards sets the shard count of the default table
func WithShards(n int) Option {
	return func(opts *Options) {
		opts.Shards = n
	}
}

// WithConcurrencyMode sets how racing get-or-initialize calls behave
func WithConcurrencyMode(mode storagemodels.ConcurrencyMode) Option {
	return func(opts *Options) {
		opts.Mode = mode
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock sets the timestamp source
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		if now != nil {
			opts.Clock = now
		}
	}
}
