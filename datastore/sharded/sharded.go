/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sharded

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/suparena/objectassoc/datastore"
	"github.com/suparena/objectassoc/storagemodels"
)

// DefaultShards is the shard count used when New is given a non-positive value.
const DefaultShards = 32

var _ datastore.Table = (*Table)(nil)

type shard struct {
	mu    sync.RWMutex
	hosts map[storagemodels.HostID]map[*storagemodels.Key]storagemodels.Record
}

// Table is a sharded, concurrency-safe datastore.Table.
type Table struct {
	shards []*shard
	mask   uint64
}

// New creates a Table with at least n shards.
func New(n int) *Table {
	if n <= 0 {
		n = DefaultShards
	}
	size := 1
	for size < n {
		size <<= 1
	}

	t := &Table{
		shards: make([]*shard, size),
		mask:   uint64(size - 1),
	}
	for i := range t.shards {
		t.shards[i] = &shard{hosts: make(map[storagemodels.HostID]map[*storagemodels.Key]storagemodels.Record)}
	}
	return t
}

// Shards returns the number of shards.
func (t *Table) Shards() int { return len(t.shards) }

func (t *Table) shardFor(host storagemodels.HostID) *shard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(host.Addr()))
	return t.shards[xxhash.Sum64(buf[:])&t.mask]
}

// Load returns the record stored for (host, key).
func (t *Table) Load(host storagemodels.HostID, key *storagemodels.Key) (storagemodels.Record, bool) {
	s := t.shardFor(host)
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.hosts[host][key]
	return rec, ok
}

// Store inserts or replaces the record for (host, key).
func (t *Table) Store(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool {
	s := t.shardFor(host)
	s.mu.Lock()
	defer s.mu.Unlock()

	records, tracked := s.hosts[host]
	if !tracked {
		records = make(map[*storagemodels.Key]storagemodels.Record)
		s.hosts[host] = records
	}
	if prev, exists := records[key]; exists && !prev.CreatedAt.IsZero() {
		rec.CreatedAt = prev.CreatedAt
	}
	records[key] = rec
	return !tracked
}

// Delete removes the record for (host, key).
func (t *Table) Delete(host storagemodels.HostID, key *storagemodels.Key) bool {
	s := t.shardFor(host)
	s.mu.Lock()
	defer s.mu.Unlock()

	records, tracked := s.hosts[host]
	if !tracked {
		return false
	}
	if _, exists := records[key]; !exists {
		return false
	}
	delete(records, key)
	return true
}

// DeleteHost drops every record of host.
func (t *Table) DeleteHost(host storagemodels.HostID) (int, bool) {
	s := t.shardFor(host)
	s.mu.Lock()
	defer s.mu.Unlock()

	records, tracked := s.hosts[host]
	delete(s.hosts, host)
	return len(records), tracked
}

type entry struct {
	host storagemodels.HostID
	key  *storagemodels.Key
	rec  storagemodels.Record
}

// Range calls fn for every record. Each shard is copied under its read lock
// before fn is called, so fn may use the table.
func (t *Table) Range(fn func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool) {
	for _, s := range t.shards {
		s.mu.RLock()
		entries := make([]entry, 0, len(s.hosts))
		for host, records := range s.hosts {
			for key, rec := range records {
				entries = append(entries, entry{host: host, key: key, rec: rec})
			}
		}
		s.mu.RUnlock()

		for _, e := range entries {
			if !fn(e.host, e.key, e.rec) {
				return
			}
		}
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	n := 0
	for _, s := range t.shards {
		s.mu.RLock()
		for _, records := range s.hosts {
			n += len(records)
		}
		s.mu.RUnlock()
	}
	return n
}

// Hosts returns the number of tracked hosts.
func (t *Table) Hosts() int {
	n := 0
	for _, s := range t.shards {
		s.mu.RLock()
		n += len(s.hosts)
		s.mu.RUnlock()
	}
	return n
}

// Reset drops everything.
func (t *Table) Reset() {
	for _, s := range t.shards {
		s.mu.Lock()
		s.hosts = make(map[storagemodels.HostID]map[*storagemodels.Key]storagemodels.Record)
		s.mu.Unlock()
	}
}
