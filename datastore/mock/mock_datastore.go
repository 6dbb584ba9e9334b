/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a recording implementation of datastore.Table for testing
package mock

import (
	"sync"

	"github.com/suparena/objectassoc/datastore"
	"github.com/suparena/objectassoc/storagemodels"
)

var _ datastore.Table = (*Table)(nil)

type slot struct {
	host storagemodels.HostID
	key  *storagemodels.Key
}

// Table is a mock datastore.Table backed by a single map. It counts calls
// and lets tests observe every stored record.
type Table struct {
	mu      sync.Mutex
	data    map[slot]storagemodels.Record
	tracked map[storagemodels.HostID]bool

	loads   int
	stores  int
	deletes int

	storeHook func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record)
	loadHook  func(host storagemodels.HostID, key *storagemodels.Key)
}

// New creates a new mock Table
func New() *Table {
	return &Table{
		data:    make(map[slot]storagemodels.Record),
		tracked: make(map[storagemodels.HostID]bool),
	}
}

// WithStoreHook sets a function called, outside the lock, after every Store
func (m *Table) WithStoreHook(f func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record)) *Table {
	m.storeHook = f
	return m
}

// WithLoadHook sets a function called, outside the lock, before every Load
func (m *Table) WithLoadHook(f func(host storagemodels.HostID, key *storagemodels.Key)) *Table {
	m.loadHook = f
	return m
}

// Load returns the record stored for (host, key)
func (m *Table) Load(host storagemodels.HostID, key *storagemodels.Key) (storagemodels.Record, bool) {
	if m.loadHook != nil {
		m.loadHook(host, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.loads++
	rec, ok := m.data[slot{host, key}]
	return rec, ok
}

// Store inserts or replaces the record for (host, key)
func (m *Table) Store(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool {
	m.mu.Lock()
	m.stores++
	if prev, ok := m.data[slot{host, key}]; ok {
		rec.CreatedAt = prev.CreatedAt
	}
	m.data[slot{host, key}] = rec
	newHost := !m.tracked[host]
	m.tracked[host] = true
	m.mu.Unlock()

	if m.storeHook != nil {
		m.storeHook(host, key, rec)
	}
	return newHost
}

// Delete removes the record for (host, key)
func (m *Table) Delete(host storagemodels.HostID, key *storagemodels.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes++
	if _, ok := m.data[slot{host, key}]; !ok {
		return false
	}
	delete(m.data, slot{host, key})
	return true
}

// DeleteHost drops every record of host
func (m *Table) DeleteHost(host storagemodels.HostID) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for s := range m.data {
		if s.host == host {
			delete(m.data, s)
			n++
		}
	}
	tracked := m.tracked[host]
	delete(m.tracked, host)
	return n, tracked
}

// Range calls fn for every record
func (m *Table) Range(fn func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool) {
	m.mu.Lock()
	data := make(map[slot]storagemodels.Record, len(m.data))
	for s, rec := range m.data {
		data[s] = rec
	}
	m.mu.Unlock()

	for s, rec := range data {
		if !fn(s.host, s.key, rec) {
			return
		}
	}
}

// Len returns the number of records
func (m *Table) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Hosts returns the number of tracked hosts
func (m *Table) Hosts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracked)
}

// Reset drops everything, including the call counters
func (m *Table) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[slot]storagemodels.Record)
	m.tracked = make(map[storagemodels.HostID]bool)
	m.loads, m.stores, m.deletes = 0, 0, 0
}

// Helper methods for testing

// Loads returns the number of Load calls
func (m *Table) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// Stores returns the number of Store calls
func (m *Table) Stores() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stores
}

// Deletes returns the number of Delete calls
func (m *Table) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}
