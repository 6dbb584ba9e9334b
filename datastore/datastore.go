/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"github.com/suparena/objectassoc/storagemodels"
)

// Table stores association records keyed by (host, key).
//
// Every method must be safe for concurrent use. A single Load or Store on
// one (host, key) must never observe a partially written record.
type Table interface {
	// Load returns the record stored for (host, key).
	Load(host storagemodels.HostID, key *storagemodels.Key) (storagemodels.Record, bool)

	// Store inserts or replaces the record for (host, key). It reports
	// whether this is the first time the host is tracked by the table.
	// Hosts stay tracked until DeleteHost or Reset, even once empty.
	// Replacing a record keeps the CreatedAt of the record it replaces.
	Store(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) (newHost bool)

	// Delete removes the record for (host, key) and reports whether one existed.
	Delete(host storagemodels.HostID, key *storagemodels.Key) bool

	// DeleteHost drops every record of host and stops tracking it. It
	// returns the number of records removed and whether the host was tracked.
	DeleteHost(host storagemodels.HostID) (removed int, tracked bool)

	// Range calls fn for every record until fn returns false.
	Range(fn func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool)

	// Len returns the number of records.
	Len() int

	// Hosts returns the number of tracked hosts.
	Hosts() int

	// Reset drops everything.
	Reset()
}
