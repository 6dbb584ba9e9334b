/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"
	"weak"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Key identifies an association site. Two keys are the same key only if
// they are the same pointer; the name is for humans.
type Key struct {
	name string
	id   uuid.UUID
}

// NewKey creates a new association key.
func NewKey(name string) *Key {
	return &Key{name: name, id: uuid.New()}
}

// Name returns the name the key was created with.
func (k *Key) Name() string { return k.name }

// ID returns the random identifier assigned to the key.
func (k *Key) ID() uuid.UUID { return k.id }

// String implements fmt.Stringer.
func (k *Key) String() string {
	if k == nil {
		return "<nil key>"
	}
	return fmt.Sprintf("%s(%s)", k.name, k.id)
}

// HostID is the comparable identity of a host object.
type HostID struct {
	// ref is a weak.Pointer[H]; equal only for the same object.
	ref any
	// addr is captured while the host is alive and only used for sharding.
	addr uintptr
	kind string
}

// NewHostID returns the identity of the object host points to.
// It returns the zero HostID for a nil host and for a host of a zero-size
// type, since distinct zero-size objects may share an address.
func NewHostID[H any](host *H) HostID {
	typ := reflect.TypeFor[H]()
	if host == nil || typ.Size() == 0 {
		return HostID{}
	}
	return HostID{
		ref:  weak.Make(host),
		addr: uintptr(unsafe.Pointer(host)),
		kind: typ.String(),
	}
}

// IsZero reports whether id identifies no host.
func (id HostID) IsZero() bool { return id.ref == nil }

// Addr returns the address the host had when the id was created.
func (id HostID) Addr() uintptr { return id.addr }

// Kind returns the host's type name.
func (id HostID) Kind() string { return id.kind }

// String implements fmt.Stringer.
func (id HostID) String() string {
	return fmt.Sprintf("%s@%#x", id.kind, id.addr)
}

// Record is a single stored association.
type Record struct {
	Value     any
	Type      reflect.Type
	Weak      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConcurrencyMode selects how get-or-initialize behaves when several
// goroutines miss on the same (host, key) at once.
type ConcurrencyMode int

const (
	// LastWriteWins lets every racing caller run its initializer; the last
	// store wins and the other results are discarded.
	LastWriteWins ConcurrencyMode = iota
	// ComputeOnce coalesces racing callers so the initializer runs once.
	ComputeOnce
)

// String implements fmt.Stringer.
func (m ConcurrencyMode) String() string {
	switch m {
	case LastWriteWins:
		return "last-write-wins"
	case ComputeOnce:
		return "compute-once"
	default:
		return fmt.Sprintf("ConcurrencyMode(%d)", int(m))
	}
}

// ParseConcurrencyMode parses the String form of a ConcurrencyMode.
func ParseConcurrencyMode(s string) (ConcurrencyMode, bool) {
	switch s {
	case "", "last-write-wins":
		return LastWriteWins, true
	case "compute-once":
		return ComputeOnce, true
	default:
		return LastWriteWins, false
	}
}

// RecordInfo describes one record in a registry snapshot.
type RecordInfo struct {
	Host      string          `json:"host" yaml:"host"`
	Key       string          `json:"key" yaml:"key"`
	KeyID     string          `json:"keyId" yaml:"keyId"`
	Type      string          `json:"type" yaml:"type"`
	Weak      bool            `json:"weak" yaml:"weak"`
	CreatedAt strfmt.DateTime `json:"createdAt" yaml:"createdAt"`
	UpdatedAt strfmt.DateTime `json:"updatedAt" yaml:"updatedAt"`
}

// Stats summarizes registry activity.
type Stats struct {
	Hosts           int    `json:"hosts" yaml:"hosts"`
	Records         int    `json:"records" yaml:"records"`
	Hits            int64  `json:"hits" yaml:"hits"`
	Misses          int64  `json:"misses" yaml:"misses"`
	Initializations int64  `json:"initializations" yaml:"initializations"`
	TypeMismatches  int64  `json:"typeMismatches" yaml:"typeMismatches"`
	HostsReclaimed  int64  `json:"hostsReclaimed" yaml:"hostsReclaimed"`
	Mode            string `json:"mode" yaml:"mode"`
}
