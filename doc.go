/*
Package objectassoc attaches typed, per-instance data to objects you cannot
change, without adding fields to them.

Associations are keyed by the identity of a host object and by a key
created once per association site. They live exactly as long as the host:
when the garbage collector reclaims the host, its associated values are
released with it.

Key Features:
  - Type-safe operations using Go generics
  - Lazy get-or-initialize with last-write-wins or compute-once semantics
  - Value boxing so plain values keep value semantics
  - Optional weak storage for values that point back at their host
  - Concurrency-safe sharded storage
  - Prometheus metrics, slog logging and YAML/env configuration

Basic Usage:

	var retriesKey = objectassoc.NewKey("retries")
	var peerKey = objectassoc.NewKey("peer")

	// Plain values are boxed
	objectassoc.AssociateStruct(conn, retriesKey, 3)
	n := objectassoc.AssociatedStruct(conn, retriesKey, func() int { return 0 })

	// Pointers are stored by reference
	peer := objectassoc.AssociatedObject(conn, peerKey, func() *Peer {
	    return &Peer{Addr: conn.RemoteAddr()}
	})

The functions in this package operate on registry.Default(). Services that
want isolated state, custom options or metrics create their own
registry.Registry and use the generic functions of the registry package.
*/
package objectassoc
