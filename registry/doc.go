/*
Package registry attaches typed values to existing objects without touching
their declared fields.

A Registry is a side table keyed by (host identity, association key). Host
identity is the object a pointer refers to, never its contents, and the
registry only holds the host weakly: when the garbage collector reclaims a
host, every value associated with it is dropped too.

Keys:
Keys are compared by pointer. Create each one once, usually in a
package-level variable next to the code that uses it:

	var retriesKey = registry.NewKey("retries")

Reference values:
Pointer values are stored as they are and read back as the same pointer:

	reg := registry.New()
	registry.Set(reg, conn, sessionKey, &Session{ID: "abc"})
	session, ok := registry.GetOptional[Session](reg, conn, sessionKey)

	buf := registry.GetOrInit(reg, conn, bufKey, func() *bytes.Buffer {
	    return new(bytes.Buffer)
	})

Boxed values:
Plain values are wrapped in a fresh Box on every write, so they keep value
semantics:

	registry.SetBoxed(reg, conn, retriesKey, 3)
	n := registry.GetOrInitBoxed(reg, conn, retriesKey, func() int { return 0 })

Type tags:
Every record remembers the type it was stored under. Reading it back as
another type returns "absent", exactly like a missing record; use Lookup
or LookupBoxed to get an error instead.

Concurrency:
All operations are safe for concurrent use. A single get or set is atomic.
GetOrInit is not: in the default LastWriteWins mode two goroutines missing
at the same time may both run their initializer and the last store wins.
WithConcurrencyMode(storagemodels.ComputeOnce) coalesces them so the
initializer runs once. Initializers never run under a registry lock.

Caveats:
  - A stored value that points back at its host keeps the host alive
    forever. Store such values with SetWeak.
  - Hosts of a zero-size type have no identity: writes are ignored and
    reads report nothing. Package-level variables work as hosts but are
    never reclaimed.
  - Copying a host (c := *host) produces a new identity with no associations.
*/
package registry
