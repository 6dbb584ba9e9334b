/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry_test

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/objectassoc/registry"
	"github.com/suparena/objectassoc/storagemodels"
)

// conn is a host type; the array keeps it out of the tiny allocator.
type conn struct {
	ID   int
	buf  [64]byte
	peer *conn
}

type session struct {
	Token string
	pad   [32]byte
}

type user struct {
	Name string
}

type marker struct{}

var globalConn conn

func TestObjectAssociation(t *testing.T) {
	key := registry.NewKey("session")

	t.Run("SetThenGetReturnsSameInstance", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}
		s := &session{Token: "abc"}

		registry.Set(r, host, key, s)

		got, ok := registry.GetOptional[session](r, host, key)
		require.True(t, ok)
		assert.Same(t, s, got)
	})

	t.Run("GetOrInitStoresFirstResult", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}

		first := registry.GetOrInit(r, host, key, func() *session {
			return &session{Token: "first"}
		})
		assert.Equal(t, "first", first.Token)

		called := false
		second := registry.GetOrInit(r, host, key, func() *session {
			called = true
			return &session{Token: "second"}
		})
		assert.Same(t, first, second)
		assert.False(t, called, "second initializer must not run")
	})

	t.Run("GetOrInitAfterSetReturnsStored", func(t *testing.T) {
		r := registry.New()
		obj1 := &conn{ID: 1}
		registry.Set(r, obj1, key, &session{Token: "associated"})

		got := registry.GetOrInit(r, obj1, key, func() *session { return &session{Token: "initialized"} })
		assert.Equal(t, "associated", got.Token)

		obj2 := &conn{ID: 2}
		got = registry.GetOrInit(r, obj2, key, func() *session { return &session{Token: "initialized"} })
		assert.Equal(t, "initialized", got.Token)
	})

	t.Run("SetOptionalNilClears", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}
		registry.Set(r, host, key, &session{Token: "abc"})

		registry.SetOptional[session](r, host, key, nil)

		got, ok := registry.GetOptional[session](r, host, key)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("SetOptionalNilOnEmptyHost", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}

		registry.SetOptional[session](r, host, key, nil)

		_, ok := registry.GetOptional[session](r, host, key)
		assert.False(t, ok)
	})

	t.Run("UnsetIsAbsent", func(t *testing.T) {
		r := registry.New()
		_, ok := registry.GetOptional[session](r, &conn{}, key)
		assert.False(t, ok)
	})

	t.Run("OverwriteReplaces", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}
		registry.Set(r, host, key, &session{Token: "a"})
		b := &session{Token: "b"}
		registry.Set(r, host, key, b)

		got, ok := registry.GetOptional[session](r, host, key)
		require.True(t, ok)
		assert.Same(t, b, got)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("DistinctKeysAreIndependent", func(t *testing.T) {
		r := registry.New()
		k1 := registry.NewKey("same-name")
		k2 := registry.NewKey("same-name")
		host := &conn{ID: 1}

		registry.Set(r, host, k1, &user{Name: "A"})
		registry.Set(r, host, k2, &user{Name: "B"})

		a, ok := registry.GetOptional[user](r, host, k1)
		require.True(t, ok)
		b, ok := registry.GetOptional[user](r, host, k2)
		require.True(t, ok)
		assert.Equal(t, "A", a.Name)
		assert.Equal(t, "B", b.Name)
	})

	t.Run("SameKeyDifferentHosts", func(t *testing.T) {
		r := registry.New()
		h1, h2 := &conn{ID: 1}, &conn{ID: 2}

		registry.Set(r, h1, key, &session{Token: "one"})

		_, ok := registry.GetOptional[session](r, h2, key)
		assert.False(t, ok)
		assert.Equal(t, 1, r.Hosts())
	})

	t.Run("EqualHostsAreDistinct", func(t *testing.T) {
		r := registry.New()
		h1, h2 := &conn{ID: 7}, &conn{ID: 7}
		require.Equal(t, *h1, *h2)

		registry.Set(r, h1, key, &session{Token: "one"})

		_, ok := registry.GetOptional[session](r, h2, key)
		assert.False(t, ok, "hosts are keyed by identity, not value")
	})

	t.Run("NilHostAndKey", func(t *testing.T) {
		r := registry.New()
		var nilHost *conn

		assert.NotPanics(t, func() {
			registry.Set(r, nilHost, key, &session{})
			registry.Set(r, &conn{}, nil, &session{})
		})
		_, ok := registry.GetOptional[session](r, nilHost, key)
		assert.False(t, ok)
		assert.Equal(t, 0, r.Len())

		got := registry.GetOrInit(r, nilHost, key, func() *session { return &session{Token: "x"} })
		assert.Equal(t, "x", got.Token)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("NilInitializerResultNotStored", func(t *testing.T) {
		r := registry.New()
		host := &conn{}

		got := registry.GetOrInit(r, host, key, func() *session { return nil })
		assert.Nil(t, got)
		assert.Equal(t, 0, r.Len())
	})
}

func TestTypeMismatch(t *testing.T) {
	key := registry.NewKey("mismatch")

	t.Run("ReadsAsAbsent", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		registry.Set(r, host, key, &session{Token: "abc"})

		got, ok := registry.GetOptional[user](r, host, key)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, int64(1), r.Stats().TypeMismatches)

		// The stored value is untouched.
		s, ok := registry.GetOptional[session](r, host, key)
		require.True(t, ok)
		assert.Equal(t, "abc", s.Token)
	})

	t.Run("BoxedAndReferenceDoNotMix", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		registry.SetBoxed(r, host, key, session{Token: "boxed"})

		_, ok := registry.GetOptional[session](r, host, key)
		assert.False(t, ok)

		v, ok := registry.GetOptionalBoxed[session](r, host, key)
		require.True(t, ok)
		assert.Equal(t, "boxed", v.Token)
	})

	t.Run("GetOrInitReplacesMismatchedValue", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		registry.Set(r, host, key, &session{Token: "abc"})

		u := registry.GetOrInit(r, host, key, func() *user { return &user{Name: "new"} })
		assert.Equal(t, "new", u.Name)

		_, ok := registry.GetOptional[session](r, host, key)
		assert.False(t, ok)
		assert.Equal(t, 1, r.Len())
	})
}

func TestRemoveAndClear(t *testing.T) {
	k1 := registry.NewKey("one")
	k2 := registry.NewKey("two")

	t.Run("Remove", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		registry.SetBoxed(r, host, k1, 1)

		assert.True(t, registry.Remove(r, host, k1))
		assert.False(t, registry.Remove(r, host, k1))
		assert.False(t, registry.Remove(r, host, nil))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("Clear", func(t *testing.T) {
		r := registry.New()
		host, other := &conn{ID: 1}, &conn{ID: 2}
		registry.SetBoxed(r, host, k1, 1)
		registry.SetBoxed(r, host, k2, 2)
		registry.SetBoxed(r, other, k1, 3)

		assert.Equal(t, 2, registry.Clear(r, host))
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, 1, r.Hosts())

		v, ok := registry.GetOptionalBoxed[int](r, other, k1)
		require.True(t, ok)
		assert.Equal(t, 3, v)

		var nilHost *conn
		assert.Equal(t, 0, registry.Clear(r, nilHost))
	})

	t.Run("Reset", func(t *testing.T) {
		r := registry.New()
		registry.SetBoxed(r, &conn{}, k1, 1)
		registry.SetBoxed(r, &conn{}, k1, 2)

		r.Reset()
		assert.Equal(t, 0, r.Len())
		assert.Equal(t, 0, r.Hosts())
	})
}

// attach associates a value with a host that becomes unreachable on return.
// It returns a weak pointer to the value so tests can watch it being released.
func attach(r *registry.Registry, key *registry.Key) weak.Pointer[session] {
	host := &conn{ID: 42}
	value := &session{Token: "owned"}
	registry.Set(r, host, key, value)
	return weak.Make(value)
}

func TestHostLifetime(t *testing.T) {
	t.Run("AssociationsDieWithHost", func(t *testing.T) {
		r := registry.New()
		key := registry.NewKey("lifetime")

		value := attach(r, key)
		require.Equal(t, 1, r.Len())

		require.Eventually(t, func() bool {
			runtime.GC()
			return r.Len() == 0 && r.Hosts() == 0
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, int64(1), r.Stats().HostsReclaimed)

		require.Eventually(t, func() bool {
			runtime.GC()
			return value.Value() == nil
		}, 5*time.Second, 10*time.Millisecond, "stored value must be released with its host")
	})

	t.Run("RegistryDoesNotKeepHostAlive", func(t *testing.T) {
		r := registry.New()
		key := registry.NewKey("lifetime")

		host := &conn{ID: 1}
		registry.SetBoxed(r, host, key, 1)
		hostRef := weak.Make(host)
		host = nil

		require.Eventually(t, func() bool {
			runtime.GC()
			return hostRef.Value() == nil
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("LiveHostKeepsAssociations", func(t *testing.T) {
		r := registry.New()
		key := registry.NewKey("lifetime")
		host := &conn{ID: 1}
		registry.SetBoxed(r, host, key, "kept")

		runtime.GC()
		runtime.GC()

		v, ok := registry.GetOptionalBoxed[string](r, host, key)
		require.True(t, ok)
		assert.Equal(t, "kept", v)
		runtime.KeepAlive(host)
	})
}

func TestWeakValues(t *testing.T) {
	key := registry.NewKey("weak")

	t.Run("ReadableWhileAlive", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		value := &session{Token: "weak"}

		registry.SetWeak(r, host, key, value)

		got, ok := registry.GetOptional[session](r, host, key)
		require.True(t, ok)
		assert.Same(t, value, got)
		runtime.KeepAlive(value)
	})

	t.Run("AbsentOnceCollected", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		registry.SetWeak(r, host, key, &session{Token: "gone"})

		require.Eventually(t, func() bool {
			runtime.GC()
			_, ok := registry.GetOptional[session](r, host, key)
			return !ok
		}, 5*time.Second, 10*time.Millisecond)

		got := registry.GetOrInit(r, host, key, func() *session { return &session{Token: "fresh"} })
		assert.Equal(t, "fresh", got.Token)
	})

	t.Run("ValueReferencingHostDoesNotLeak", func(t *testing.T) {
		r := registry.New()
		host := &conn{ID: 1}
		back := &conn{peer: host}
		registry.SetWeak(r, host, key, back)
		hostRef := weak.Make(host)
		host, back = nil, nil

		require.Eventually(t, func() bool {
			runtime.GC()
			return hostRef.Value() == nil
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("NilRemoves", func(t *testing.T) {
		r := registry.New()
		host := &conn{}
		value := &session{}
		registry.SetWeak(r, host, key, value)
		registry.SetWeak[session](r, host, key, nil)

		assert.Equal(t, 0, r.Len())
		runtime.KeepAlive(value)
	})
}

func TestDefault(t *testing.T) {
	assert.Same(t, registry.Default(), registry.Default())
	assert.Equal(t, storagemodels.LastWriteWins, registry.Default().Mode())
}

func TestInitializerMayUseRegistry(t *testing.T) {
	r := registry.New(registry.WithConcurrencyMode(storagemodels.ComputeOnce))
	outer := registry.NewKey("outer")
	inner := registry.NewKey("inner")
	host := &conn{}

	var calls atomic.Int32
	got := registry.GetOrInitBoxed(r, host, outer, func() int {
		calls.Add(1)
		return registry.GetOrInitBoxed(r, host, inner, func() int { return 5 }) + 1
	})

	assert.Equal(t, 6, got)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 2, r.Len())
}

func TestPackageLevelHost(t *testing.T) {
	r := registry.New()
	key := registry.NewKey("global")

	registry.SetBoxed(r, &globalConn, key, "X")
	got, ok := registry.GetOptionalBoxed[string](r, &globalConn, key)
	require.True(t, ok)
	assert.Equal(t, "X", got)

	_, ok = registry.GetOptionalBoxed[string](r, &conn{}, key)
	assert.False(t, ok)

	assert.True(t, registry.Remove(r, &globalConn, key))
	assert.Equal(t, 0, r.Len())
}

func TestZeroSizeHost(t *testing.T) {
	r := registry.New()
	key := registry.NewKey("empty")
	a, b := &marker{}, &marker{}

	registry.SetBoxed(r, a, key, "X")
	_, ok := registry.GetOptionalBoxed[string](r, a, key)
	assert.False(t, ok)
	_, ok = registry.GetOptionalBoxed[string](r, b, key)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	calls := 0
	for range 2 {
		got := registry.GetOrInitBoxed(r, a, key, func() int {
			calls++
			return 7
		})
		assert.Equal(t, 7, got)
	}
	assert.Equal(t, 2, calls, "nothing is stored for a zero-size host")
	assert.Equal(t, 0, r.Hosts())
}
