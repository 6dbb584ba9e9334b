/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"weak"

	"github.com/suparena/objectassoc/storagemodels"
)

// resolve turns a record stored under *V into the value it holds.
// A weak record whose value was collected resolves to nothing.
func resolve[V any](rec storagemodels.Record) (*V, bool) {
	if rec.Weak {
		p := rec.Value.(weak.Pointer[V]).Value()
		return p, p != nil
	}
	return rec.Value.(*V), true
}

func getObject[V any](r *Registry, id storagemodels.HostID, key *storagemodels.Key) (*V, bool) {
	rec, ok := r.load(id, key, reflect.TypeFor[*V]())
	if !ok {
		r.miss()
		return nil, false
	}
	v, ok := resolve[V](rec)
	if !ok {
		r.miss()
		return nil, false
	}
	r.hit()
	return v, true
}

func setObject[V, H any](r *Registry, host *H, id storagemodels.HostID, key *storagemodels.Key, value *V) {
	if value == nil {
		r.remove(id, key)
		return
	}
	if id.IsZero() || key == nil {
		return
	}
	store(r, host, id, key, r.record(value, reflect.TypeFor[*V](), false))
}

func initialize[V any](r *Registry, init func() *V) *V {
	r.inits.Add(1)
	r.metrics.IncrementInitializations()
	return init()
}

// GetOptional returns the value associated with host under key. It reports
// false when there is none, when the stored value is not a *V, or when a
// weakly stored value has been collected.
func GetOptional[V, H any](r *Registry, host *H, key *Key) (*V, bool) {
	return getObject[V](r, storagemodels.NewHostID(host), key)
}

// Set associates value with host under key, replacing any previous value.
// A nil value removes the association. A host of a zero-size type has no
// identity: writes to it are ignored and reads report nothing.
func Set[V, H any](r *Registry, host *H, key *Key, value *V) {
	setObject(r, host, storagemodels.NewHostID(host), key, value)
}

// SetOptional associates value with host under key, or removes the
// association when value is nil.
func SetOptional[V, H any](r *Registry, host *H, key *Key, value *V) {
	setObject(r, host, storagemodels.NewHostID(host), key, value)
}

// SetWeak associates value with host under key without keeping value alive.
// Once value is collected the association reads as absent. Use it for
// values that reference their own host.
func SetWeak[V, H any](r *Registry, host *H, key *Key, value *V) {
	id := storagemodels.NewHostID(host)
	if value == nil {
		r.remove(id, key)
		return
	}
	if id.IsZero() || key == nil {
		return
	}
	store(r, host, id, key, r.record(weak.Make(value), reflect.TypeFor[*V](), true))
}

// GetOrInit returns the value associated with host under key. If there is
// none it calls init, stores the result and returns it. A value stored
// under another type counts as none and is replaced.
//
// In LastWriteWins mode concurrent callers that all miss each run init and
// the last one to store wins. In ComputeOnce mode they share one call.
// A nil result from init is returned but not stored.
func GetOrInit[V, H any](r *Registry, host *H, key *Key, init func() *V) *V {
	id := storagemodels.NewHostID(host)
	if v, ok := getObject[V](r, id, key); ok {
		return v
	}
	if id.IsZero() || key == nil {
		return initialize(r, init)
	}
	if r.mode == storagemodels.ComputeOnce {
		return computeOnce(r, host, id, key, init)
	}

	v := initialize(r, init)
	setObject(r, host, id, key, v)
	return v
}

// initPanic carries an initializer's panic value out of a shared call so
// every waiting caller re-panics with the value itself.
type initPanic struct {
	value any
}

func computeOnce[V, H any](r *Registry, host *H, id storagemodels.HostID, key *storagemodels.Key, init func() *V) *V {
	flightKey := fmt.Sprintf("%s/%p", id, key)
	res, _, _ := r.flight.Do(flightKey, func() (res any, err error) {
		defer func() {
			if p := recover(); p != nil {
				res = initPanic{value: p}
			}
		}()

		if rec, ok := r.load(id, key, reflect.TypeFor[*V]()); ok {
			if v, ok := resolve[V](rec); ok {
				return v, nil
			}
		}
		v := initialize(r, init)
		setObject(r, host, id, key, v)
		return v, nil
	})

	switch v := res.(type) {
	case initPanic:
		panic(v.value)
	case *V:
		return v
	}
	// The shared call was made for another value type.
	v := initialize(r, init)
	setObject(r, host, id, key, v)
	return v
}

// Remove deletes the association of host under key, whatever its type, and
// reports whether one existed.
func Remove[H any](r *Registry, host *H, key *Key) bool {
	return r.remove(storagemodels.NewHostID(host), key)
}

// Clear deletes every association of host and returns how many there were.
func Clear[H any](r *Registry, host *H) int {
	id := storagemodels.NewHostID(host)
	if id.IsZero() {
		return 0
	}
	removed, tracked := r.table.DeleteHost(id)
	if tracked {
		r.metrics.HostUntracked()
	}
	return removed
}
