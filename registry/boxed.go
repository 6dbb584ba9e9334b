/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"github.com/suparena/objectassoc/storagemodels"
)

// GetOptionalBoxed returns the plain value associated with host under key.
// It reports false when there is none or it was stored as another type.
func GetOptionalBoxed[T, H any](r *Registry, host *H, key *Key) (T, bool) {
	b, ok := GetOptional[Box[T]](r, host, key)
	if !ok {
		var zero T
		return zero, false
	}
	return b.Value(), true
}

// SetBoxed associates a copy of value with host under key.
func SetBoxed[T, H any](r *Registry, host *H, key *Key, value T) {
	Set(r, host, key, NewBox(value))
}

// SetOptionalBoxed associates a copy of *value with host under key, or
// removes the association when value is nil.
func SetOptionalBoxed[T, H any](r *Registry, host *H, key *Key, value *T) {
	id := storagemodels.NewHostID(host)
	if value == nil {
		r.remove(id, key)
		return
	}
	setObject(r, host, id, key, NewBox(*value))
}

// GetOrInitBoxed returns the plain value associated with host under key. If
// there is none it calls init, stores a copy of the result and returns it.
// The concurrency rules of GetOrInit apply.
func GetOrInitBoxed[T, H any](r *Registry, host *H, key *Key, init func() T) T {
	b := GetOrInit(r, host, key, func() *Box[T] {
		return NewBox(init())
	})
	return b.Value()
}
