/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectassoc

import (
	"github.com/suparena/objectassoc/registry"
)

// Key identifies an association site.
type Key = registry.Key

// NewKey creates a new association key. Keep it in a package-level variable.
func NewKey(name string) *Key {
	return registry.NewKey(name)
}

// AssociatedObject returns the value associated with host under key,
// initializing it with init on first use.
func AssociatedObject[V, H any](host *H, key *Key, init func() *V) *V {
	return registry.GetOrInit(registry.Default(), host, key, init)
}

// AssociateObject associates value with host under key. Hosts of a
// zero-size type (such as struct{}) have no identity and are ignored.
func AssociateObject[V, H any](host *H, key *Key, value *V) {
	registry.Set(registry.Default(), host, key, value)
}

// AssociatedOptionalObject returns the value associated with host under
// key, or nil if there is none.
func AssociatedOptionalObject[V, H any](host *H, key *Key) *V {
	v, _ := registry.GetOptional[V](registry.Default(), host, key)
	return v
}

// AssociateOptionalObject associates value with host under key; nil removes
// the association.
func AssociateOptionalObject[V, H any](host *H, key *Key, value *V) {
	registry.SetOptional(registry.Default(), host, key, value)
}

// AssociatedStruct returns the plain value associated with host under key,
// initializing it with init on first use.
func AssociatedStruct[T, H any](host *H, key *Key, init func() T) T {
	return registry.GetOrInitBoxed(registry.Default(), host, key, init)
}

// AssociateStruct associates a copy of value with host under key.
func AssociateStruct[T, H any](host *H, key *Key, value T) {
	registry.SetBoxed(registry.Default(), host, key, value)
}

// AssociatedOptionalStruct returns the plain value associated with host
// under key and whether there is one.
func AssociatedOptionalStruct[T, H any](host *H, key *Key) (T, bool) {
	return registry.GetOptionalBoxed[T](registry.Default(), host, key)
}

// AssociateOptionalStruct associates a copy of *value with host under key;
// nil removes the association.
func AssociateOptionalStruct[T, H any](host *H, key *Key, value *T) {
	registry.SetOptionalBoxed(registry.Default(), host, key, value)
}
