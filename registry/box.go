/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

// Box gives a plain value a heap identity so it can be stored like a
// reference value. A Box is never modified after creation.
type Box[T any] struct {
	value T
}

// NewBox returns a new Box holding v.
func NewBox[T any](v T) *Box[T] {
	return &Box[T]{value: v}
}

// Value returns the boxed value.
func (b *Box[T]) Value() T {
	return b.value
}
