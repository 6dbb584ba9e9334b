/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"

	"github.com/suparena/objectassoc/errors"
	"github.com/suparena/objectassoc/storagemodels"
)

// Lookup is the strict form of GetOptional. It returns an error matching
// errors.ErrNotFound when there is no association and one matching
// errors.ErrTypeMismatch when the stored value is not a *V.
func Lookup[V, H any](r *Registry, host *H, key *Key) (*V, error) {
	id := storagemodels.NewHostID(host)
	if id.IsZero() {
		return nil, errors.NewValidationError("host", "must not be nil")
	}
	if key == nil {
		return nil, errors.NewValidationError("key", "must not be nil")
	}

	rec, ok := r.table.Load(id, key)
	if !ok {
		r.miss()
		return nil, errors.NewNotFoundError(id.String(), key.Name())
	}

	want := reflect.TypeFor[*V]()
	if rec.Type != want {
		r.mismatches.Add(1)
		r.metrics.IncrementTypeMismatches()
		r.miss()
		return nil, errors.NewTypeMismatchError(key.Name(), rec.Type.String(), want.String())
	}

	v, ok := resolve[V](rec)
	if !ok {
		r.miss()
		return nil, errors.NewNotFoundError(id.String(), key.Name())
	}
	r.hit()
	return v, nil
}

// LookupBoxed is the strict form of GetOptionalBoxed.
func LookupBoxed[T, H any](r *Registry, host *H, key *Key) (T, error) {
	b, err := Lookup[Box[T]](r, host, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return b.Value(), nil
}
