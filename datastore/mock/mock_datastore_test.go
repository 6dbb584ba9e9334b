/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"reflect"
	"testing"

	"github.com/suparena/objectassoc/datastore/mock"
	"github.com/suparena/objectassoc/storagemodels"
)

type testHost struct {
	ID   string
	Name string
}

func TestMockTable(t *testing.T) {
	key := storagemodels.NewKey("k")

	t.Run("BasicOperations", func(t *testing.T) {
		table := mock.New()
		h := &testHost{ID: "123"}
		id := storagemodels.NewHostID(h)
		rec := storagemodels.Record{Value: "v", Type: reflect.TypeOf("")}

		if !table.Store(id, key, rec) {
			t.Fatal("first Store should report a new host")
		}
		if table.Store(id, key, rec) {
			t.Fatal("second Store should not report a new host")
		}

		got, ok := table.Load(id, key)
		if !ok || got.Value != "v" {
			t.Fatalf("Load returned %+v, %v", got, ok)
		}

		if !table.Delete(id, key) {
			t.Fatal("Delete should report an existing record")
		}
		if _, ok := table.Load(id, key); ok {
			t.Fatal("record should be gone after Delete")
		}

		if table.Loads() != 2 || table.Stores() != 2 || table.Deletes() != 1 {
			t.Fatalf("unexpected counters: loads=%d stores=%d deletes=%d",
				table.Loads(), table.Stores(), table.Deletes())
		}
	})

	t.Run("Hooks", func(t *testing.T) {
		var loaded, stored int
		table := mock.New().
			WithLoadHook(func(storagemodels.HostID, *storagemodels.Key) { loaded++ }).
			WithStoreHook(func(storagemodels.HostID, *storagemodels.Key, storagemodels.Record) { stored++ })
		id := storagemodels.NewHostID(&testHost{})

		table.Store(id, key, storagemodels.Record{})
		table.Load(id, key)
		table.Load(id, key)

		if loaded != 2 || stored != 1 {
			t.Fatalf("hooks called loaded=%d stored=%d", loaded, stored)
		}
	})

	t.Run("DeleteHostAndReset", func(t *testing.T) {
		table := mock.New()
		id := storagemodels.NewHostID(&testHost{})
		table.Store(id, key, storagemodels.Record{})
		table.Store(id, storagemodels.NewKey("other"), storagemodels.Record{})

		removed, tracked := table.DeleteHost(id)
		if removed != 2 || !tracked {
			t.Fatalf("DeleteHost returned %d, %v", removed, tracked)
		}
		if table.Len() != 0 || table.Hosts() != 0 {
			t.Fatalf("table should be empty, len=%d hosts=%d", table.Len(), table.Hosts())
		}

		table.Store(id, key, storagemodels.Record{})
		table.Reset()
		if table.Len() != 0 || table.Stores() != 0 {
			t.Fatal("Reset should clear data and counters")
		}
	})
}
