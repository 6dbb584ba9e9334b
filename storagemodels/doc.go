/*
Package storagemodels defines the data structures used throughout objectassoc.

Key Types:

Key:
An association key identifies one association site. Keys are compared by
pointer, so create each one once and keep it in a package-level variable:

	var sessionKey = storagemodels.NewKey("session")

HostID:
The identity of a host object. It wraps a weak pointer to the host, so
holding a HostID never keeps the host alive:

	id := storagemodels.NewHostID(conn)

Record:
One stored association, with the type tag used to validate reads:

	type Record struct {
	    Value     any          // stored value (or weak.Pointer for weak records)
	    Type      reflect.Type // type tag checked on retrieval
	    Weak      bool         // value held through a weak pointer
	    CreatedAt time.Time
	    UpdatedAt time.Time
	}

RecordInfo and Stats:
Serializable views of the registry used for diagnostics.

These types are shared by the registry and every datastore.Table implementation.
*/
package storagemodels
