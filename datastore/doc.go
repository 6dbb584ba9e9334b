/*
Package datastore defines the side-table abstraction the objectassoc registry runs on.

The main interface is Table, a concurrency-safe map from (host, key) to a record:

	type Table interface {
	    Load(host storagemodels.HostID, key *storagemodels.Key) (storagemodels.Record, bool)
	    Store(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) (newHost bool)
	    Delete(host storagemodels.HostID, key *storagemodels.Key) bool
	    DeleteHost(host storagemodels.HostID) (int, bool)
	    Range(fn func(host storagemodels.HostID, key *storagemodels.Key, rec storagemodels.Record) bool)
	    Len() int
	    Hosts() int
	    Reset()
	}

Implementations:
  - sharded: the default, sharded maps guarded by one RWMutex per shard
  - mock: single-map recording implementation for testing

A Table knows nothing about object lifetimes or type tags; the registry
package layers both on top.
*/
package datastore
