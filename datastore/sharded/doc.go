/*
Package sharded provides the default in-memory implementation of datastore.Table.

Records are spread over a fixed number of shards, each a map of hosts to
their records guarded by its own sync.RWMutex. The shard of a host is picked
by hashing the host's address with xxhash, so all records of one host live
in one shard and operations on different hosts rarely contend:

	table := sharded.New(64)
	newHost := table.Store(hostID, key, rec)

The shard count is rounded up to a power of two.
*/
package sharded
