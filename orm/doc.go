/*
Package orm stores typed models in a KVStore.

A Bucket owns every key under its own prefix. Values are models that know how
to marshal themselves, wrapped in an Object together with the key they are
stored under. Buckets may carry secondary indexes, which are kept in sync on
every Save and Delete and can be queried through the QueryRouter under
/<bucket>/<index>.
*/
package orm
