// Package postgres provides PostgreSQL implementations of the store
// interfaces. Bulk replace operations swap a user's whole collection in
// one transaction; database errors are mapped to the store sentinels.
package postgres
