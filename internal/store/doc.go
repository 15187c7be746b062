// Package store defines the persistence collaborator contracts the
// scheduling engine depends on. All collection-shaped stores use bulk
// read/replace semantics only: whole-collection replace is last-write-wins
// and there is no partial update API. Implementations live under
// internal/platform.
package store
