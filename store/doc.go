// Package store provides the record store adapter for the admin console.
//
// The adapter exposes a small document-database contract ([Store]) over
// flat collections of schemaless records plus per-record sub-collections.
// Two implementations are provided:
//
//   - [DynamoDB] persists records in Amazon DynamoDB (one table per collection,
//     one shared table for sub-collection records).
//   - [Memory] keeps records in process memory, for tests and local runs.
//
// # Records
//
// A [Record] carries a store-assigned id, its [Fields] and the store-managed
// timestamps. Ids are UUIDv7, so listing by id returns records in insertion order:
//
//	id, err := s.Create(ctx, "users", store.Fields{"name": "Ada", "type": "user"})
//	users, err := s.List(ctx, "users", store.Where("type", "user"))
//
// # Collections
//
// [Top] and [Sub] bind a [Store] to one collection and expose the common
// [Collection] interface. A [Scope] filter is forced onto every document
// written through the view and checked on every read, which lets two record
// variants share one physical collection:
//
//	vendors := store.Top(s, store.Scope{
//	    Collection: "users",
//	    Filter:     store.Where("type", "business"),
//	})
//
// # Cascades
//
// The store does not enforce referential integrity. Register parent-child
// relationships in a [Registry] and call [Cascader.DeleteChildren] after
// deleting a parent:
//
//	reg := store.NewRegistry()
//	reg.Register(store.Relationship{ParentCollection: "users", ChildCollection: "products", ParentKeyAttr: "vendorId"})
//	reg.Register(store.Relationship{ParentCollection: "users", ChildCollection: "links", Sub: true})
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - record doesn't exist (or doesn't match the view's filter)
//   - [ErrParentNotFound] - parent validation failed
//   - [ErrAlreadyExists] - record with id already exists
//   - [ErrUnavailable] - the backend could not be reached or rejected the call
//   - [ErrCascadeIncomplete] - one or more children could not be deleted
package store
