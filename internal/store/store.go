// Package store provides the generic document-store adapter the rest of the
// backend is built on: get/getAll/add/update/remove against named collections,
// with single-field-set update semantics and no cross-document transactions.
package store

import "context"

// Collection names.
const (
	Users         = "users"
	Groups        = "groups"
	Posts         = "posts"
	CommentsColl  = "comments"
	Notifications = "notifications"
	Reports       = "reports"
	Messages      = "messages"
)

// Filter selects documents by field values. Semantics follow MongoDB's query
// matching: a plain value matches on equality, and an equality filter against
// an array field matches documents whose array contains the value. Keys may
// use dotted paths ("author.id"). The "_id" key takes a hex string.
type Filter map[string]any

// In matches documents whose field equals any of the listed values (or, for
// array fields, whose array contains any of them).
type In []any

// InStrings builds an In filter value from string ids.
func InStrings(ids []string) In {
	vals := make(In, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	return vals
}

// ByID selects a single document by its hex id.
func ByID(id string) Filter { return Filter{"_id": id} }

// Store is the entity-store contract. Update sets exactly one field per call;
// multi-step mutations are independent writes with no isolation, which is the
// documented weak-consistency model of the whole backend.
type Store interface {
	// Get decodes the first matching document into out, which must be a
	// pointer to a struct. A missing document is a NotFound error.
	Get(ctx context.Context, collection string, filter Filter, out any) error

	// GetAll decodes every matching document into out, which must be a
	// pointer to a slice.
	GetAll(ctx context.Context, collection string, filter Filter, out any) error

	// Add inserts doc and returns the generated hex id.
	Add(ctx context.Context, collection string, doc any) (string, error)

	// Update sets a single field on the document with the given hex id.
	Update(ctx context.Context, collection, id, field string, value any) error

	// Remove deletes every matching document and returns the count.
	Remove(ctx context.Context, collection string, filter Filter) (int64, error)
}
