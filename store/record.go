package store

import "context"

// Store-managed attribute names. They are never written from caller fields.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"

	// fieldPK is the sub-item table partition key.
	fieldPK = "pk"
)

// Fields is a schemaless document body.
type Fields map[string]any

// Record is a stored document with its store-assigned identity.
type Record struct {
	// ID is the store-assigned id.
	ID string

	// Fields is the document body, without store-managed attributes.
	Fields Fields

	// CreatedAt is the ISO 8601 creation timestamp.
	CreatedAt string

	// UpdatedAt is the ISO 8601 last update timestamp.
	UpdatedAt string
}

// Filter is an equality predicate on one field.
type Filter struct {
	Field string
	Value string
}

// Where returns a filter matching records whose field equals value.
func Where(field, value string) *Filter {
	return &Filter{Field: field, Value: value}
}

// Matches reports whether fields satisfy the filter. A nil filter matches everything.
func (f *Filter) Matches(fields Fields) bool {
	if f == nil {
		return true
	}
	if v, ok := fields[f.Field]; !ok || v == nil {
		return false
	}
	return fields.String(f.Field) == f.Value
}

// Store is the record store contract.
//
// Collections are flat namespaces of records. Each record may own named
// sub-collections, addressed by (parentCollection, parentID, sub).
// No operation is atomic across records; cascades are the caller's job.
type Store interface {
	// List returns the records of a collection ordered by id.
	// A non-nil filter restricts the result to matching records.
	List(ctx context.Context, collection string, filter *Filter) ([]Record, error)

	// Get returns one record, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Create stores a new record and returns its assigned id.
	Create(ctx context.Context, collection string, fields Fields) (string, error)

	// Update merges fields into an existing record, or returns ErrNotFound.
	Update(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes a record, or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// ListSub returns the records of a sub-collection in insertion order.
	ListSub(ctx context.Context, parentCollection, parentID, sub string) ([]Record, error)

	// GetSub returns one sub-collection record, or ErrNotFound.
	GetSub(ctx context.Context, parentCollection, parentID, sub, id string) (Record, error)

	// CreateSub stores a new sub-collection record and returns its id.
	CreateSub(ctx context.Context, parentCollection, parentID, sub string, fields Fields) (string, error)

	// UpdateSub merges fields into a sub-collection record, or returns ErrNotFound.
	UpdateSub(ctx context.Context, parentCollection, parentID, sub, id string, fields Fields) error

	// DeleteSub removes a sub-collection record, or returns ErrNotFound.
	DeleteSub(ctx context.Context, parentCollection, parentID, sub, id string) error
}
