// Package keys provides id and partition key generation for the document store.
package keys

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a new store-assigned record id.
// Ids are UUIDv7, so lexical order follows creation order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SubCollectionPK computes the partition key for records of a sub-collection.
// All records of one sub-collection share a partition and are ordered by id.
func SubCollectionPK(parentCollection, parentID, sub string) string {
	return fmt.Sprintf("%s#%s#%s", parentCollection, parentID, sub)
}

// Ref returns the type-qualified reference for a record (e.g., "users#uuid").
func Ref(collection, id string) string {
	return collection + "#" + id
}
