package store

// Relationship defines a parent-child relationship for cascade operations.
type Relationship struct {
	// ParentCollection is the parent's collection (e.g., "users").
	ParentCollection string

	// ChildCollection is the child's collection (e.g., "products"), or the
	// sub-collection name when Sub is set (e.g., "links").
	ChildCollection string

	// ParentKeyAttr is the attribute in the child that references the parent
	// (e.g., "vendorId"). Unused for sub-collections.
	ParentKeyAttr string

	// Sub marks children stored as a sub-collection of the parent.
	Sub bool
}

// Registry holds all known record relationships for cascade operations.
type Registry struct {
	relationships []Relationship
	byParent      map[string][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		relationships: []Relationship{},
		byParent:      make(map[string][]Relationship),
	}
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byParent[rel.ParentCollection] = append(r.byParent[rel.ParentCollection], rel)
}

// ChildrenOf returns all child relationships for a given parent collection.
func (r *Registry) ChildrenOf(parentCollection string) []Relationship {
	if r == nil {
		return nil
	}
	return r.byParent[parentCollection]
}

// AllRelationships returns all registered relationships.
func (r *Registry) AllRelationships() []Relationship {
	return r.relationships
}

// HasChildren returns true if the parent collection has any registered child relationships.
func (r *Registry) HasChildren(parentCollection string) bool {
	if r == nil {
		return false
	}
	return len(r.byParent[parentCollection]) > 0
}
