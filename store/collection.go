package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection is a Store bound to one collection or sub-collection.
type Collection interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, fields Fields) (string, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

// ParentCheck defines a parent existence check performed before a create.
type ParentCheck struct {
	Collection string
	ID         string

	// Filter is an optional predicate the parent must also satisfy
	// (e.g., type = "business" for a product's vendor).
	Filter *Filter
}

// Scope configures a top-level collection view.
type Scope struct {
	// Collection is the collection name.
	Collection string

	// Filter restricts the view. Its field is forced onto every created or
	// updated document, and records that don't match are reported as ErrNotFound.
	Filter *Filter

	// Parent is validated on create. Nil for root records.
	Parent *ParentCheck
}

// Top returns a view over a top-level collection.
func Top(s Store, scope Scope) Collection {
	return &topCollection{store: s, scope: scope}
}

type topCollection struct {
	store Store
	scope Scope
}

func (c *topCollection) List(ctx context.Context) ([]Record, error) {
	return c.store.List(ctx, c.scope.Collection, c.scope.Filter)
}

func (c *topCollection) Get(ctx context.Context, id string) (Record, error) {
	rec, err := c.store.Get(ctx, c.scope.Collection, id)
	if err != nil {
		return Record{}, err
	}
	if !c.scope.Filter.Matches(rec.Fields) {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (c *topCollection) Create(ctx context.Context, fields Fields) (string, error) {
	if err := checkParent(ctx, c.store, c.scope.Parent); err != nil {
		return "", err
	}
	return c.store.Create(ctx, c.scope.Collection, c.scoped(fields))
}

func (c *topCollection) Update(ctx context.Context, id string, fields Fields) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	return c.store.Update(ctx, c.scope.Collection, id, c.scoped(fields))
}

func (c *topCollection) Delete(ctx context.Context, id string) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	return c.store.Delete(ctx, c.scope.Collection, id)
}

// scoped copies fields and pins the filter field.
func (c *topCollection) scoped(fields Fields) Fields {
	out := fields.Clone()
	if f := c.scope.Filter; f != nil {
		out[f.Field] = f.Value
	}
	return out
}

func checkParent(ctx context.Context, s Store, check *ParentCheck) error {
	if check == nil {
		return nil
	}
	if check.ID == "" {
		return ErrParentNotFound
	}
	parent, err := s.Get(ctx, check.Collection, check.ID)
	if errors.Is(err, ErrNotFound) {
		return ErrParentNotFound
	}
	if err != nil {
		return fmt.Errorf("check parent: %w", err)
	}
	if !check.Filter.Matches(parent.Fields) {
		return ErrParentNotFound
	}
	return nil
}

// Sub returns a view over a sub-collection of one parent record.
// Creates fail with ErrParentNotFound when the parent doesn't exist.
func Sub(s Store, parentCollection, parentID, sub string) Collection {
	return &subCollection{store: s, parentCollection: parentCollection, parentID: parentID, sub: sub}
}

type subCollection struct {
	store            Store
	parentCollection string
	parentID         string
	sub              string
}

func (c *subCollection) List(ctx context.Context) ([]Record, error) {
	return c.store.ListSub(ctx, c.parentCollection, c.parentID, c.sub)
}

func (c *subCollection) Get(ctx context.Context, id string) (Record, error) {
	return c.store.GetSub(ctx, c.parentCollection, c.parentID, c.sub, id)
}

func (c *subCollection) Create(ctx context.Context, fields Fields) (string, error) {
	if err := checkParent(ctx, c.store, &ParentCheck{Collection: c.parentCollection, ID: c.parentID}); err != nil {
		return "", err
	}
	return c.store.CreateSub(ctx, c.parentCollection, c.parentID, c.sub, fields.Clone())
}

func (c *subCollection) Update(ctx context.Context, id string, fields Fields) error {
	return c.store.UpdateSub(ctx, c.parentCollection, c.parentID, c.sub, id, fields.Clone())
}

func (c *subCollection) Delete(ctx context.Context, id string) error {
	return c.store.DeleteSub(ctx, c.parentCollection, c.parentID, c.sub, id)
}
