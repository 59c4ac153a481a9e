package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jacentio/vendoradmin/internal/keys"
)

// DefaultCascadeLimit is the default number of concurrent child deletes.
const DefaultCascadeLimit = 8

// Failure records one child that could not be enumerated or deleted.
// ID is empty when enumeration of the child collection failed.
type Failure struct {
	Collection string
	ID         string
	Err        error
}

func (f Failure) Error() string {
	if f.ID == "" {
		return fmt.Sprintf("%s: %v", f.Collection, f.Err)
	}
	return fmt.Sprintf("%s: %v", keys.Ref(f.Collection, f.ID), f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarizes a cascade delete.
type Report struct {
	// Parent is the reference of the deleted parent (e.g., "users#uuid").
	Parent string

	// Deleted counts children removed, including already-missing ones.
	Deleted int

	// Failures lists children left behind, ordered by collection and id.
	Failures []Failure
}

// Err returns nil when every child was deleted, otherwise an error wrapping
// ErrCascadeIncomplete and each failure.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures)+1)
	errs = append(errs, ErrCascadeIncomplete)
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r *Report) merge(other Report) {
	r.Deleted += other.Deleted
	r.Failures = append(r.Failures, other.Failures...)
}

// Cascader deletes the registered children of a record.
type Cascader struct {
	store    Store
	registry *Registry
	logger   *slog.Logger
	limit    int
}

// NewCascader creates a Cascader. A nil logger uses slog.Default().
func NewCascader(s Store, registry *Registry, logger *slog.Logger) *Cascader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascader{
		store:    s,
		registry: registry,
		logger:   logger,
		limit:    DefaultCascadeLimit,
	}
}

// SetLimit sets the number of concurrent child deletes (minimum 1).
func (c *Cascader) SetLimit(n int) {
	if n < 1 {
		n = 1
	}
	c.limit = n
}

// Registry returns the relationship registry.
func (c *Cascader) Registry() *Registry {
	return c.registry
}

// DeleteChildren deletes every registered child of collection/id.
//
// Children are enumerated per relationship and deleted concurrently; all
// deletes are awaited. A failed child never stops the others. Children that
// are already gone count as deleted, so the call is idempotent. Children that
// are themselves registered parents are cascaded in turn.
func (c *Cascader) DeleteChildren(ctx context.Context, collection, id string) Report {
	report := Report{Parent: keys.Ref(collection, id)}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(c.limit)

	for _, rel := range c.registry.ChildrenOf(collection) {
		rel := rel
		children, err := c.enumerate(ctx, rel, id)
		if err != nil {
			mu.Lock()
			report.Failures = append(report.Failures, Failure{
				Collection: rel.ChildCollection,
				Err:        fmt.Errorf("enumerate children: %w", err),
			})
			mu.Unlock()
			continue
		}

		for _, child := range children {
			child := child
			g.Go(func() error {
				err := c.deleteChild(ctx, rel, id, child.ID)
				if errors.Is(err, ErrNotFound) {
					err = nil
				}

				var nested Report
				if err == nil && !rel.Sub && c.registry.HasChildren(rel.ChildCollection) {
					nested = c.DeleteChildren(ctx, rel.ChildCollection, child.ID)
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					c.logger.Warn("failed to delete child",
						"parent", report.Parent,
						"child", keys.Ref(rel.ChildCollection, child.ID),
						"error", err,
					)
					report.Failures = append(report.Failures, Failure{Collection: rel.ChildCollection, ID: child.ID, Err: err})
					return nil
				}
				report.Deleted++
				report.merge(nested)
				return nil
			})
		}
	}
	_ = g.Wait()

	sort.Slice(report.Failures, func(i, j int) bool {
		if report.Failures[i].Collection != report.Failures[j].Collection {
			return report.Failures[i].Collection < report.Failures[j].Collection
		}
		return report.Failures[i].ID < report.Failures[j].ID
	})

	c.logger.Info("cascade delete completed",
		"parent", report.Parent,
		"deleted", report.Deleted,
		"failed", len(report.Failures),
	)
	return report
}

func (c *Cascader) enumerate(ctx context.Context, rel Relationship, parentID string) ([]Record, error) {
	if rel.Sub {
		return c.store.ListSub(ctx, rel.ParentCollection, parentID, rel.ChildCollection)
	}
	return c.store.List(ctx, rel.ChildCollection, Where(rel.ParentKeyAttr, parentID))
}

func (c *Cascader) deleteChild(ctx context.Context, rel Relationship, parentID, childID string) error {
	if rel.Sub {
		return c.store.DeleteSub(ctx, rel.ParentCollection, parentID, rel.ChildCollection, childID)
	}
	return c.store.Delete(ctx, rel.ChildCollection, childID)
}
