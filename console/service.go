package console

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// Service implements the CRUD workflow for one entity type.
// It is safe for concurrent use.
type Service[T domain.Entity] struct {
	schema   Schema[T]
	cascader *store.Cascader
	logger   *slog.Logger
}

// NewService creates a Service from a schema.
func NewService[T domain.Entity](schema Schema[T], deps Deps) *Service[T] {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if schema.PageSize < 1 {
		schema.PageSize = 1
	}
	return &Service[T]{
		schema:   schema,
		cascader: deps.Cascader,
		logger:   logger.With("collection", schema.Name),
	}
}

// Name returns the schema name.
func (s *Service[T]) Name() string {
	return s.schema.Name
}

// PageSize returns the list page size.
func (s *Service[T]) PageSize() int {
	return s.schema.PageSize
}

// Blank returns the form of a new entity.
func (s *Service[T]) Blank() url.Values {
	return s.schema.Blank()
}

// Form returns the editable form of an entity.
func (s *Service[T]) Form(v T) url.Values {
	return v.Form()
}

// Field validates one field.
func (s *Service[T]) Field(name string, values ...string) string {
	return s.schema.Rules.Field(name, values...)
}

// Validate validates a whole form.
func (s *Service[T]) Validate(form url.Values) validate.Errors {
	return s.schema.Rules.All(form)
}

// List returns every entity in the collection, ordered by id.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	recs, err := s.schema.Collection.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.schema.Name, err)
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.schema.Decode(rec))
	}
	return out, nil
}

// Get returns one entity.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := s.schema.Collection.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s %s: %w", s.schema.Name, id, err)
	}
	return s.schema.Decode(rec), nil
}

// Create validates the form and stores a new entity.
// Invalid forms return validate.Errors without writing.
func (s *Service[T]) Create(ctx context.Context, form url.Values) (string, error) {
	if errs := s.Validate(form); len(errs) > 0 {
		return "", errs
	}
	id, err := s.schema.Collection.Create(ctx, s.schema.Fields(form))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", s.schema.Name, err)
	}
	s.logger.Info("created", "id", id)
	return id, nil
}

// Update validates the form and merges it into an existing entity.
func (s *Service[T]) Update(ctx context.Context, id string, form url.Values) error {
	if errs := s.Validate(form); len(errs) > 0 {
		return errs
	}
	if err := s.schema.Collection.Update(ctx, id, s.schema.Fields(form)); err != nil {
		return fmt.Errorf("update %s %s: %w", s.schema.Name, id, err)
	}
	s.logger.Info("updated", "id", id)
	return nil
}

// Delete removes an entity and, for parents, all of its children.
//
// The primary record is deleted first; if that fails nothing else is
// touched. Children are then deleted as one awaited batch. A partial cascade
// returns the report together with an error wrapping store.ErrCascadeIncomplete.
func (s *Service[T]) Delete(ctx context.Context, id string) (store.Report, error) {
	if err := s.schema.Collection.Delete(ctx, id); err != nil {
		return store.Report{}, fmt.Errorf("delete %s %s: %w", s.schema.Name, id, err)
	}
	s.logger.Info("deleted", "id", id)

	if s.schema.Parent == "" || s.cascader == nil {
		return store.Report{}, nil
	}
	report := s.cascader.DeleteChildren(ctx, s.schema.Parent, id)
	if err := report.Err(); err != nil {
		return report, fmt.Errorf("delete %s %s: %w", s.schema.Name, id, err)
	}
	return report, nil
}
