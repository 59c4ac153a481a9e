package console

import (
	"context"
	"errors"
	"net/url"

	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/page"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// State is the editor state of a Screen.
type State int

const (
	Idle State = iota
	Editing
	Validating
	Persisting
	Invalid
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Persisting:
		return "persisting"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Screen is one list screen with its editor.
// A Screen is not safe for concurrent use.
type Screen[T domain.Entity] struct {
	svc    *Service[T]
	items  []T
	cursor page.Cursor

	state  State
	form   url.Values
	editID string
	errs   validate.Errors
	notice Message
}

// NewScreen creates an idle screen on page 1. Call Load to fetch the list.
func NewScreen[T domain.Entity](svc *Service[T]) *Screen[T] {
	return &Screen[T]{
		svc:    svc,
		cursor: page.NewCursor(svc.PageSize()),
	}
}

// State returns the editor state.
func (s *Screen[T]) State() State { return s.state }

// Form returns the form being edited, or nil when idle.
func (s *Screen[T]) Form() url.Values { return s.form }

// EditingID returns the id of the record being edited, or "" for a new one.
func (s *Screen[T]) EditingID() string { return s.editID }

// Errors returns the current per-field messages.
func (s *Screen[T]) Errors() validate.Errors { return s.errs }

// Notice returns the last failure notice. The zero Message means none.
func (s *Screen[T]) Notice() Message { return s.notice }

// Items returns the whole fetched list.
func (s *Screen[T]) Items() []T { return s.items }

// Load re-fetches the list and re-clamps the cursor.
// On failure the previous list is kept and a notice is set.
func (s *Screen[T]) Load(ctx context.Context) error {
	items, err := s.svc.List(ctx)
	if err != nil {
		s.notice = MapError(err)
		return err
	}
	s.items = items
	s.cursor.Clamp(len(items))
	return nil
}

// Page returns the visible window.
func (s *Screen[T]) Page() page.Page[T] {
	return page.Window(&s.cursor, s.items)
}

// Next moves to the next page.
func (s *Screen[T]) Next() page.Page[T] {
	s.cursor.Next(len(s.items))
	return s.Page()
}

// Prev moves to the previous page.
func (s *Screen[T]) Prev() page.Page[T] {
	s.cursor.Prev(len(s.items))
	return s.Page()
}

// Goto moves to page p, clamped.
func (s *Screen[T]) Goto(p int) page.Page[T] {
	s.cursor.Goto(p, len(s.items))
	return s.Page()
}

// New opens the editor on a blank form.
func (s *Screen[T]) New() {
	s.open(s.svc.Blank(), "")
}

// Edit opens the editor on an existing record, retaining its id.
func (s *Screen[T]) Edit(ctx context.Context, id string) error {
	v, err := s.svc.Get(ctx, id)
	if err != nil {
		s.notice = MapError(err)
		return err
	}
	s.open(s.svc.Form(v), id)
	return nil
}

func (s *Screen[T]) open(form url.Values, id string) {
	s.state = Editing
	s.form = form
	s.editID = id
	s.errs = validate.Errors{}
	s.notice = Message{}
}

// Set replaces a field's values and returns its validation message.
// Setting a field on an invalid form returns the editor to Editing.
func (s *Screen[T]) Set(field string, values ...string) (string, error) {
	if s.state != Editing && s.state != Invalid {
		return "", ErrNotEditing
	}
	s.state = Editing
	s.form[field] = append([]string(nil), values...)

	msg := s.svc.Field(field, values...)
	if msg == "" {
		delete(s.errs, field)
	} else {
		s.errs[field] = msg
	}
	return msg, nil
}

// Cancel closes the editor.
func (s *Screen[T]) Cancel() {
	s.close()
}

func (s *Screen[T]) close() {
	s.state = Idle
	s.form = nil
	s.editID = ""
	s.errs = nil
}

// Submit validates and persists the form.
//
// An invalid form moves to Invalid and returns validate.Errors with the
// values preserved. A store failure returns to Editing with a notice and
// leaves the list and cursor untouched. On success the list is re-fetched
// and the cursor moves to the page showing the affected record (the last
// page after a create).
func (s *Screen[T]) Submit(ctx context.Context) (string, error) {
	if s.state != Editing && s.state != Invalid {
		return "", ErrNotEditing
	}

	s.state = Validating
	if errs := s.svc.Validate(s.form); len(errs) > 0 {
		s.state = Invalid
		s.errs = errs
		return "", errs
	}
	s.errs = validate.Errors{}

	s.state = Persisting
	id := s.editID
	var err error
	if id == "" {
		id, err = s.svc.Create(ctx, s.form)
	} else {
		err = s.svc.Update(ctx, id, s.form)
	}
	if err != nil {
		s.state = Editing
		s.notice = MapError(err)
		return "", err
	}

	created := s.editID == ""
	s.close()
	s.notice = Message{}

	if err := s.Load(ctx); err != nil {
		return id, err
	}
	if created {
		s.cursor.Last(len(s.items))
	} else if i := s.indexOf(id); i >= 0 {
		s.cursor.Show(i, len(s.items))
	}
	return id, nil
}

// Delete removes a record (with its cascade), re-fetches the list and
// re-clamps the cursor. If the deleted record was open in the editor, the
// editor is closed.
//
// When only the cascade is incomplete the record is gone, so the list is
// still refreshed; the report and error are returned alongside.
func (s *Screen[T]) Delete(ctx context.Context, id string) (store.Report, error) {
	s.notice = Message{}
	report, err := s.svc.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrCascadeIncomplete) {
		s.notice = MapError(err)
		return report, err
	}

	if s.editID == id {
		s.close()
	}
	loadErr := s.Load(ctx)
	if err != nil {
		s.notice = MapError(err)
		return report, err
	}
	return report, loadErr
}

func (s *Screen[T]) indexOf(id string) int {
	for i, v := range s.items {
		if v.Key() == id {
			return i
		}
	}
	return -1
}
