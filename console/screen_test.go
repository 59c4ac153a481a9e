package console_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/domain"
	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

func seedUsers(t *testing.T, users *console.Service[domain.User], n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = mustCreate(t, users.Create, userForm(i))
	}
	return ids
}

func fill(t *testing.T, screen interface {
	Set(string, ...string) (string, error)
}, form url.Values) {
	t.Helper()
	for field, values := range form {
		if _, err := screen.Set(field, values...); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
}

func TestScreen_NewOpensBlankForm(t *testing.T) {
	screen := console.NewScreen(console.Users(newDeps(store.NewMemory())))

	if screen.State() != console.Idle {
		t.Fatalf("expected Idle, got %s", screen.State())
	}
	screen.New()

	if screen.State() != console.Editing {
		t.Errorf("expected Editing, got %s", screen.State())
	}
	if screen.Form().Get("type") != "user" {
		t.Errorf("expected type 'user' in blank form, got %q", screen.Form().Get("type"))
	}
	if screen.EditingID() != "" {
		t.Errorf("expected no id for a new record, got %q", screen.EditingID())
	}
}

func TestScreen_CreateFlow(t *testing.T) {
	ctx := context.Background()
	screen := console.NewScreen(console.Users(newDeps(store.NewMemory())))

	screen.New()
	fill(t, screen, userForm(1))

	id, err := screen.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if screen.State() != console.Idle {
		t.Errorf("expected Idle, got %s", screen.State())
	}
	if screen.Form() != nil {
		t.Error("expected form to be closed")
	}

	p := screen.Page()
	if len(p.Items) != 1 || p.Items[0].ID != id {
		t.Errorf("expected the new user on the page, got %+v", p.Items)
	}
}

func TestScreen_SetReturnsFieldMessage(t *testing.T) {
	screen := console.NewScreen(console.Users(newDeps(store.NewMemory())))
	screen.New()

	msg, err := screen.Set("phone", "12345")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if msg != "Phone must be 10-15 digits" {
		t.Errorf("unexpected message %q", msg)
	}
	if screen.Errors()["phone"] != msg {
		t.Errorf("expected message recorded, got %v", screen.Errors())
	}

	msg, _ = screen.Set("phone", "1234567890")
	if msg != "" {
		t.Errorf("expected no message, got %q", msg)
	}
	if _, ok := screen.Errors()["phone"]; ok {
		t.Error("expected message cleared")
	}
}

func TestScreen_InvalidSubmitKeepsValues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	screen := console.NewScreen(console.Users(newDeps(s)))

	screen.New()
	fill(t, screen, userForm(1))
	screen.Set("email", "bad")

	_, err := screen.Submit(ctx)
	var verrs validate.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validate.Errors, got %v", err)
	}
	if screen.State() != console.Invalid {
		t.Errorf("expected Invalid, got %s", screen.State())
	}
	if screen.Errors()["email"] != "Valid email is required" {
		t.Errorf("unexpected errors %v", screen.Errors())
	}
	if screen.Form().Get("name") != "User 1" || screen.Form().Get("email") != "bad" {
		t.Errorf("expected form values preserved, got %v", screen.Form())
	}
	if recs, _ := s.List(ctx, domain.Users, nil); len(recs) != 0 {
		t.Errorf("expected no store write, got %d", len(recs))
	}

	screen.Set("email", "fixed@example.com")
	if screen.State() != console.Editing {
		t.Errorf("expected Editing after a change, got %s", screen.State())
	}
	if _, err := screen.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if screen.State() != console.Idle {
		t.Errorf("expected Idle, got %s", screen.State())
	}
}

func TestScreen_NotEditing(t *testing.T) {
	screen := console.NewScreen(console.Users(newDeps(store.NewMemory())))

	if _, err := screen.Submit(context.Background()); !errors.Is(err, console.ErrNotEditing) {
		t.Errorf("expected ErrNotEditing on submit, got %v", err)
	}
	if _, err := screen.Set("name", "x"); !errors.Is(err, console.ErrNotEditing) {
		t.Errorf("expected ErrNotEditing on set, got %v", err)
	}

	screen.New()
	screen.Cancel()
	if screen.State() != console.Idle {
		t.Errorf("expected Idle after cancel, got %s", screen.State())
	}
}

func TestScreen_CreateLandsOnLastPage(t *testing.T) {
	ctx := context.Background()
	users := console.Users(newDeps(store.NewMemory()))
	seedUsers(t, users, 10)

	screen := console.NewScreen(users)
	if err := screen.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if p := screen.Page(); p.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", p.TotalPages)
	}

	screen.New()
	fill(t, screen, userForm(10))
	id, err := screen.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	p := screen.Page()
	if p.Number != 2 || p.TotalPages != 2 {
		t.Errorf("expected page 2 of 2, got %d of %d", p.Number, p.TotalPages)
	}
	if len(p.Items) != 1 || p.Items[0].ID != id {
		t.Errorf("expected the new user alone on the last page, got %+v", p.Items)
	}
}

func TestScreen_UpdateShowsRecordPage(t *testing.T) {
	ctx := context.Background()
	users := console.Users(newDeps(store.NewMemory()))
	ids := seedUsers(t, users, 15)

	screen := console.NewScreen(users)
	screen.Load(ctx)
	screen.Goto(2)

	if err := screen.Edit(ctx, ids[3]); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if screen.EditingID() != ids[3] {
		t.Errorf("expected retained id %q, got %q", ids[3], screen.EditingID())
	}
	screen.Set("name", "Renamed")
	if _, err := screen.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	p := screen.Page()
	if p.Number != 1 {
		t.Errorf("expected page 1 holding the edited user, got %d", p.Number)
	}
	if p.Items[3].Name != "Renamed" {
		t.Errorf("expected renamed user, got %q", p.Items[3].Name)
	}
}

func TestScreen_EditLinkAtVisibleIndex(t *testing.T) {
	ctx := context.Background()
	deps := newDeps(store.NewMemory())
	userID := mustCreate(t, console.Users(deps).Create, userForm(1))
	links := console.Links(deps, userID)
	for i := 0; i < 8; i++ {
		mustCreate(t, links.Create, url.Values{"url": {fmt.Sprintf("https://%d.example", i)}})
	}

	screen := console.NewScreen(links)
	screen.Load(ctx)
	p := screen.Next()
	if p.Number != 2 || len(p.Items) != 3 {
		t.Fatalf("expected 3 links on page 2, got %d on page %d", len(p.Items), p.Number)
	}
	target := p.Items[2]

	if err := screen.Edit(ctx, target.ID); err != nil {
		t.Fatalf("edit: %v", err)
	}
	screen.Set("url", "https://edited.example")
	if _, err := screen.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	all, err := links.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, l := range all {
		edited := l.URL == "https://edited.example"
		if l.ID == target.ID && !edited {
			t.Errorf("expected target link edited, got %q", l.URL)
		}
		if l.ID != target.ID && l.URL != fmt.Sprintf("https://%d.example", i) {
			t.Errorf("expected link %d untouched, got %q", i, l.URL)
		}
	}
	if screen.Page().Number != 2 {
		t.Errorf("expected to stay on page 2, got %d", screen.Page().Number)
	}
}

func TestScreen_DeleteLastItemOnLastPage(t *testing.T) {
	ctx := context.Background()
	users := console.Users(newDeps(store.NewMemory()))
	ids := seedUsers(t, users, 11)

	screen := console.NewScreen(users)
	screen.Load(ctx)
	if p := screen.Goto(2); len(p.Items) != 1 {
		t.Fatalf("expected 1 user on page 2, got %d", len(p.Items))
	}

	if _, err := screen.Delete(ctx, ids[10]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	p := screen.Page()
	if p.Number != 1 || p.TotalPages != 1 {
		t.Errorf("expected page 1 of 1, got %d of %d", p.Number, p.TotalPages)
	}
	if len(p.Items) != 10 {
		t.Errorf("expected a full first page, got %d", len(p.Items))
	}
}

func TestScreen_DeleteClosesEditor(t *testing.T) {
	ctx := context.Background()
	users := console.Users(newDeps(store.NewMemory()))
	ids := seedUsers(t, users, 2)

	screen := console.NewScreen(users)
	screen.Load(ctx)
	screen.Edit(ctx, ids[0])

	if _, err := screen.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if screen.State() != console.Idle {
		t.Errorf("expected Idle, got %s", screen.State())
	}
	if len(screen.Items()) != 1 {
		t.Errorf("expected 1 user left, got %d", len(screen.Items()))
	}
}

func TestScreen_StoreFailureDuringPersist(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	users := console.Users(newDeps(s))
	seedUsers(t, users, 12)

	screen := console.NewScreen(users)
	screen.Load(ctx)
	screen.Goto(2)

	screen.New()
	fill(t, screen, userForm(99))
	s.setDown(true)

	_, err := screen.Submit(ctx)
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if screen.State() != console.Editing {
		t.Errorf("expected Editing, got %s", screen.State())
	}
	if screen.Notice().Code != console.CodeStoreUnavailable {
		t.Errorf("expected store_unavailable notice, got %+v", screen.Notice())
	}
	if screen.Form().Get("name") != "User 99" {
		t.Errorf("expected form kept, got %v", screen.Form())
	}
	if p := screen.Page(); p.Number != 2 || p.Total != 12 {
		t.Errorf("expected list and cursor untouched, got page %d total %d", p.Number, p.Total)
	}

	s.setDown(false)
	if _, err := screen.Submit(ctx); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if screen.Notice() != (console.Message{}) {
		t.Errorf("expected notice cleared, got %+v", screen.Notice())
	}
	if p := screen.Page(); p.Total != 13 {
		t.Errorf("expected 13 users, got %d", p.Total)
	}
}

func TestScreen_LoadFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	users := console.Users(newDeps(s))
	seedUsers(t, users, 3)

	screen := console.NewScreen(users)
	screen.Load(ctx)

	s.setDown(true)
	if err := screen.Load(ctx); !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if len(screen.Items()) != 3 {
		t.Errorf("expected previous list kept, got %d", len(screen.Items()))
	}
}

func TestScreen_EditMissing(t *testing.T) {
	screen := console.NewScreen(console.Users(newDeps(store.NewMemory())))

	err := screen.Edit(context.Background(), "ghost")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if screen.State() != console.Idle {
		t.Errorf("expected Idle, got %s", screen.State())
	}
	if screen.Notice().Code != console.CodeNotFound {
		t.Errorf("expected not_found notice, got %+v", screen.Notice())
	}
}

func TestScreen_DeletePartialCascadeRefreshes(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	deps := newDeps(s)
	vendors := console.Vendors(deps)

	vendorID := mustCreate(t, vendors.Create, vendorForm("Acme"))
	mustCreate(t, vendors.Create, vendorForm("Other"))
	bad := mustCreate(t, console.Descriptions(deps, vendorID).Create, url.Values{"text": {"note"}})
	s.failDeleteSub[bad] = true

	screen := console.NewScreen(vendors)
	screen.Load(ctx)

	_, err := screen.Delete(ctx, vendorID)
	if !errors.Is(err, store.ErrCascadeIncomplete) {
		t.Fatalf("expected ErrCascadeIncomplete, got %v", err)
	}
	if screen.Notice().Code != console.CodeCascadeIncomplete {
		t.Errorf("expected cascade_incomplete notice, got %+v", screen.Notice())
	}
	if len(screen.Items()) != 1 {
		t.Errorf("expected the list refreshed without the vendor, got %d", len(screen.Items()))
	}
}

func TestState_String(t *testing.T) {
	tests := map[console.State]string{
		console.Idle:       "idle",
		console.Editing:    "editing",
		console.Validating: "validating",
		console.Persisting: "persisting",
		console.Invalid:    "invalid",
		console.State(42):  "unknown",
	}
	for state, expected := range tests {
		if state.String() != expected {
			t.Errorf("expected %q, got %q", expected, state.String())
		}
	}
}
