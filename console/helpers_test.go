package console_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDeps(s store.Store) console.Deps {
	return console.NewDeps(s, quietLogger())
}

func userForm(i int) url.Values {
	return url.Values{
		"name":    {fmt.Sprintf("User %d", i)},
		"email":   {fmt.Sprintf("user%d@example.com", i)},
		"phone":   {"1234567890"},
		"address": {"1 Main Street"},
		"age":     {"30"},
		"type":    {"user"},
	}
}

func vendorForm(name string) url.Values {
	return url.Values{
		"businessName": {name},
		"ownerName":    {"Owner"},
		"gstNumber":    {"12345678901"},
		"contactEmail": {"shop@example.com"},
		"contactPhone": {"1234567890"},
		"address":      {"2 Market Road"},
		"type":         {"business"},
	}
}

func productForm(name string) url.Values {
	return url.Values{
		"name":        {name},
		"price":       {"19.99"},
		"category":    {"Sport"},
		"description": {"Light racket"},
		"images":      {"https://img.example.com/1.png", ""},
	}
}

func mustCreate(t *testing.T, create func(context.Context, url.Values) (string, error), form url.Values) string {
	t.Helper()
	id, err := create(context.Background(), form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

// flakyStore fails every call with store.ErrUnavailable while down.
type flakyStore struct {
	*store.Memory

	mu   sync.Mutex
	down bool

	// failDeleteSub lists sub-record ids whose delete always fails.
	failDeleteSub map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Memory: store.NewMemory(), failDeleteSub: map[string]bool{}}
}

func (f *flakyStore) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyStore) check() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return fmt.Errorf("%w: connection reset", store.ErrUnavailable)
	}
	return nil
}

func (f *flakyStore) List(ctx context.Context, collection string, filter *store.Filter) ([]store.Record, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.Memory.List(ctx, collection, filter)
}

func (f *flakyStore) Get(ctx context.Context, collection, id string) (store.Record, error) {
	if err := f.check(); err != nil {
		return store.Record{}, err
	}
	return f.Memory.Get(ctx, collection, id)
}

func (f *flakyStore) Create(ctx context.Context, collection string, fields store.Fields) (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	return f.Memory.Create(ctx, collection, fields)
}

func (f *flakyStore) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Memory.Update(ctx, collection, id, fields)
}

func (f *flakyStore) Delete(ctx context.Context, collection, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Memory.Delete(ctx, collection, id)
}

func (f *flakyStore) DeleteSub(ctx context.Context, parentCollection, parentID, sub, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	f.mu.Lock()
	fail := f.failDeleteSub[id]
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("%w: throttled", store.ErrUnavailable)
	}
	return f.Memory.DeleteSub(ctx, parentCollection, parentID, sub, id)
}
