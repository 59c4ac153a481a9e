package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jacentio/vendoradmin/internal/keys"
)

// Memory is an in-process Store. It is safe for concurrent use.
// Records are deep-copied on the way in and out.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]memRecord
	subs        map[string]map[string]memRecord
	now         func() time.Time
}

type memRecord struct {
	fields    Fields
	createdAt string
	updatedAt string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]memRecord),
		subs:        make(map[string]map[string]memRecord),
		now:         time.Now,
	}
}

func (m *Memory) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

// List implements Store.
func (m *Memory) List(ctx context.Context, collection string, filter *Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return listRecords(m.collections[collection], filter), nil
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, collection, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getRecord(m.collections[collection], id)
}

// Create implements Store.
func (m *Memory) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(m.collections, collection, fields), nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merge(m.collections[collection], id, fields)
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(m.collections[collection], id)
}

// ListSub implements Store.
func (m *Memory) ListSub(ctx context.Context, parentCollection, parentID, sub string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return listRecords(m.subs[keys.SubCollectionPK(parentCollection, parentID, sub)], nil), nil
}

// GetSub implements Store.
func (m *Memory) GetSub(ctx context.Context, parentCollection, parentID, sub, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getRecord(m.subs[keys.SubCollectionPK(parentCollection, parentID, sub)], id)
}

// CreateSub implements Store.
func (m *Memory) CreateSub(ctx context.Context, parentCollection, parentID, sub string, fields Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(m.subs, keys.SubCollectionPK(parentCollection, parentID, sub), fields), nil
}

// UpdateSub implements Store.
func (m *Memory) UpdateSub(ctx context.Context, parentCollection, parentID, sub, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merge(m.subs[keys.SubCollectionPK(parentCollection, parentID, sub)], id, fields)
}

// DeleteSub implements Store.
func (m *Memory) DeleteSub(ctx context.Context, parentCollection, parentID, sub, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(m.subs[keys.SubCollectionPK(parentCollection, parentID, sub)], id)
}

// insert must be called with the write lock held.
func (m *Memory) insert(space map[string]map[string]memRecord, name string, fields Fields) string {
	records, ok := space[name]
	if !ok {
		records = make(map[string]memRecord)
		space[name] = records
	}
	id := keys.NewID()
	now := m.timestamp()
	records[id] = memRecord{fields: fields.Clone(), createdAt: now, updatedAt: now}
	return id
}

// merge must be called with the write lock held.
func (m *Memory) merge(records map[string]memRecord, id string, fields Fields) error {
	rec, ok := records[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields.Clone() {
		rec.fields[k] = v
	}
	rec.updatedAt = m.timestamp()
	records[id] = rec
	return nil
}

func remove(records map[string]memRecord, id string) error {
	if _, ok := records[id]; !ok {
		return ErrNotFound
	}
	delete(records, id)
	return nil
}

func getRecord(records map[string]memRecord, id string) (Record, error) {
	rec, ok := records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec.export(id), nil
}

func listRecords(records map[string]memRecord, filter *Filter) []Record {
	out := make([]Record, 0, len(records))
	for id, rec := range records {
		if !filter.Matches(rec.fields) {
			continue
		}
		out = append(out, rec.export(id))
	}
	sortRecords(out)
	return out
}

func (r memRecord) export(id string) Record {
	return Record{
		ID:        id,
		Fields:    r.fields.Clone(),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
}

// sortRecords orders records by id, which is creation order for UUIDv7 ids.
func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
