package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

type memoryRecord struct {
	record  Record
	deleted bool
	unique  []UniqueField
}

// MemoryStore keeps deep copies so callers never share state with it.
// Unique fields are enforced under the write lock, making it as
// authoritative as a database constraint.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Kind]map[uuid.UUID]memoryRecord
	index   map[Kind]map[string]map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[Kind]map[uuid.UUID]memoryRecord),
		index:   make(map[Kind]map[string]map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Exists(_ context.Context, kind Kind, id uuid.UUID) (bool, error) {
	if _, err := Table(kind); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[kind][id]
	return ok && !rec.deleted, nil
}

func (s *MemoryStore) FindByUniqueKey(_ context.Context, kind Kind, column, value string) (uuid.UUID, bool, error) {
	if !isUniqueColumn(kind, column) {
		return uuid.Nil, false, errUnknownColumn(kind, column)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.index[kind][column][value]
	return id, ok, nil
}

func (s *MemoryStore) Load(_ context.Context, kind Kind, id uuid.UUID, dest Record) error {
	s.mu.RLock()
	rec, ok := s.records[kind][id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return copyInto(dest, rec.record.CloneRecord())
}

// copyInto assigns src to the struct dest points at. Both must be pointers
// to the same record type.
func copyInto(dest, src Record) error {
	dv := reflect.ValueOf(dest)
	sv := reflect.ValueOf(src)
	if dv.Kind() != reflect.Pointer || dv.IsNil() || dv.Type() != sv.Type() {
		return fmt.Errorf("store: cannot load %T into %T", src, dest)
	}
	dv.Elem().Set(sv.Elem())
	return nil
}

func (s *MemoryStore) Save(_ context.Context, kind Kind, record Record) (uuid.UUID, error) {
	if _, err := Table(kind); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.GetID()
	isNew := id == uuid.Nil
	if isNew {
		id = uuid.New()
	}

	fields := record.UniqueFields()
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if owner, taken := s.index[kind][f.Column][f.Value]; taken && owner != id {
			return uuid.Nil, &UniqueViolationError{Kind: kind, Field: f.Field}
		}
	}

	if isNew {
		record.SetID(id)
	}

	if s.records[kind] == nil {
		s.records[kind] = make(map[uuid.UUID]memoryRecord)
	}
	if prev, ok := s.records[kind][id]; ok {
		for _, f := range prev.unique {
			delete(s.index[kind][f.Column], f.Value)
		}
	}

	kept := make([]UniqueField, 0, len(fields))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if s.index[kind] == nil {
			s.index[kind] = make(map[string]map[string]uuid.UUID)
		}
		if s.index[kind][f.Column] == nil {
			s.index[kind][f.Column] = make(map[string]uuid.UUID)
		}
		s.index[kind][f.Column][f.Value] = id
		kept = append(kept, f)
	}

	s.records[kind][id] = memoryRecord{
		record:  record.CloneRecord(),
		deleted: record.IsSoftDeleted(),
		unique:  kept,
	}
	return id, nil
}
