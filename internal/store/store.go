// Package store is the persistence boundary used by the record lifecycle.
// Callers only depend on Store; the backing engine is chosen at wiring time.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCompany         Kind = "company"
	KindUser            Kind = "user"
	KindEmployeeProfile Kind = "employee_profile"
	KindProject         Kind = "project"
)

var tables = map[Kind]string{
	KindCompany:         "companies",
	KindUser:            "users",
	KindEmployeeProfile: "employee_profiles",
	KindProject:         "projects",
}

// uniqueColumns maps, per kind, every unique column to the json field name
// reported in conflicts.
var uniqueColumns = map[Kind]map[string]string{
	KindCompany: {},
	KindUser: {
		"email":               "email",
		"employee_profile_id": "employeeProfileId",
	},
	KindEmployeeProfile: {
		"user_id":       "userId",
		"employee_code": "employeeCode",
	},
	KindProject: {
		"code": "code",
	},
}

// Table returns the table (or collection) name holding records of kind.
func Table(kind Kind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("store: unknown kind %q", kind)
	}
	return t, nil
}

// ConstraintName is the unique index name for kind/column in every backend.
func ConstraintName(kind Kind, column string) string {
	return "uq_" + tables[kind] + "_" + column
}

// UniqueField is one value that must be unique among records of a kind.
// An empty Value means the field is unset and is not constrained.
type UniqueField struct {
	Field  string
	Column string
	Value  string
}

// Record is a persistable entity.
type Record interface {
	Kind() Kind
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	UniqueFields() []UniqueField
	IsSoftDeleted() bool
	// CloneRecord returns a deep copy sharing no memory with the receiver.
	CloneRecord() Record
}

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock

// Store is the entity store façade. Save assigns a new id when the record
// has none and returns the persisted id. Its unique constraints are the
// final arbiter; a rejected write yields *UniqueViolationError.
type Store interface {
	Exists(ctx context.Context, kind Kind, id uuid.UUID) (bool, error)
	FindByUniqueKey(ctx context.Context, kind Kind, column, value string) (uuid.UUID, bool, error)
	Load(ctx context.Context, kind Kind, id uuid.UUID, dest Record) error
	Save(ctx context.Context, kind Kind, record Record) (uuid.UUID, error)
}

var ErrNotFound = errors.New("store: record not found")

type UniqueViolationError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("store: duplicate %s for %s", e.Field, e.Kind)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// violationFor resolves a backend constraint/index name to the field it guards.
func violationFor(constraint string, err error) (*UniqueViolationError, bool) {
	for kind, cols := range uniqueColumns {
		for col, field := range cols {
			if ConstraintName(kind, col) == constraint {
				return &UniqueViolationError{Kind: kind, Field: field, Err: err}, true
			}
		}
	}
	return nil, false
}

func isUniqueColumn(kind Kind, column string) bool {
	_, ok := uniqueColumns[kind][column]
	return ok
}

func errUnknownColumn(kind Kind, column string) error {
	return fmt.Errorf("store: %q is not a unique column of %s", column, kind)
}
