package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormStore persists records in PostgreSQL through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the tables for the given models.
func (s *GormStore) AutoMigrate(models ...Record) error {
	dst := make([]any, len(models))
	for i, m := range models {
		dst[i] = m
	}
	return s.db.AutoMigrate(dst...)
}

// Exists treats soft-deleted rows as absent.
func (s *GormStore) Exists(ctx context.Context, kind Kind, id uuid.UUID) (bool, error) {
	table, err := Table(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = s.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// FindByUniqueKey includes soft-deleted rows, matching the unique index.
func (s *GormStore) FindByUniqueKey(ctx context.Context, kind Kind, column, value string) (uuid.UUID, bool, error) {
	table, err := Table(kind)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !isUniqueColumn(kind, column) {
		return uuid.Nil, false, errUnknownColumn(kind, column)
	}

	var ids []uuid.UUID
	err = s.db.WithContext(ctx).
		Table(table).
		Where(column+" = ?", value).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return uuid.Nil, false, err
	}
	if len(ids) == 0 {
		return uuid.Nil, false, nil
	}
	return ids[0], true, nil
}

func (s *GormStore) Load(ctx context.Context, kind Kind, id uuid.UUID, dest Record) error {
	table, err := Table(kind)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Table(table).Where("id = ?", id).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) Save(ctx context.Context, kind Kind, record Record) (uuid.UUID, error) {
	if _, err := Table(kind); err != nil {
		return uuid.Nil, err
	}

	db := s.db.WithContext(ctx)
	var err error
	if record.GetID() == uuid.Nil {
		record.SetID(uuid.New())
		err = db.Create(record).Error
		if err != nil {
			record.SetID(uuid.Nil)
		}
	} else {
		err = db.Save(record).Error
	}
	if err != nil {
		return uuid.Nil, mapGormError(err)
	}
	return record.GetID(), nil
}

func mapGormError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if v, ok := violationFor(pgErr.ConstraintName, err); ok {
			return v
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		for kind, cols := range uniqueColumns {
			for col := range cols {
				name := ConstraintName(kind, col)
				if strings.Contains(errMsg, name) {
					v, _ := violationFor(name, err)
					return v
				}
			}
		}
	}

	return err
}
