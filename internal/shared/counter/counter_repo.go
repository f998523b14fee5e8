// Package counter hands out per-company sequence numbers.
package counter

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

// Counter is the row behind the postgres repository.
type Counter struct {
	CompanyID   string    `gorm:"type:uuid;primaryKey"`
	CounterType string    `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64     `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Counter) TableName() string {
	return "company_counters"
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert so concurrent callers never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("company_counters")}
}

func (r *mongoRepository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	filter := bson.M{"_id": companyID + ":" + counterType}
	update := bson.M{
		"$inc": bson.M{"last_value": int64(1)},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc struct {
		LastValue int64 `bson:"last_value"`
	}
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, err
	}
	return doc.LastValue, nil
}

type memoryRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryRepository() Repository {
	return &memoryRepository{values: make(map[string]int64)}
}

func (r *memoryRepository) GetNextValue(_ context.Context, companyID string, counterType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := companyID + ":" + counterType
	r.values[key]++
	return r.values[key], nil
}
