package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists each kind in its own collection keyed by _id.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) collection(kind Kind) (*mongo.Collection, error) {
	name, err := Table(kind)
	if err != nil {
		return nil, err
	}
	return s.db.Collection(name), nil
}

// EnsureIndexes creates the unique indexes every backend relies on. Indexes
// are sparse so unset optional references do not collide.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for kind, cols := range uniqueColumns {
		if len(cols) == 0 {
			continue
		}
		coll, err := s.collection(kind)
		if err != nil {
			return err
		}

		models := make([]mongo.IndexModel, 0, len(cols))
		for col := range cols {
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: col, Value: 1}},
				Options: options.Index().
					SetName(ConstraintName(kind, col)).
					SetUnique(true).
					SetSparse(true),
			})
		}
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, kind Kind, id uuid.UUID) (bool, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return false, err
	}

	n, err := coll.CountDocuments(ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		options.Count().SetLimit(1),
	)
	return n > 0, err
}

func (s *MongoStore) FindByUniqueKey(ctx context.Context, kind Kind, column, value string) (uuid.UUID, bool, error) {
	if !isUniqueColumn(kind, column) {
		return uuid.Nil, false, errUnknownColumn(kind, column)
	}
	coll, err := s.collection(kind)
	if err != nil {
		return uuid.Nil, false, err
	}

	var doc struct {
		ID uuid.UUID `bson:"_id"`
	}
	err = coll.FindOne(ctx,
		uniqueKeyFilter(column, value),
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return doc.ID, true, nil
}

// uuidColumns hold uuid.UUID fields, which the driver stores as binary.
var uuidColumns = map[string]bool{
	"user_id":             true,
	"employee_profile_id": true,
}

func uniqueKeyFilter(column, value string) bson.M {
	if uuidColumns[column] {
		if id, err := uuid.Parse(value); err == nil {
			return bson.M{column: id}
		}
	}
	return bson.M{column: value}
}

func (s *MongoStore) Load(ctx context.Context, kind Kind, id uuid.UUID, dest Record) error {
	coll, err := s.collection(kind)
	if err != nil {
		return err
	}

	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Save(ctx context.Context, kind Kind, record Record) (uuid.UUID, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return uuid.Nil, err
	}

	if record.GetID() == uuid.Nil {
		record.SetID(uuid.New())
		if _, err = coll.InsertOne(ctx, record); err != nil {
			record.SetID(uuid.Nil)
		}
	} else {
		_, err = coll.ReplaceOne(ctx,
			bson.M{"_id": record.GetID()},
			record,
			options.Replace().SetUpsert(true),
		)
	}
	if err != nil {
		return uuid.Nil, mapMongoError(err)
	}
	return record.GetID(), nil
}

func mapMongoError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	for kind, cols := range uniqueColumns {
		for col := range cols {
			name := ConstraintName(kind, col)
			if strings.Contains(msg, name) {
				v, _ := violationFor(name, err)
				return v
			}
		}
	}
	return err
}
