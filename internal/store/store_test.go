package store

import (
	"github.com/google/uuid"
)

// account is a minimal record used to exercise every backend.
type account struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Email     string    `gorm:"column:email" bson:"email"`
	Verified  *bool     `gorm:"column:is_email_verified" bson:"is_email_verified,omitempty"`
	IsDeleted bool      `gorm:"column:is_deleted" bson:"is_deleted"`
}

func (account) TableName() string { return "users" }

func (a *account) Kind() Kind { return KindUser }
func (a *account) GetID() uuid.UUID { return a.ID }
func (a *account) SetID(id uuid.UUID) { a.ID = id }
func (a *account) IsSoftDeleted() bool { return a.IsDeleted }

func (a *account) CloneRecord() Record {
	cp := *a
	if a.Verified != nil {
		v := *a.Verified
		cp.Verified = &v
	}
	return &cp
}

func (a *account) UniqueFields() []UniqueField {
	return []UniqueField{{Field: "email", Column: "email", Value: a.Email}}
}
