package lifecycle

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-estateflow/internal/events"
	eventsmock "go-estateflow/internal/events/mock"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/store"
	storemock "go-estateflow/internal/store/mock"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type gadget struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code" validate:"required"`
	Name      string     `json:"name" validate:"required,min=2"`
	Status    string     `json:"status"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	Secret    string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"isDeleted"`
}

func (g *gadget) Kind() store.Kind { return store.KindProject }
func (g *gadget) GetID() uuid.UUID { return g.ID }
func (g *gadget) SetID(id uuid.UUID) { g.ID = id }
func (g *gadget) IsSoftDeleted() bool { return g.IsDeleted }
func (g *gadget) MarkDeleted() { g.IsDeleted = true }
func (g *gadget) Normalize() { g.Code = strings.ToUpper(strings.TrimSpace(g.Code)) }
func (g *gadget) ApplyDefaults(time.Time) {
	if g.Status == "" {
		g.Status = "DRAFT"
	}
}

func (g *gadget) Clone() *gadget {
	c := *g
	if g.OwnerID != nil {
		id := *g.OwnerID
		c.OwnerID = &id
	}
	return &c
}

func (g *gadget) CloneRecord() store.Record { return g.Clone() }

func (g *gadget) Touch(now time.Time) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
}

func (g *gadget) UniqueFields() []store.UniqueField {
	return []store.UniqueField{{Field: "code", Column: "code", Value: g.Code}}
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// ownerMustExist is a validator with one referential rule.
func ownerMustExist(ctx context.Context, g, _ *gadget, lookups validation.Lookups) (validation.Violations, error) {
	var v validation.Violations
	err := validation.RequireRef(ctx, lookups, &v, store.KindUser, g.OwnerID, "gadget.owner.exists", "ownerId")
	return v, err
}

func newGadgetController(st store.Store, opts ...Option[*gadget]) *Controller[*gadget] {
	opts = append([]Option[*gadget]{WithClock[*gadget](func() time.Time { return fixedNow })}, opts...)
	return NewController(
		store.KindProject,
		st,
		func() *gadget { return &gadget{} },
		ValidatorFunc[*gadget](ownerMustExist),
		opts...,
	)
}

func TestController_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := eventsmock.NewMockPublisher(ctrl)
		c := newGadgetController(store.NewMemoryStore(), WithPublisher[*gadget](pub))

		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e events.RecordEvent) error {
				assert.Equal(t, events.RecordCreated, e.EventType)
				assert.Equal(t, "project", e.Kind)
				assert.NotContains(t, string(e.Record), "top-secret")
				return nil
			})

		in := &gadget{ID: uuid.New(), Code: " prj-1 ", Name: "Tower", Secret: "top-secret"}
		out, err := c.Create(ctx, in, AllFields())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.ID)
		assert.NotEqual(t, in.ID, out.ID, "caller supplied id must be ignored")
		assert.Equal(t, "PRJ-1", out.Code)
		assert.Equal(t, "DRAFT", out.Status)
		assert.Equal(t, fixedNow, out.CreatedAt)
		assert.Equal(t, fixedNow, out.UpdatedAt)
		assert.Equal(t, " prj-1 ", in.Code, "candidate must not be mutated")
	})

	t.Run("structural failure reports every field and skips business rules", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := storemock.NewMockStore(ctrl)
		c := newGadgetController(st)

		owner := uuid.New()
		_, err := c.Create(ctx, &gadget{Name: "x", OwnerID: &owner}, AllFields())

		assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))
		v := validation.ViolationsOf(err)
		assert.ElementsMatch(t, []string{"structural.required", "structural.min"}, v.Rules())
		assert.False(t, apperror.IsRetryable(err))
	})

	t.Run("business failure", func(t *testing.T) {
		c := newGadgetController(store.NewMemoryStore())

		owner := uuid.New()
		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower", OwnerID: &owner}, AllFields())

		assert.Equal(t, apperror.CodeBusinessRule, apperror.CodeOf(err))
		assert.True(t, validation.ViolationsOf(err).Has("gadget.owner.exists"))
	})

	t.Run("lookup failure is a dependency error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := storemock.NewMockStore(ctrl)
		c := newGadgetController(st)

		st.EXPECT().Exists(gomock.Any(), store.KindUser, gomock.Any()).Return(false, errors.New("connection refused"))

		owner := uuid.New()
		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower", OwnerID: &owner}, AllFields())

		assert.Equal(t, apperror.CodeDependencyFailure, apperror.CodeOf(err))
		assert.True(t, apperror.IsRetryable(err))
	})

	t.Run("pre-check conflict", func(t *testing.T) {
		st := store.NewMemoryStore()
		c := newGadgetController(st)

		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())
		require.NoError(t, err)

		_, err = c.Create(ctx, &gadget{Code: "a", Name: "Other"}, AllFields())

		assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
		assert.Equal(t, map[string]string{"field": "code"}, apperror.ToHTTP(err).Details)
	})

	t.Run("store constraint conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := storemock.NewMockStore(ctrl)
		c := newGadgetController(st)

		st.EXPECT().FindByUniqueKey(gomock.Any(), store.KindProject, "code", "A").Return(uuid.Nil, false, nil)
		st.EXPECT().Save(gomock.Any(), store.KindProject, gomock.Any()).
			Return(uuid.Nil, &store.UniqueViolationError{Kind: store.KindProject, Field: "code"})

		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())

		assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
		assert.False(t, apperror.IsRetryable(err))
	})

	t.Run("store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := storemock.NewMockStore(ctrl)
		c := newGadgetController(st)

		st.EXPECT().FindByUniqueKey(gomock.Any(), store.KindProject, "code", "A").Return(uuid.Nil, false, nil)
		st.EXPECT().Save(gomock.Any(), store.KindProject, gomock.Any()).Return(uuid.Nil, errors.New("timeout"))

		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())

		assert.Equal(t, apperror.CodeDependencyFailure, apperror.CodeOf(err))
		assert.True(t, apperror.IsRetryable(err))
	})

	t.Run("publish failure does not fail the mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := eventsmock.NewMockPublisher(ctrl)
		c := newGadgetController(store.NewMemoryStore(), WithPublisher[*gadget](pub))

		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())

		assert.NoError(t, err)
	})
}

type recordingDeriver struct {
	calls   int
	changed FieldSet
	err     error
}

func (d *recordingDeriver) Derive(_ context.Context, g *gadget, changed FieldSet, _ time.Time) error {
	d.calls++
	d.changed = changed
	if d.err != nil {
		return d.err
	}
	if changed.Has("secret") {
		g.Secret = "derived:" + g.Secret
	}
	return nil
}

func TestController_Deriver(t *testing.T) {
	ctx := context.Background()

	t.Run("runs after validation with the changed set", func(t *testing.T) {
		d := &recordingDeriver{}
		c := newGadgetController(store.NewMemoryStore(), WithDeriver[*gadget](d))

		out, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower", Secret: "s"}, AllFields())

		require.NoError(t, err)
		assert.Equal(t, 1, d.calls)
		assert.Equal(t, "derived:s", out.Secret)
	})

	t.Run("not reached when validation fails", func(t *testing.T) {
		d := &recordingDeriver{}
		c := newGadgetController(store.NewMemoryStore(), WithDeriver[*gadget](d))

		_, err := c.Create(ctx, &gadget{Name: "Tower"}, AllFields())

		assert.Error(t, err)
		assert.Zero(t, d.calls)
	})

	t.Run("plain error becomes dependency error", func(t *testing.T) {
		d := &recordingDeriver{err: errors.New("rng failure")}
		c := newGadgetController(store.NewMemoryStore(), WithDeriver[*gadget](d))

		_, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())

		assert.Equal(t, apperror.CodeDependencyFailure, apperror.CodeOf(err))
	})
}

func TestController_Update(t *testing.T) {
	ctx := context.Background()
	later := fixedNow.Add(time.Hour)

	st := store.NewMemoryStore()
	c := newGadgetController(st)
	created, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())
	require.NoError(t, err)

	c.now = func() time.Time { return later }

	t.Run("merges changes onto the stored record", func(t *testing.T) {
		d := &recordingDeriver{}
		c.deriver = d
		defer func() { c.deriver = nil }()

		out, err := c.Update(ctx, created.ID, Fields("name"), func(g *gadget) error {
			g.Name = "Tower B"
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, created.ID, out.ID)
		assert.Equal(t, "A", out.Code)
		assert.Equal(t, "Tower B", out.Name)
		assert.Equal(t, fixedNow, out.CreatedAt)
		assert.Equal(t, later, out.UpdatedAt)
		assert.True(t, d.changed.Has("name"))
		assert.False(t, d.changed.Has("secret"))
	})

	t.Run("merged record is fully validated", func(t *testing.T) {
		_, err := c.Update(ctx, created.ID, Fields("name"), func(g *gadget) error {
			g.Name = ""
			return nil
		})

		assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))
	})

	t.Run("keeping its own unique value is not a conflict", func(t *testing.T) {
		_, err := c.Update(ctx, created.ID, Fields("code"), func(g *gadget) error {
			g.Code = "a"
			return nil
		})

		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := c.Update(ctx, uuid.New(), Fields("name"), func(*gadget) error { return nil })

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("apply error is returned as is", func(t *testing.T) {
		applyErr := apperror.InvalidField("name")
		_, err := c.Update(ctx, created.ID, Fields("name"), func(*gadget) error { return applyErr })

		assert.Same(t, applyErr, err)
	})
}

func TestController_SoftDelete(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := newGadgetController(st)

	created, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())
	require.NoError(t, err)

	require.NoError(t, c.SoftDelete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	ok, err := st.Exists(ctx, store.KindProject, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, c.SoftDelete(ctx, created.ID), apperror.ErrNotFound)

	_, err = c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err), "deleted records keep their unique keys")
}
