// Package lifecycle runs every record mutation through a fixed pipeline:
// normalize, defaults, structural checks, business checks, derivation,
// uniqueness pre-check, persist, publish.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-estateflow/internal/events"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity is a persistable record that the controller can copy and normalize.
type Entity[T any] interface {
	store.Record
	Clone() T
	Normalize()
	Touch(now time.Time)
	MarkDeleted()
}

// Defaulter fills unset fields on create.
type Defaulter interface {
	ApplyDefaults(now time.Time)
}

// Tenanted records carry their owning company in lifecycle events.
type Tenanted interface {
	TenantID() string
}

// Validator checks business and referential rules. existing is the zero
// value on create. A returned error means a lookup failed, not that the
// candidate is invalid.
type Validator[T any] interface {
	Validate(ctx context.Context, candidate, existing T, lookups validation.Lookups) (validation.Violations, error)
}

type ValidatorFunc[T any] func(ctx context.Context, candidate, existing T, lookups validation.Lookups) (validation.Violations, error)

func (f ValidatorFunc[T]) Validate(ctx context.Context, candidate, existing T, lookups validation.Lookups) (validation.Violations, error) {
	return f(ctx, candidate, existing, lookups)
}

// Deriver computes system-managed fields after validation succeeds.
type Deriver[T any] interface {
	Derive(ctx context.Context, record T, changed FieldSet, now time.Time) error
}

type Controller[T Entity[T]] struct {
	kind      store.Kind
	store     store.Store
	newRecord func() T
	validator Validator[T]
	deriver   Deriver[T]
	publisher events.Publisher
	cache     *RecordCache
	now       func() time.Time
	logger    *zap.Logger
}

type Option[T Entity[T]] func(*Controller[T])

func WithDeriver[T Entity[T]](d Deriver[T]) Option[T] {
	return func(c *Controller[T]) { c.deriver = d }
}

func WithPublisher[T Entity[T]](p events.Publisher) Option[T] {
	return func(c *Controller[T]) {
		if p != nil {
			c.publisher = p
		}
	}
}

func WithCache[T Entity[T]](cache *RecordCache) Option[T] {
	return func(c *Controller[T]) { c.cache = cache }
}

func WithClock[T Entity[T]](now func() time.Time) Option[T] {
	return func(c *Controller[T]) { c.now = now }
}

func WithLogger[T Entity[T]](l *zap.Logger) Option[T] {
	return func(c *Controller[T]) {
		if l != nil {
			c.logger = l.Named("lifecycle.controller")
		}
	}
}

// Deps are the collaborators every entity controller shares.
type Deps struct {
	Publisher events.Publisher
	Cache     *RecordCache
	Clock     func() time.Time
	Logger    *zap.Logger
}

func OptionsFrom[T Entity[T]](d Deps) []Option[T] {
	opts := []Option[T]{WithPublisher[T](d.Publisher), WithLogger[T](d.Logger)}
	if d.Cache != nil {
		opts = append(opts, WithCache[T](d.Cache))
	}
	if d.Clock != nil {
		opts = append(opts, WithClock[T](d.Clock))
	}
	return opts
}

func NewController[T Entity[T]](
	kind store.Kind,
	st store.Store,
	newRecord func() T,
	validator Validator[T],
	opts ...Option[T],
) *Controller[T] {
	c := &Controller[T]{
		kind:      kind,
		store:     st,
		newRecord: newRecord,
		validator: validator,
		publisher: events.NewNoopPublisher(),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    zap.L().Named("lifecycle.controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create persists a new record. Any id on candidate is ignored; the store
// assigns one.
func (c *Controller[T]) Create(ctx context.Context, candidate T, changed FieldSet) (T, error) {
	rec := candidate.Clone()
	rec.SetID(uuid.Nil)

	var zero T
	return c.commit(ctx, rec, zero, changed, events.RecordCreated)
}

// Update loads the live record, lets apply copy the changed fields onto a
// copy of it, and runs the full pipeline on the merged result.
func (c *Controller[T]) Update(ctx context.Context, id uuid.UUID, changed FieldSet, apply func(T) error) (T, error) {
	var zero T

	existing, err := c.Load(ctx, id)
	if err != nil {
		return zero, err
	}

	rec := existing.Clone()
	if err := apply(rec); err != nil {
		return zero, err
	}
	rec.SetID(id)

	return c.commit(ctx, rec, existing, changed, events.RecordUpdated)
}

// Get returns a live record; soft-deleted records are not found.
func (c *Controller[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	if c.cache == nil {
		return c.Load(ctx, id)
	}

	rec := c.newRecord()
	err := c.cache.Fetch(ctx, c.kind, id, rec, func(ctx context.Context) (any, error) {
		return c.Load(ctx, id)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// SoftDelete flags the record deleted. It is not re-validated.
func (c *Controller[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	existing, err := c.Load(ctx, id)
	if err != nil {
		return err
	}

	rec := existing.Clone()
	rec.MarkDeleted()
	rec.Touch(c.now())

	if _, err := c.store.Save(ctx, c.kind, rec); err != nil {
		return c.mapStoreError(ctx, "delete", err)
	}

	c.invalidate(ctx, id)
	c.publish(ctx, events.RecordDeleted, rec)
	return nil
}

// Load reads a live record from the store, bypassing the cache.
func (c *Controller[T]) Load(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	rec := c.newRecord()
	if err := c.store.Load(ctx, c.kind, id, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return zero, apperror.ErrNotFound
		}
		return zero, c.mapStoreError(ctx, "load", err)
	}
	if rec.IsSoftDeleted() {
		return zero, apperror.ErrNotFound
	}
	return rec, nil
}

func (c *Controller[T]) commit(ctx context.Context, rec, existing T, changed FieldSet, eventType string) (T, error) {
	var zero T
	log := contextutil.GetLogger(ctx, c.logger).With(
		zap.String("kind", string(c.kind)),
		zap.String("event_type", eventType),
	)
	now := c.now()

	rec.Normalize()
	if eventType == events.RecordCreated {
		if d, ok := any(rec).(Defaulter); ok {
			d.ApplyDefaults(now)
		}
	}

	if violations := validation.StructAt(rec, now); !violations.Empty() {
		log.Debug("structural validation failed", zap.Strings("rules", violations.Rules()))
		return zero, violations.StructuralError()
	}

	violations, err := c.validator.Validate(ctx, rec, existing, c.store)
	if err != nil {
		log.Error("reference lookup failed", zap.Error(err))
		return zero, apperror.Dependency("reference lookup", err)
	}
	if !violations.Empty() {
		log.Debug("business validation failed", zap.Strings("rules", violations.Rules()))
		return zero, violations.BusinessError()
	}

	if c.deriver != nil {
		if err := c.deriver.Derive(ctx, rec, changed, now); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return zero, err
			}
			log.Error("derive fields failed", zap.Error(err))
			return zero, apperror.Dependency("derive fields", err)
		}
	}

	if err := c.checkUnique(ctx, rec); err != nil {
		return zero, err
	}

	rec.Touch(now)
	if _, err := c.store.Save(ctx, c.kind, rec); err != nil {
		return zero, c.mapStoreError(ctx, "save", err)
	}

	c.invalidate(ctx, rec.GetID())
	c.publish(ctx, eventType, rec)

	log.Info("record persisted", zap.String("id", rec.GetID().String()))
	return rec, nil
}

// checkUnique is an early exit only; the store constraint decides races.
func (c *Controller[T]) checkUnique(ctx context.Context, rec T) error {
	for _, f := range rec.UniqueFields() {
		if f.Value == "" {
			continue
		}
		id, found, err := c.store.FindByUniqueKey(ctx, c.kind, f.Column, f.Value)
		if err != nil {
			return c.mapStoreError(ctx, "uniqueness check", err)
		}
		if found && id != rec.GetID() {
			return apperror.Conflict(f.Field, nil)
		}
	}
	return nil
}

func (c *Controller[T]) mapStoreError(ctx context.Context, op string, err error) error {
	var uv *store.UniqueViolationError
	if errors.As(err, &uv) {
		return apperror.Conflict(uv.Field, err)
	}

	contextutil.GetLogger(ctx, c.logger).Error("store operation failed",
		zap.String("kind", string(c.kind)),
		zap.String("operation", op),
		zap.Error(err),
	)
	return apperror.Dependency(string(c.kind)+" "+op, err)
}

func (c *Controller[T]) invalidate(ctx context.Context, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	c.cache.Invalidate(ctx, c.kind, id)
}

// publish runs after the write is durable; failures are logged, not
// returned, so the caller never retries a mutation that already happened.
func (c *Controller[T]) publish(ctx context.Context, eventType string, rec T) {
	payload, err := json.Marshal(rec)
	if err != nil {
		c.logger.Error("marshal lifecycle event failed", zap.Error(err))
		return
	}

	meta := contextutil.ExtractMetadata(ctx)
	event := events.RecordEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		RequestID:  meta.RequestID,
		Kind:       string(c.kind),
		RecordID:   rec.GetID().String(),
		ActorID:    meta.UserID,
		OccurredAt: c.now(),
		Record:     payload,
	}
	if t, ok := any(rec).(Tenanted); ok {
		event.CompanyID = t.TenantID()
	}

	if err := c.publisher.Publish(ctx, event); err != nil {
		contextutil.GetLogger(ctx, c.logger).Warn("publish lifecycle event failed",
			zap.String("event_id", event.EventID),
			zap.String("record_id", event.RecordID),
			zap.Error(err),
		)
	}
}
