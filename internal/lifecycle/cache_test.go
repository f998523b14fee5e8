package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-estateflow/internal/store"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCache_Fetch(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	key := RecordCacheKey(store.KindProject, id)
	rec := &gadget{ID: id, Code: "A", Name: "Tower", CreatedAt: fixedNow, UpdatedAt: fixedNow}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	t.Run("miss loads and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewRecordCache(rdb, time.Minute)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, data, time.Minute).SetVal("OK")

		loads := 0
		var got gadget
		err := cache.Fetch(ctx, store.KindProject, id, &got, func(context.Context) (any, error) {
			loads++
			return rec, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, loads)
		assert.Equal(t, "Tower", got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewRecordCache(rdb, time.Minute)

		mock.ExpectGet(key).SetVal(string(data))

		var got gadget
		err := cache.Fetch(ctx, store.KindProject, id, &got, func(context.Context) (any, error) {
			t.Fatal("store must not be called on a hit")
			return nil, nil
		})

		require.NoError(t, err)
		assert.Equal(t, "A", got.Code)
	})

	t.Run("redis failure falls back to the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewRecordCache(rdb, time.Minute)

		mock.ExpectGet(key).SetErr(errors.New("redis down"))
		mock.ExpectSet(key, data, time.Minute).SetErr(errors.New("redis down"))

		var got gadget
		err := cache.Fetch(ctx, store.KindProject, id, &got, func(context.Context) (any, error) {
			return rec, nil
		})

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("load error is returned and nothing cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewRecordCache(rdb, time.Minute)

		mock.ExpectGet(key).RedisNil()

		loadErr := errors.New("not found")
		var got gadget
		err := cache.Fetch(ctx, store.KindProject, id, &got, func(context.Context) (any, error) {
			return nil, loadErr
		})

		assert.ErrorIs(t, err, loadErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestController_GetInvalidatesOnMutation(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(true)

	c := newGadgetController(store.NewMemoryStore(), WithCache[*gadget](NewRecordCache(rdb, time.Minute)))

	// Create invalidates the new id; the key is unknown until Save assigns it.
	mock.Regexp().ExpectDel(RecordCacheKeyPrefix + "project:.*").SetVal(0)
	created, err := c.Create(ctx, &gadget{Code: "A", Name: "Tower"}, AllFields())
	require.NoError(t, err)

	key := RecordCacheKey(store.KindProject, created.ID)
	mock.ExpectDel(key).SetVal(1)
	require.NoError(t, c.SoftDelete(ctx, created.ID))

	mock.ExpectGet(key).RedisNil()
	_, err = c.Get(ctx, created.ID)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
