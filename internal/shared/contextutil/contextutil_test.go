package contextutil_test

import (
	"context"
	"testing"

	"go-estateflow/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithCompanyID(ctx, "company-1")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "rid-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "company-1", md.CompanyID)
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back to no-op", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})

	t.Run("prefers scoped logger", func(t *testing.T) {
		scoped := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), scoped)

		assert.Same(t, scoped, contextutil.GetLogger(ctx, zap.NewNop()))
	})
}
