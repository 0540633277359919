package monitoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
)

func TestTracingProvider_Disabled(t *testing.T) {
	tp, err := NewTracingProvider(config.AppConfig{Name: "nutrimate"}, config.MonitoringConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.Enabled())

	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("ignored"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
