package jobs_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/infrastructure/jobs"
)

type fakeSweeper struct {
	calls atomic.Int64
}

func (f *fakeSweeper) SweepExpired() int {
	f.calls.Add(1)
	return 0
}

func TestJanitor(t *testing.T) {
	t.Run("sweeps on the configured interval", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		janitor := jobs.NewJanitor(sweeper, config.CacheConfig{CleanupInterval: time.Second}, zap.NewNop())

		require.NoError(t, janitor.Start())
		defer janitor.Stop()

		require.Eventually(t, func() bool {
			return sweeper.calls.Load() >= 1
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("does nothing when disabled", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		janitor := jobs.NewJanitor(sweeper, config.CacheConfig{}, zap.NewNop())

		require.NoError(t, janitor.Start())
		janitor.Stop()

		assert.Zero(t, sweeper.calls.Load())
	})
}
