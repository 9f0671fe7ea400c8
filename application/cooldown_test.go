package application

import (
	"testing"
	"time"

	"lotobot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownGuard(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	guard := NewCooldownGuard(map[string]time.Duration{
		ActionDraw:  2 * time.Second,
		ActionCheck: 2 * time.Second,
	})
	guard.now = func() time.Time { return now }

	require.NoError(t, guard.Allow(1, 100, ActionDraw))

	err := guard.Allow(1, 100, ActionDraw)
	assert.ErrorIs(t, err, entities.ErrRateLimited)
	assert.Contains(t, err.Error(), "2s")

	// other action, player and chat are tracked separately
	assert.NoError(t, guard.Allow(1, 100, ActionCheck))
	assert.NoError(t, guard.Allow(1, 200, ActionDraw))
	assert.NoError(t, guard.Allow(2, 100, ActionDraw))

	now = now.Add(1500 * time.Millisecond)
	err = guard.Allow(1, 100, ActionDraw)
	assert.ErrorIs(t, err, entities.ErrRateLimited)
	assert.Contains(t, err.Error(), "1s")

	now = now.Add(500 * time.Millisecond)
	assert.NoError(t, guard.Allow(1, 100, ActionDraw))
}

func TestCooldownGuard_ZeroWindowDisables(t *testing.T) {
	t.Parallel()

	guard := NewCooldownGuard(map[string]time.Duration{ActionDraw: 0})
	for range 5 {
		assert.NoError(t, guard.Allow(1, 1, ActionDraw))
	}
	assert.NoError(t, guard.Allow(1, 1, "unknown"))
}
