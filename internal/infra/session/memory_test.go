package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/auth"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, auth.Session{ID: "s1"}, time.Hour))

	live, err := s.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, live)

	now = now.Add(time.Hour)
	live, err = s.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, live, "expired")

	require.NoError(t, s.Save(ctx, auth.Session{ID: "s2"}, time.Hour))
	require.NoError(t, s.Delete(ctx, "s2"))
	live, err = s.Exists(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, live, "revoked")
}
