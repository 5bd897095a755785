package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanjibot/pkg/models"
)

func TestSessionResultRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionResultRepository(newTestDB(t))

	first := &models.SessionResult{
		SessionID:       uuid.NewString(),
		ChatID:          42,
		Mode:            "learning",
		TotalPrompts:    10,
		CorrectPrompts:  10,
		FullySuccessful: true,
		StartedAt:       testNow.Add(-5 * time.Minute),
		FinishedAt:      testNow.Add(-time.Minute),
	}
	second := &models.SessionResult{
		SessionID:      uuid.NewString(),
		ChatID:         42,
		Mode:           "review",
		TotalPrompts:   4,
		CorrectPrompts: 3,
		StartedAt:      testNow.Add(-30 * time.Second),
		FinishedAt:     testNow,
	}
	other := &models.SessionResult{
		SessionID:  uuid.NewString(),
		ChatID:     7,
		Mode:       "review",
		StartedAt:  testNow,
		FinishedAt: testNow,
	}
	for _, r := range []*models.SessionResult{first, second, other} {
		require.NoError(t, repo.Create(ctx, r))
		assert.NotZero(t, r.ID)
	}

	results, err := repo.GetByChatID(ctx, 42, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.SessionID, results[0].SessionID)
	assert.Equal(t, first.SessionID, results[1].SessionID)
	assert.Equal(t, 3, results[0].CorrectPrompts)
	assert.True(t, results[1].FullySuccessful)

	results, err = repo.GetByChatID(ctx, 42, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	n, err := repo.CountSuccessful(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
