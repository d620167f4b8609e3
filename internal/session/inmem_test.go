package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful-escapades/internal/models"
)

func TestInMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	s := New()
	s.AppendExchange("hello", "{}", time.Now())
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Len(t, got.History, 1)

	// Изменения полученной копии не попадают в хранилище без Save
	got.Score = 10
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Score)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))
}
