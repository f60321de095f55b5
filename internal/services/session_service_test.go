package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(zap.NewNop())

	created := svc.Create()
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Empty(t, created.SelectedCategory)
	assert.Zero(t, created.RefreshToken)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	selected, err := svc.SelectCategory(created.ID, "Toys")
	require.NoError(t, err)
	assert.Equal(t, "Toys", selected.SelectedCategory)
	assert.NotZero(t, selected.RefreshToken, "selection must advance the refresh token")
}

func TestSessionNotFound(t *testing.T) {
	svc := NewSessionService(zap.NewNop())

	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SelectCategory(uuid.New(), "Toys")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
