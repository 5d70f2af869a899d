package services

import (
	"testing"

	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWishlistService(t *testing.T) *WishlistService {
	t.Helper()
	logger, err := logging.NewChanneledLogger(nil)
	require.NoError(t, err)
	return NewWishlistService(logger)
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	svc := newTestWishlistService(t)

	set, member := svc.Toggle("mkaya", 4)
	assert.True(t, member)
	assert.Equal(t, []int{4}, set.IDs())

	set, member = svc.Toggle("mkaya", 4)
	assert.False(t, member)
	assert.Equal(t, 0, set.Len())
}

func TestWishlistIsPerUser(t *testing.T) {
	svc := newTestWishlistService(t)

	svc.Toggle("mkaya", 4)
	svc.Toggle("jdoe", 11)

	assert.Equal(t, []int{4}, svc.Get("mkaya").IDs())
	assert.Equal(t, []int{11}, svc.Get("jdoe").IDs())
}

func TestWishlistClearDropsSet(t *testing.T) {
	svc := newTestWishlistService(t)

	svc.Toggle("mkaya", 4)
	svc.Toggle("mkaya", 11)
	require.Equal(t, 2, svc.Get("mkaya").Len())

	svc.Clear("mkaya")
	assert.Equal(t, 0, svc.Get("mkaya").Len())
}
