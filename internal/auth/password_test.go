package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/bloglist-backend/internal/worker"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	p := worker.NewPool(2)
	defer p.Stop()
	h := NewBcryptHasher(bcrypt.MinCost, p)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "sekret")
	require.NoError(t, err)
	assert.NotEqual(t, "sekret", digest)

	assert.True(t, h.Verify(ctx, "sekret", digest))
	assert.False(t, h.Verify(ctx, "wrong", digest))
	assert.False(t, h.Verify(ctx, "sekret", "not-a-digest"))
}

func TestBcryptHasher_CancelledContext(t *testing.T) {
	p := worker.NewPool(1)
	defer p.Stop()
	h := NewBcryptHasher(bcrypt.MinCost, p)

	digest, err := h.Hash(context.Background(), "sekret")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, h.Verify(ctx, "sekret", digest))
	_, err = h.Hash(ctx, "sekret")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99, nil).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0, nil).cost)
}
