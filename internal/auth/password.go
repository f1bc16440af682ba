package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/bloglist-backend/internal/worker"
)

// BcryptHasher is the password digest capability. Digests are computed on a
// bounded worker pool so concurrent logins cannot saturate every CPU.
type BcryptHasher struct {
	cost int
	pool *worker.Pool
}

func NewBcryptHasher(cost int, pool *worker.Pool) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, pool: pool}
}

func (h *BcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	var (
		b   []byte
		err error
	)
	if perr := h.pool.Do(ctx, func() {
		b, err = bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	}); perr != nil {
		return "", perr
	}
	return string(b), err
}

// Verify reports whether plain matches digest. A cancelled context counts as
// a mismatch.
func (h *BcryptHasher) Verify(ctx context.Context, plain, digest string) bool {
	var err error
	if perr := h.pool.Do(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	}); perr != nil {
		return false
	}
	return err == nil
}
