package services

import "context"

// PasswordHasher is the digest capability used for registration and login.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, digest string) bool
}
