package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "bloglist", time.Hour)
	tok, exp, err := tm.Issue("user-123", "root")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "root", claims.Username)
	assert.NotNil(t, claims.IssuedAt)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("right-secret", "bloglist", time.Hour)

	other := NewTokenManager("wrong-secret", "bloglist", time.Hour)
	wrongSig, _, err := other.Issue("u1", "a")
	require.NoError(t, err)

	otherIssuer := NewTokenManager("right-secret", "someone-else", time.Hour)
	wrongIss, _, err := otherIssuer.Issue("u1", "a")
	require.NoError(t, err)

	expiredTM := NewTokenManager("right-secret", "bloglist", -time.Minute)
	expired, _, err := expiredTM.Issue("u1", "a")
	require.NoError(t, err)

	noUID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bloglist",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "bloglist"},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bloglist",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"wrong signature", wrongSig},
		{"wrong issuer", wrongIss},
		{"expired", expired},
		{"missing user id", noUID},
		{"missing expiry", noExp},
		{"other algorithm", hs512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
