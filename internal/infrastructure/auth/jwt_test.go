package auth

import (
	"testing"
	"time"

	"github.com/bizops/ledger/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "identity"})
}

func sign(t *testing.T, claims *Claims, secret string, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Issuer:    "identity",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    "u-42",
		Username:  "priya",
		Roles:     []string{"accountant"},
		TokenType: TokenTypeAccess,
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.IssueAccessToken(IssueInput{UserID: "u-1", Username: "arun", Roles: []string{"approver"}})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "arun", claims.Actor())
	assert.True(t, claims.HasRole("approver"))
	assert.False(t, claims.HasRole("admin"))
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.GetRemainingTTL(), 14*time.Minute)
}

func TestJWTService_ValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not.a.jwt" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, validClaims(), "another-secret-of-sufficient-length", jwt.SigningMethodHS256)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong algorithm",
			token: func(t *testing.T) string {
				return sign(t, validClaims(), testSecret, jwt.SigningMethodHS512)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Issuer = "someone-else"
				return sign(t, c, testSecret, jwt.SigningMethodHS256)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return sign(t, c, testSecret, jwt.SigningMethodHS256)
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				c := validClaims()
				c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
				return sign(t, c, testSecret, jwt.SigningMethodHS256)
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "refresh token",
			token: func(t *testing.T) string {
				c := validClaims()
				c.TokenType = "refresh"
				return sign(t, c, testSecret, jwt.SigningMethodHS256)
			},
			wantErr: ErrInvalidTokenType,
		},
		{
			name: "missing user",
			token: func(t *testing.T) string {
				c := validClaims()
				c.UserID = ""
				return sign(t, c, testSecret, jwt.SigningMethodHS256)
			},
			wantErr: ErrMissingUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(tt.token(t))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_Actor(t *testing.T) {
	assert.Equal(t, "priya", (&Claims{UserID: "u-1", Username: "priya"}).Actor())
	assert.Equal(t, "u-1", (&Claims{UserID: "u-1"}).Actor())
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).GetRemainingTTL())

	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	assert.Zero(t, expired.GetRemainingTTL())
}
