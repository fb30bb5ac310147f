package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

func newAuthUseCase(t *testing.T) AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-Pass"), bcrypt.MinCost)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	return NewAuthUseCase(AuthSettings{
		AdminEmail:        "Owner@Shop.test",
		AdminPasswordHash: string(hash),
		JWTSecret:         "jwt-secret",
		TokenTTL:          time.Hour,
	}, logger)
}

func TestAuthUseCase_LoginIssuesToken(t *testing.T) {
	uc := newAuthUseCase(t)

	token, err := uc.Login(context.Background(), " owner@shop.test ", "s3cret-Pass")
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.test", token.Email)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("jwt-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "owner@shop.test", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, token.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestAuthUseCase_LoginRejects(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	cases := map[string][2]string{
		"wrong password": {"owner@shop.test", "nope"},
		"other user":     {"someone@shop.test", "s3cret-Pass"},
		"empty":          {"", ""},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Login(ctx, creds[0], creds[1])
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
