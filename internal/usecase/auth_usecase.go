package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthSettings struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

type AuthToken struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*AuthToken, error)
}

type authUseCase struct {
	settings AuthSettings
	log      *logrus.Logger
	now      func() time.Time
}

func NewAuthUseCase(settings AuthSettings, logger *logrus.Logger) AuthUseCase {
	settings.AdminEmail = strings.ToLower(strings.TrimSpace(settings.AdminEmail))
	return &authUseCase{
		settings: settings,
		log:      logger,
		now:      time.Now,
	}
}

// Login checks the single admin identity and issues an HS256 token whose
// subject is the email.
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if email == "" || password == "" {
		uc.log.Warn("Use Case: Auth failed - empty email or password")
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if uc.settings.AdminEmail == "" || email != uc.settings.AdminEmail {
		uc.log.Warnf("Use Case: Auth failed - %s is not the admin", email)
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	err := bcrypt.CompareHashAndPassword([]byte(uc.settings.AdminPasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for %s", email)
			return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: Error comparing password hash for %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	issued := uc.now()
	expires := issued.Add(uc.settings.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.settings.JWTSecret))
	if err != nil {
		uc.log.Errorf("Use Case: Failed to sign token for %s: %v", email, err)
		return nil, fmt.Errorf("could not issue token: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for %s", email)
	return &AuthToken{Token: signed, Email: email, ExpiresAt: expires}, nil
}
