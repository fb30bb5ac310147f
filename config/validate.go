package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the settings envconfig cannot express on its own.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store backend"))
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			errs = append(errs, errors.New("FIRESTORE_PROJECT_ID is required for the firestore store backend"))
		}
		if c.FirestoreRPS < 1 {
			errs = append(errs, fmt.Errorf("FIRESTORE_RPS must be positive, got %d", c.FirestoreRPS))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.CartBackend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown CART_BACKEND %q", c.CartBackend))
	}

	if strings.TrimSpace(c.AdminEmail) == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL cannot be empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET cannot be empty"))
	}
	if c.CartTTL <= 0 {
		errs = append(errs, fmt.Errorf("CART_TTL must be positive, got %s", c.CartTTL))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL))
	}
	if c.ShippingFee < 0 {
		errs = append(errs, fmt.Errorf("SHIPPING_FEE cannot be negative, got %v", c.ShippingFee))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
