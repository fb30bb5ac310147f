package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
	BackendRedis     = "redis"
)

type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT"  default:":8080"`
	GrpcPort  string `envconfig:"GRPC_PORT"  default:":50051"` // health service
	LogLevel  string `envconfig:"LOG_LEVEL"  default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	FirestoreProjectID string `envconfig:"FIRESTORE_PROJECT_ID"`
	FirestoreAPIKey    string `envconfig:"FIRESTORE_API_KEY"`
	FirestoreBaseURL   string `envconfig:"FIRESTORE_BASE_URL" default:"https://firestore.googleapis.com/v1"`
	FirestoreRPS       int    `envconfig:"FIRESTORE_RPS"      default:"10"`

	CartBackend   string        `envconfig:"CART_BACKEND"   default:"memory"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"     default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB"       default:"0"`
	CartTTL       time.Duration `envconfig:"CART_TTL"       default:"72h"`
	ShippingFee   float64       `envconfig:"SHIPPING_FEE"   default:"0"`
	StoreWhatsApp string        `envconfig:"STORE_WHATSAPP"`

	AdminEmail        string        `envconfig:"ADMIN_EMAIL"         required:"true"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `envconfig:"JWT_SECRET"          required:"true"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL"             default:"12h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}
		if err := config.Validate(); err != nil {
			logger.Fatalf("Configuration error: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s, StoreBackend=%s, CartBackend=%s",
			config.HTTPPort, config.GrpcPort, config.LogLevel, config.StoreBackend, config.CartBackend)
		if config.AdminPasswordHash == "" {
			logger.Warn("Configuration loaded: ADMIN_PASSWORD_HASH is not set, admin login is disabled")
		}
	})
	return &config
}
