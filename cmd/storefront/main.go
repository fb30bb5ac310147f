package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/delivery"
	grpcHandler "storefront/internal/delivery/grpc"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const (
	healthInterval  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := setupLogger()
	cfg := config.LoadConfig(logger)
	applyLogSettings(logger, cfg)
	logger.Info("Starting Storefront Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var probes []grpcHandler.Probe

	store, sqlDB := openDocumentStore(ctx, cfg, logger)
	if sqlDB != nil {
		defer closeDB(sqlDB, logger)
		probes = append(probes, sqlDB.PingContext)
	} else if cfg.StoreBackend == config.BackendFirestore {
		probes = append(probes, func(ctx context.Context) error {
			_, err := store.Get(ctx, domain.CollectionStoreInfo, domain.DocStoreInfo)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		})
	}

	carts, redisClient := openCartStore(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
		probes = append(probes, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// --- Dependency Injection ---
	categoryRepo := repository.NewCategoryRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	storeRepo := repository.NewStoreRepository(store, logger)
	logger.Info("Repositories initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)
	storeUseCase := usecase.NewStoreUseCase(storeRepo, logger)
	storefrontUseCase := usecase.NewStorefrontUseCase(categoryRepo, productRepo, storeUseCase, logger)
	cartUseCase := usecase.NewCartUseCase(carts, productRepo, storeUseCase, usecase.CartSettings{
		TTL:              cfg.CartTTL,
		ShippingFee:      cfg.ShippingFee,
		FallbackWhatsApp: cfg.StoreWhatsApp,
	}, logger)
	authUseCase := usecase.NewAuthUseCase(usecase.AuthSettings{
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.JWTTTL,
	}, logger)
	logger.Info("Use cases initialized.")

	healthHandler := grpcHandler.NewHealthHandler(joinProbes(probes), logger)

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.CORSOrigins))

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	storeHandler := delivery.NewStoreHandler(storeUseCase, logger)
	authHandler := delivery.NewAuthHandler(authUseCase, logger)
	logger.Info("Handlers initialized.")

	delivery.NewStorefrontHandler(storefrontUseCase, cartUseCase, logger).RegisterRoutes(router)
	delivery.NewHealthHandler(healthHandler.Check, logger).RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	api := router.Group("/api")
	categoryHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	storeHandler.RegisterRoutes(api)
	delivery.NewCartHandler(cartUseCase, logger).RegisterRoutes(api)

	admin := router.Group("/admin",
		middleware.JWTMiddleware(cfg.JWTSecret, logger),
		middleware.AdminOnly(cfg.AdminEmail, logger),
	)
	categoryHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	storeHandler.RegisterAdminRoutes(admin)
	authHandler.RegisterAdminRoutes(admin)
	logger.Info("Routes registered.")

	// --- Start Servers ---
	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthHandler.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		healthHandler.Run(gctx, healthInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Warn("Shutdown signal received...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcStopped := make(chan bool, 1)
		go func() { grpcStopped <- grpcHandler.Shutdown(shutdownCtx, grpcServer) }()
		httpErr := httpServer.Shutdown(shutdownCtx)
		if <-grpcStopped {
			logger.Info("gRPC server gracefully stopped.")
		} else {
			logger.Warn("gRPC server did not drain in time and was stopped.")
		}
		return httpErr
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Storefront Service stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Storefront Service shut down gracefully.")
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

func applyLogSettings(logger *logrus.Logger, cfg *config.Config) {
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL '%s', using default 'info'. Error: %v", cfg.LogLevel, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if logLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Infof("Log level set to: %s", logLevel.String())
}

func openDocumentStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (domain.DocumentStore, *sql.DB) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := repository.EnsureDocumentsSchema(ctx, database); err != nil {
			logger.Fatalf("Failed to prepare documents table: %v", err)
		}
		logger.Info("Database connection established.")
		return repository.NewPostgresDocumentStore(database, logger), database

	case config.BackendFirestore:
		store, err := repository.NewFirestoreDocumentStore(repository.FirestoreOptions{
			BaseURL:              cfg.FirestoreBaseURL,
			ProjectID:            cfg.FirestoreProjectID,
			APIKey:               cfg.FirestoreAPIKey,
			MaxRequestsPerSecond: cfg.FirestoreRPS,
		}, logger)
		if err != nil {
			logger.Fatalf("Failed to set up Firestore client: %v", err)
		}
		logger.Infof("Firestore client initialized for project %s", cfg.FirestoreProjectID)
		return store, nil

	default:
		logger.Warn("Using in-memory document store; data is lost on restart")
		return repository.NewMemoryDocumentStore(), nil
	}
}

func openCartStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (domain.CartStore, *redis.Client) {
	if cfg.CartBackend != config.BackendRedis {
		logger.Info("Using in-memory cart sessions")
		return session.NewMemoryCartStore(), nil
	}

	client, err := db.ConnectRedis(ctx, db.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	logger.Infof("Redis cart sessions at %s", cfg.RedisAddr)
	return session.NewRedisCartStore(client, logger), client
}

func joinProbes(probes []grpcHandler.Probe) grpcHandler.Probe {
	return func(ctx context.Context) error {
		var errs []error
		for _, probe := range probes {
			errs = append(errs, probe(ctx))
		}
		return errors.Join(errs...)
	}
}

func closeDB(database *sql.DB, logger *logrus.Logger) {
	if err := database.Close(); err != nil {
		logger.Errorf("Error closing database connection: %v", err)
		return
	}
	logger.Info("Database connection closed.")
}
