package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mikombo-backend/internal/api"
	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/cache"
	"mikombo-backend/internal/config"
	"mikombo-backend/internal/db"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/notifications"
	"mikombo-backend/internal/storage"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected")
		cacheStore = redisCache
	} else {
		logger.Info("token revocations kept in memory")
	}

	tokens := &auth.Manager{
		Secret:      []byte(cfg.JWTSecret),
		TTL:         cfg.TokenTTL,
		Issuer:      "mikombo-backend",
		Revocations: auth.NewRevocations(cacheStore),
	}

	var blobs storage.BlobStore
	uploadsDir := ""
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			logger.Error("s3 storage setup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("photos stored in s3", slog.String("bucket", cfg.S3Bucket))
		blobs = s3Store
	} else {
		localStore, err := storage.NewLocalStore(cfg.UploadsDir, "/uploads")
		if err != nil {
			logger.Error("uploads dir setup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("photos stored on disk", slog.String("dir", cfg.UploadsDir))
		blobs = localStore
		uploadsDir = cfg.UploadsDir
	}

	var sender notifications.Sender
	if mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); mailer != nil {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
		sender = mailer
	} else {
		logger.Info("brevo mailer disabled")
	}
	dispatcher := notifications.NewDispatcher(sender, logger)

	handler := api.NewRouter(api.Options{
		Logger:    logger,
		Validator: validation.New(),
		Tokens:    tokens,
		Stores: api.Stores{
			Users:        store.NewMongoCollection[models.User](cols.Users),
			Products:     store.NewMongoCollection[models.Product](cols.Products),
			Animals:      store.NewMongoCollection[models.Animal](cols.Animals),
			Cultures:     store.NewMongoCollection[models.Culture](cols.Cultures),
			Reservations: store.NewMongoCollection[models.Reservation](cols.Reservations),
			Orders:       store.NewMongoCollection[models.Order](cols.Orders),
			Messages:     store.NewMongoCollection[models.ContactMessage](cols.Messages),
		},
		Photos:           storage.NewPhotos(blobs, cfg.UploadMaxWidth),
		Notifier:         dispatcher,
		Location:         cfg.Timezone,
		CORSOrigins:      cfg.CORSOrigins,
		RateLimitAuth:    cfg.RateLimitAuth,
		RateLimitContact: cfg.RateLimitContact,
		RateLimitWindow:  time.Duration(cfg.RateLimitWindowSec) * time.Second,
		UploadsDir:       uploadsDir,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	// Let pending confirmation emails finish before the process exits.
	dispatcher.Wait()
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
