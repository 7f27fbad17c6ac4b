package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/yoockh/telepatia/config"
	"github.com/yoockh/telepatia/internal/api/handlers"
	"github.com/yoockh/telepatia/internal/api/routes"
	"github.com/yoockh/telepatia/internal/cache"
	"github.com/yoockh/telepatia/internal/logger"
	"github.com/yoockh/telepatia/internal/metrics"
	"github.com/yoockh/telepatia/internal/processor"
	"github.com/yoockh/telepatia/internal/providers/llm"
	"github.com/yoockh/telepatia/internal/providers/stt"
	"github.com/yoockh/telepatia/internal/redact"
	mongorepo "github.com/yoockh/telepatia/internal/repositories/mongo"
	"github.com/yoockh/telepatia/internal/services"
	"github.com/yoockh/telepatia/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	redact.SetEnabled(cfg.LogRedact)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init MongoDB
	mongoClient, err := config.InitMongo(ctx, cfg.MongoURI)
	if mongoClient == nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	if err != nil {
		log.WithError(err).Warn("MongoDB not reachable at startup, continuing")
	} else {
		log.Info("MongoDB connected")
	}
	db := mongoClient.Database(cfg.MongoDB)
	if err := config.EnsureMongoIndexes(ctx, db); err != nil {
		log.WithError(err).Warn("ensuring MongoDB indexes failed")
	}

	// Init Redis (optional)
	var extractionCache cache.ExtractionStore
	if cfg.RedisAddr != "" {
		rdb, err := config.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, extraction cache disabled")
		} else {
			defer rdb.Close()
			extractionCache = cache.NewRedisStore(rdb, cache.ExtractionNamespace, cfg.ExtractionCacheTTL)
			log.Info("Redis connected")
		}
	}

	var googleOpts []option.ClientOption
	if cfg.GoogleAPIKey != "" {
		googleOpts = append(googleOpts, option.WithAPIKey(cfg.GoogleAPIKey))
	}

	// Audio archive (optional)
	var archive storage.Uploader
	if cfg.AudioBucket != "" {
		up, err := storage.NewGCSUploader(ctx, cfg.AudioBucket, googleOpts...)
		if err != nil {
			log.WithError(err).Warn("GCS unavailable, audio archiving disabled")
		} else {
			defer up.Close()
			archive = up
		}
	}

	transcriber := stt.NewTranscriber(sttFactory(cfg, googleOpts), cfg.STTLanguage, cfg.CollaboratorTimeout, log)
	defer transcriber.Close()

	generator := llm.NewGenerator(func(ctx context.Context) (llm.Provider, error) {
		return llm.NewVertexGemini(ctx, cfg.GoogleProject, cfg.GoogleLocation, cfg.LLMModel, googleOpts...)
	}, cfg.CollaboratorTimeout, log)
	defer generator.Close()

	if cfg.WarmProviders {
		if err := transcriber.Warm(ctx); err != nil {
			log.WithError(err).Error("speech-to-text provider failed to initialize")
		}
		if err := generator.Warm(ctx); err != nil {
			log.WithError(err).Error("generative model failed to initialize")
		}
	}

	m := metrics.DefaultMetrics

	messageSvc := services.NewMessageService(services.MessageDeps{
		Processor:   processor.New(log),
		Messages:    mongorepo.NewMessageRepo(db),
		Transcriber: transcriber,
		OpaqueAudio: cfg.STTProvider == config.STTProviderGemini,
		Archive:     archive,
		Metrics:     m,
		Log:         log,
	})
	extractionSvc := services.NewExtractionService(generator, extractionCache, m, log)
	healthSvc := services.NewHealthService(mongorepo.NewPinger(mongoClient), log)

	router := routes.NewRouter(routes.Deps{
		Health:     handlers.NewHealthHandler(healthSvc, cfg.AppName, cfg.AppVersion),
		Message:    handlers.NewMessageHandler(messageSvc, cfg.MaxAudioBytes),
		Extraction: handlers.NewExtractionHandler(extractionSvc),
		Log:        log,
		Metrics:    m,
		JWTSecret:  cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2*cfg.CollaboratorTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": cfg.AppVersion,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Warn("MongoDB disconnect failed")
	}
}

func sttFactory(cfg config.Settings, opts []option.ClientOption) func(ctx context.Context) (stt.Provider, error) {
	if cfg.STTProvider == config.STTProviderGemini {
		return func(ctx context.Context) (stt.Provider, error) {
			return stt.NewGeminiAudio(ctx, cfg.GoogleProject, cfg.GoogleLocation, cfg.STTModel, opts...)
		}
	}
	return func(ctx context.Context) (stt.Provider, error) {
		return stt.NewGoogleSpeech(ctx, opts...)
	}
}
