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
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	"github.com/BruksfildServices01/turnolibre/internal/auth"
	"github.com/BruksfildServices01/turnolibre/internal/config"
	dbpkg "github.com/BruksfildServices01/turnolibre/internal/db"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/infra/assets"
	"github.com/BruksfildServices01/turnolibre/internal/infra/events"
	"github.com/BruksfildServices01/turnolibre/internal/infra/memstore"
	"github.com/BruksfildServices01/turnolibre/internal/infra/repository"
	"github.com/BruksfildServices01/turnolibre/internal/infra/session"
	"github.com/BruksfildServices01/turnolibre/internal/logging"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
	"github.com/BruksfildServices01/turnolibre/internal/routes"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

const auditMemoryEntries = 5000

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	timezone.SetDefault(cfg.DefaultTimezone)

	log.WithFields(logrus.Fields{
		"store":    cfg.StoreDriver,
		"redis":    cfg.RedisURL != "",
		"kafka":    len(cfg.KafkaBrokers) > 0,
		"assets":   cfg.AssetsEnabled(),
		"timezone": cfg.DefaultTimezone,
	}).Info("starting turnolibre")

	m := metrics.New()

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		st          store.Store
		auditSinks  []audit.Sink
		auditReader audit.Reader
	)

	if cfg.UseMemoryStore() {
		log.Warn("using in-memory store, data is lost on restart")
		st = memstore.New()

		mem := audit.NewMemoryLog(auditMemoryEntries)
		auditSinks = append(auditSinks, mem)
		auditReader = mem
	} else {
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("database unavailable")
		}
		st = repository.NewStoreGormRepository(db, m)

		dbLog := audit.New(db)
		auditSinks = append(auditSinks, dbLog)
		auditReader = dbLog
	}

	if len(cfg.KafkaBrokers) > 0 {
		sink := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		defer sink.Close()
		auditSinks = append(auditSinks, sink)
		log.WithField("topic", cfg.KafkaAuditTopic).Info("publishing audit events to kafka")
	}

	dispatcher := audit.NewDispatcher(log, auditSinks...)

	// ======================================================
	// SESSIONS
	// ======================================================
	var sessions auth.SessionStore = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(context.Background(), cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, sessions kept in memory")
		} else {
			defer rs.Close()
			sessions = rs
		}
	}

	authenticator := auth.NewAuthenticator(st, sessions, auth.Options{
		Secret:             cfg.JWTSecret,
		TTL:                cfg.SessionTTL,
		SuperAdminUser:     cfg.SuperAdminUser,
		SuperAdminPassword: cfg.SuperAdminPassword,
	})

	// ======================================================
	// ASSETS
	// ======================================================
	var uploader assets.Uploader
	if cfg.AssetsEnabled() {
		uploader = assets.NewS3Uploader(assets.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Store:         st,
		Authenticator: authenticator,
		Audit:         dispatcher,
		AuditReader:   auditReader,
		Metrics:       m,
		Uploader:      uploader,
		Log:           log,

		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}

	dispatcher.Close()
	log.Info("server stopped")
}
