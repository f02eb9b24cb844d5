package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/SkillSharing_Backend/internal/config"
	"github.com/Dias221467/SkillSharing_Backend/internal/database"
	"github.com/Dias221467/SkillSharing_Backend/internal/handlers"
	"github.com/Dias221467/SkillSharing_Backend/internal/jobs"
	"github.com/Dias221467/SkillSharing_Backend/internal/repository"
	"github.com/Dias221467/SkillSharing_Backend/internal/repository/memory"
	"github.com/Dias221467/SkillSharing_Backend/internal/scheduler"
	"github.com/Dias221467/SkillSharing_Backend/internal/services"
	"github.com/Dias221467/SkillSharing_Backend/pkg/logger"
	"github.com/Dias221467/SkillSharing_Backend/pkg/metrics"
	"github.com/Dias221467/SkillSharing_Backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 15 * time.Second

type planStore interface {
	services.PlanRepository
	jobs.PlanLookup
}

type stepStore interface {
	services.StepRepository
	jobs.StepRefSource
}

// stores is the storage backend picked by STORE_DRIVER.
type stores struct {
	plans         planStore
	steps         stepStore
	notifications services.NotificationRepository
	close         func(ctx context.Context) error
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		return &stores{
			plans:         memory.NewPlanStore(),
			steps:         memory.NewStepStore(),
			notifications: memory.NewNotificationStore(),
			close:         func(context.Context) error { return nil },
		}, nil
	case "mongo":
		db, err := database.ConnectDB(cfg)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		return &stores{
			plans:         repository.NewLearningPlanRepository(db),
			steps:         repository.NewLearningStepRepository(db),
			notifications: repository.NewNotificationRepository(db),
			close:         disconnect(db),
		}, nil
	default:
		return nil, errors.New("unknown STORE_DRIVER " + cfg.StoreDriver + ", expected mongo or memory")
	}
}

func disconnect(db *mongo.Database) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.Client().Disconnect(ctx)
	}
}

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	st, err := openStores(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Storage initialization error")
	}

	m := metrics.New()

	// --- Services ---
	planService := services.NewLearningPlanService(st.plans, st.steps)
	notificationService := services.NewNotificationService(st.notifications)

	// --- Handlers ---
	planHandler := handlers.NewLearningPlanHandler(planService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// --- Background jobs ---
	auditor := jobs.NewStepAuditor(st.steps, st.plans, m)
	auditCron, err := scheduler.StartAuditCron(cfg.AuditSchedule, auditor)
	if err != nil {
		logger.Log.WithError(err).Fatal("Scheduler initialization error")
	}

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.MetricsMiddleware(m))

	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	handlers.RegisterRoutes(router, planHandler, notificationHandler, middleware.AuthMiddleware(cfg.JWTSecret))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("HTTP server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Log.WithField("signal", sig.String()).Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if auditCron != nil {
		<-auditCron.Stop().Done()
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := st.close(ctx); err != nil {
		logger.Log.WithError(err).Error("Failed to close storage")
	}
	logger.Log.Info("Server stopped")
}
