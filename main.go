package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"therapy-directory/config"
	"therapy-directory/internal/auth"
	"therapy-directory/internal/handler"
	"therapy-directory/internal/logger"
	"therapy-directory/internal/middleware"
	"therapy-directory/internal/model"
	"therapy-directory/internal/scheduler"
	"therapy-directory/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Log.Fatalw("failed to create data directory", "error", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalw("failed to connect database", "error", err)
	}

	db.AutoMigrate(
		&model.User{},
		&model.Therapist{},
		&model.Specialty{},
		&model.TherapistSpecialty{},
		&model.Review{},
		&model.BlogCategory{},
		&model.BlogPost{},
		&model.Service{},
		&model.PromptConfig{},
		&model.SummaryCache{},
		&model.AppConfig{},
	)

	seedDefaults(db, cfg)

	reviewSvc := service.NewReviewService(db)
	promptSvc := service.NewPromptService(db)
	cacheSvc := service.NewCacheService(db)
	llmSvc := service.NewLLMService(db)
	summarySvc := service.NewSummaryService(reviewSvc, promptSvc, cacheSvc, llmSvc,
		time.Duration(cfg.AI.CacheTTLDays)*24*time.Hour, cfg.AI.SingleFlight)
	assistantSvc := service.NewAssistantService(llmSvc)
	statusSvc := service.NewStatusService(db, cacheSvc)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	sched := scheduler.NewScheduler(cacheSvc, reviewSvc, cfg.Cron)
	sched.Start()
	defer sched.Stop()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	middleware.Setup(r)

	h := handler.NewHandler(db, reviewSvc, promptSvc, summarySvc, assistantSvc, llmSvc, statusSvc, tokens)
	h.SetScheduler(sched)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: r,
	}

	go func() {
		logger.Log.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalw("server shutdown failed", "error", err)
	}

	logger.Log.Info("server stopped")
}

// seedDefaults creates the LLM provider settings and the bootstrap admin
// account when missing.
func seedDefaults(db *gorm.DB, cfg *config.Config) {
	defaults := map[string]string{
		model.ConfigLLMApiURL: "https://api.openai.com/v1",
		model.ConfigLLMModel:  "gpt-4o-mini",
	}

	for key, value := range defaults {
		db.Where("key = ?", key).FirstOrCreate(&model.AppConfig{Key: key, Value: value})
	}

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
		if err != nil {
			logger.Log.Errorw("failed to hash admin password", "error", err)
			return
		}
		db.Where("email = ?", cfg.Auth.AdminEmail).FirstOrCreate(&model.User{
			Email:        cfg.Auth.AdminEmail,
			PasswordHash: hash,
			Name:         "Administrator",
			Role:         model.RoleAdmin,
		})
	}
}
