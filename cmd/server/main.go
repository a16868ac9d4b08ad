package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/advisor"
	"github.com/kaushik360/counsy/internal/api"
	"github.com/kaushik360/counsy/internal/config"
	"github.com/kaushik360/counsy/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var repos *storage.Repositories
	switch cfg.DBType {
	case "postgres":
		repos, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		repos, err = storage.NewFileRepositories(cfg.DataDir, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Close()

	adv := advisor.New(cfg, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api.RegisterRoutes(r, api.NewApp(logger, repos, adv))

	logger.Infof("Counsy server running on :%s (storage=%s, ai=%v)", cfg.Port, cfg.DBType, cfg.AIEnabled())
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
