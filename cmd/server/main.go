package main

import (
	"fmt"
	"os"

	"prodtrack/internal/config"
	"prodtrack/internal/database"
	"prodtrack/internal/logger"
	"prodtrack/internal/seed"
	"prodtrack/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.AppEnv == "production" || cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBDSN, log)
	if err != nil {
		log.Fatal("failed to connect to db", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate", "error", err)
	}

	bootstrap := seed.Bootstrap{
		AccountName:  cfg.AdminAccountName,
		Password:     cfg.AdminPassword,
		Organization: cfg.AdminOrganization,
	}
	if err := seed.EnsureBootstrap(db, bootstrap, log); err != nil {
		log.Fatal("failed to create bootstrap admin", "error", err)
	}
	if cfg.SeedFile != "" {
		if err := seed.ApplyFile(db, cfg.SeedFile, log); err != nil {
			log.Fatal("failed to apply seed file", "path", cfg.SeedFile, "error", err)
		}
	}

	r := server.NewRouter(cfg, db, log)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", "addr", addr, "env", cfg.AppEnv)
	if err := r.Run(addr); err != nil {
		log.Fatal("server error", "error", err)
	}
}
