package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Karann1101/sahyadri-guardian/internal/config"
	"github.com/Karann1101/sahyadri-guardian/internal/database"
	"github.com/Karann1101/sahyadri-guardian/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development (e.g. SG_JWT_SECRET)
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.SeedTrails(db); err != nil {
		log.Fatalf("seed trails: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
