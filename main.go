package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"finance-ledger/internal/config"
	"finance-ledger/internal/database"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations and seed the reserved transfer categories
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.SeedReservedCategories(db); err != nil {
		log.Fatalf("seed reserved categories: %v", err)
	}

	// resolve reserved categories up front so a broken deployment fails
	// here instead of on the first transfer
	reserved, err := ledger.LoadReservedCategories(db)
	if err != nil {
		log.Fatalf("load reserved categories: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db, reserved)

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
