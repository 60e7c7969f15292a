package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"transaction-management/migrations"
	"transaction-management/pkg/config"
	"transaction-management/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: migrate up|down|drop")
		os.Exit(2)
	}
	command := os.Args[len(os.Args)-1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	db, err := sql.Open("postgres", cfg.Database.MigrationURL())
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		appLogger.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := newMigrator(db)
	if err != nil {
		appLogger.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "drop":
		err = m.Drop()
	default:
		appLogger.Fatal("Unknown command", zap.String("command", command))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		appLogger.Warn("Failed to read schema version", zap.Error(verr))
	}
	appLogger.Info("Migration finished",
		zap.String("command", command),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}
