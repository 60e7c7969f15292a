package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"transaction-management/internal/repository"
	"transaction-management/internal/service"
	"transaction-management/pkg/cache"
	"transaction-management/pkg/config"
	"transaction-management/pkg/logger"
	"transaction-management/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	defaultFile := filepath.Join("cmd", "seed", "transactions.csv")
	csvPath := flag.String("file", defaultFile, "CSV file to import")
	force := flag.Bool("force", false, "import even if the file was already seeded")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(postgres.NewPoolAcquirer(db), appLogger)
	tzService := service.NewTimeZoneService(service.NewHTTPClient(cfg.TimeZone.Timeout), &cfg.TimeZone, cache.Nop{}, appLogger)
	importService := service.NewImportService(txRepo, tzService, appLogger)

	cacheFile := filepath.Join(filepath.Dir(*csvPath), ".seed_cache.json")
	if err := seedFromCSV(ctx, *csvPath, cacheFile, *force, importService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// SeededFile records a CSV file that was imported.
type SeededFile struct {
	FilePath string    `json:"file_path"`
	FileHash string    `json:"file_hash"`
	Rows     int       `json:"rows"`
	SeededAt time.Time `json:"seeded_at"`
}

// CacheData is keyed by file path.
type CacheData struct {
	SeededFiles map[string]SeededFile `json:"seeded_files"`
}

func loadCache(cacheFile string) (*CacheData, error) {
	seeded := &CacheData{
		SeededFiles: make(map[string]SeededFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return seeded, nil
	}

	if err := json.Unmarshal(data, seeded); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if seeded.SeededFiles == nil {
		seeded.SeededFiles = make(map[string]SeededFile)
	}

	return seeded, nil
}

func saveCache(cacheFile string, seeded *CacheData) error {
	data, err := json.MarshalIndent(seeded, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

type importer interface {
	Import(ctx context.Context, file io.Reader) (int, error)
}

// seedFromCSV imports csvPath unless an identical copy was seeded before.
func seedFromCSV(ctx context.Context, csvPath, cacheFile string, force bool, imp importer, logger *zap.Logger) error {
	hash, err := calculateFileHash(csvPath)
	if err != nil {
		return err
	}

	seeded, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Ignoring unreadable seed cache", zap.Error(err))
		seeded = &CacheData{SeededFiles: make(map[string]SeededFile)}
	}

	if prev, ok := seeded.SeededFiles[csvPath]; ok && prev.FileHash == hash && !force {
		logger.Info("File already seeded, skipping",
			zap.String("file", csvPath),
			zap.Time("seeded_at", prev.SeededAt),
		)
		return nil
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	rows, err := imp.Import(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", csvPath, err)
	}
	logger.Info("Seeded transactions", zap.String("file", csvPath), zap.Int("rows", rows))

	seeded.SeededFiles[csvPath] = SeededFile{
		FilePath: csvPath,
		FileHash: hash,
		Rows:     rows,
		SeededAt: time.Now().UTC(),
	}
	if err := saveCache(cacheFile, seeded); err != nil {
		logger.Warn("Failed to save seed cache", zap.Error(err))
	}

	return nil
}
