package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	_ "time/tzdata"

	"transaction-management/internal/models"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// csvTransaction is one uploaded row, mapped by header name.
type csvTransaction struct {
	TransactionID   string `csv:"transaction_id"`
	Name            string `csv:"name"`
	Email           string `csv:"email"`
	Amount          string `csv:"amount"`
	TransactionDate string `csv:"transaction_date"`
	ClientLocation  string `csv:"client_location"`
}

type ImportService struct {
	repo     TransactionStore
	resolver TimeZoneResolver
	logger   *zap.Logger
}

func NewImportService(repo TransactionStore, resolver TimeZoneResolver, logger *zap.Logger) *ImportService {
	return &ImportService{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// Import parses a CSV upload, pins every transaction_date to the zone of its
// client_location and upserts the rows. Nothing is written unless every row
// parses and resolves.
func (s *ImportService) Import(ctx context.Context, file io.Reader) (int, error) {
	rows, err := readCSV(file)
	if err != nil {
		s.logger.Error("Failed to parse CSV upload", zap.Error(err))
		return 0, err
	}

	transactions := make([]*models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := s.toTransaction(ctx, row)
		if err != nil {
			// header is line 1
			line := i + 2
			s.logger.Error("Failed to import CSV row",
				zap.Int("line", line),
				zap.String("transaction_id", row.TransactionID),
				zap.Error(err),
			)
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}

	if len(transactions) == 0 {
		s.logger.Info("CSV upload contained no rows")
		return 0, nil
	}

	if _, err := s.repo.Upsert(ctx, transactions); err != nil {
		s.logger.Error("Failed to persist imported transactions",
			zap.Int("rows", len(transactions)),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("Transactions imported", zap.Int("rows", len(transactions)))
	return len(transactions), nil
}

func (s *ImportService) toTransaction(ctx context.Context, row *csvTransaction) (*models.Transaction, error) {
	id := strings.TrimSpace(row.TransactionID)
	if id == "" {
		return nil, fmt.Errorf("%w: transaction_id is empty", ErrInvalidCSV)
	}

	wallClock, err := parseWallClock(row.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction_date %q", ErrInvalidCSV, row.TransactionDate)
	}

	zone, err := s.resolver.Resolve(ctx, row.ClientLocation)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTimeZoneNotFound, zone)
	}

	return &models.Transaction{
		TransactionID:   sanitizeUTF8(id),
		Name:            sanitizeUTF8(row.Name),
		Email:           sanitizeUTF8(row.Email),
		Amount:          sanitizeUTF8(row.Amount),
		TransactionDate: inLocation(wallClock, loc),
		ClientLocation:  sanitizeUTF8(row.ClientLocation),
	}, nil
}

func readCSV(file io.Reader) ([]*csvTransaction, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	var rows []*csvTransaction
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, fmt.Errorf("%w: file is empty", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	return rows, nil
}
