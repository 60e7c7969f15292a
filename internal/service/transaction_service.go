package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"transaction-management/internal/models"

	"go.uber.org/zap"
)

// January range served by ListJanuary, inclusive on both ends.
var (
	januaryStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	januaryEnd   = time.Date(2024, time.January, 31, 23, 59, 59, 999999000, time.UTC)
)

type TransactionService struct {
	repo   TransactionStore
	now    func() time.Time
	logger *zap.Logger
}

func NewTransactionService(repo TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the clock used to derive the server's local offset.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

// ListUserOffset treats both bounds as wall-clock times at the server's
// current UTC offset.
func (s *TransactionService) ListUserOffset(ctx context.Context, first, second string) ([]*models.Transaction, error) {
	_, offset := s.now().Zone()
	loc := time.FixedZone("", offset)

	from, err := parseNaive(strings.TrimSpace(first), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: firstData %q", ErrInvalidRange, first)
	}
	to, err := parseNaive(strings.TrimSpace(second), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: secondData %q", ErrInvalidRange, second)
	}

	return s.between(ctx, from, to, false)
}

// ListClientOffset uses bounds that carry their own offset. Bounds without
// one are read as UTC.
func (s *TransactionService) ListClientOffset(ctx context.Context, first, second string) ([]*models.Transaction, error) {
	from, err := parseClientTime(first)
	if err != nil {
		return nil, fmt.Errorf("%w: firstData %q", ErrInvalidRange, first)
	}
	to, err := parseClientTime(second)
	if err != nil {
		return nil, fmt.Errorf("%w: secondData %q", ErrInvalidRange, second)
	}

	return s.between(ctx, from, to, true)
}

func (s *TransactionService) ListJanuary(ctx context.Context) ([]*models.Transaction, error) {
	return s.between(ctx, januaryStart, januaryEnd, true)
}

func (s *TransactionService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *TransactionService) between(ctx context.Context, from, to time.Time, ordered bool) ([]*models.Transaction, error) {
	if from.After(to) {
		return []*models.Transaction{}, nil
	}

	transactions, err := s.repo.ListBetween(ctx, from, to, ordered)
	if err != nil {
		s.logger.Error("Failed to list transactions",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
		return nil, err
	}

	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	for _, tx := range transactions {
		tx.TransactionDate = tx.TransactionDate.UTC()
	}
	return transactions, nil
}

func parseClientTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := parseWithOffset(value); err == nil {
		return t, nil
	}
	if t, err := parseWithOffset(restorePlus(value)); err == nil {
		return t, nil
	}
	return parseNaive(value, time.UTC)
}
