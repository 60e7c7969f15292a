package service

import (
	"context"
	"errors"
	"time"

	"transaction-management/internal/models"
	"transaction-management/internal/repository"
)

var (
	ErrDatabaseUnavailable = repository.ErrDatabaseUnavailable
	ErrNoData              = errors.New("no data found to export")
	ErrInvalidRange        = errors.New("invalid date range")
	ErrInvalidCSV          = errors.New("invalid csv file")
	ErrInvalidLocation     = errors.New("invalid client location")
	ErrTimeZoneNotFound    = errors.New("time zone not found")
)

// TransactionStore is the persistence surface the services need.
type TransactionStore interface {
	ListBetween(ctx context.Context, from, to time.Time, ordered bool) ([]*models.Transaction, error)
	ExportAll(ctx context.Context) (*models.Table, error)
	Upsert(ctx context.Context, transactions []*models.Transaction) (int64, error)
	Ping(ctx context.Context) error
}

// TimeZoneResolver maps a "lat,long" location to an IANA zone name.
type TimeZoneResolver interface {
	Resolve(ctx context.Context, location string) (string, error)
}
