package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transaction-management/internal/models"
	"transaction-management/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const transactionsTable = "transactions"

// ErrDatabaseUnavailable is returned when no connection could be obtained.
var ErrDatabaseUnavailable = errors.New("database connection unavailable")

type TransactionRepository struct {
	db     postgres.Acquirer
	logger *zap.Logger
}

func NewTransactionRepository(db postgres.Acquirer, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) acquire(ctx context.Context) (postgres.Conn, func(), error) {
	if r.db == nil {
		return nil, nil, ErrDatabaseUnavailable
	}
	conn, release, err := r.db.Acquire(ctx)
	if err != nil {
		r.logger.Error("Failed to acquire database connection", zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	if conn == nil {
		if release != nil {
			release()
		}
		return nil, nil, ErrDatabaseUnavailable
	}
	return conn, release, nil
}

// ListBetween returns rows whose transaction_date lies in [from, to].
func (r *TransactionRepository) ListBetween(ctx context.Context, from, to time.Time, ordered bool) ([]*models.Transaction, error) {
	conn, release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := squirrel.Select(models.TransactionColumns...).
		From(transactionsTable).
		Where(squirrel.GtOrEq{"transaction_date": from}).
		Where(squirrel.LtOrEq{"transaction_date": to}).
		PlaceholderFormat(squirrel.Dollar)
	if ordered {
		query = query.OrderBy("transaction_date ASC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.TransactionID, &tx.Name, &tx.Email, &tx.Amount, &tx.TransactionDate, &tx.ClientLocation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// ExportAll reads every row with SELECT * and keeps the column order reported
// by the server.
func (r *TransactionRepository) ExportAll(ctx context.Context) (*models.Table, error) {
	conn, release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	sql, args, err := squirrel.Select("*").
		From(transactionsTable).
		OrderBy("transaction_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	table := &models.Table{}
	for _, fd := range rows.FieldDescriptions() {
		table.Columns = append(table.Columns, fd.Name)
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return table, nil
}

// Postgres caps a statement at 65535 bind parameters.
const maxBindParams = 65535

// upsertChunkSize is the number of rows per INSERT statement.
var upsertChunkSize = 1000

// Upsert inserts or updates transactions keyed on transaction_id. Rows are
// written in chunks inside one database transaction, so either every chunk
// lands or none does. Postgres rejects a statement that touches one key
// twice, so duplicate ids are collapsed to their last occurrence first.
func (r *TransactionRepository) Upsert(ctx context.Context, transactions []*models.Transaction) (int64, error) {
	transactions = dedupeByID(transactions)
	if len(transactions) == 0 {
		return 0, nil
	}

	conn, release, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin upsert transaction: %w", err)
	}

	var affected int64
	for i, chunk := range chunkTransactions(transactions, upsertChunkSize) {
		sql, args, err := upsertStatement(chunk)
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, err
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error("Failed to roll back upsert", zap.Error(rbErr))
			}
			return 0, fmt.Errorf("failed to upsert transactions (chunk %d): %w", i+1, err)
		}
		affected += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit upsert: %w", err)
	}

	r.logger.Debug("Transactions upserted", zap.Int64("rows", affected))
	return affected, nil
}

func upsertStatement(transactions []*models.Transaction) (string, []any, error) {
	builder := squirrel.Insert(transactionsTable).
		Columns(models.TransactionColumns...).
		Suffix(upsertSuffix()).
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		builder = builder.Values(tx.TransactionID, tx.Name, tx.Email, tx.Amount, tx.TransactionDate, tx.ClientLocation)
	}

	return builder.ToSql()
}

// chunkTransactions splits rows into groups of at most size, never exceeding
// the bind parameter limit.
func chunkTransactions(transactions []*models.Transaction, size int) [][]*models.Transaction {
	if limit := maxBindParams / len(models.TransactionColumns); size <= 0 || size > limit {
		size = limit
	}

	chunks := make([][]*models.Transaction, 0, (len(transactions)+size-1)/size)
	for start := 0; start < len(transactions); start += size {
		end := start + size
		if end > len(transactions) {
			end = len(transactions)
		}
		chunks = append(chunks, transactions[start:end])
	}
	return chunks
}

func (r *TransactionRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	return r.db.Ping(ctx)
}

func upsertSuffix() string {
	sets := make([]string, 0, len(models.TransactionColumns)-1)
	for _, col := range models.TransactionColumns[1:] {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	return "ON CONFLICT (transaction_id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func dedupeByID(transactions []*models.Transaction) []*models.Transaction {
	last := make(map[string]int, len(transactions))
	for i, tx := range transactions {
		last[tx.TransactionID] = i
	}
	out := make([]*models.Transaction, 0, len(last))
	for i, tx := range transactions {
		if last[tx.TransactionID] == i {
			out = append(out, tx)
		}
	}
	return out
}
