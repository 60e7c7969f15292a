package service

import (
	"context"
	"sync"
	"time"

	"transaction-management/internal/models"
)

// memoryStore is an in-memory TransactionStore keyed on transaction_id.
type memoryStore struct {
	mu          sync.Mutex
	rows        map[string]*models.Transaction
	order       []string
	err         error
	listCalls   int
	upsertCalls int
	lastFrom    time.Time
	lastTo      time.Time
	lastOrdered bool
}

func newMemoryStore(txs ...*models.Transaction) *memoryStore {
	s := &memoryStore{rows: map[string]*models.Transaction{}}
	for _, tx := range txs {
		s.put(tx)
	}
	return s
}

func (s *memoryStore) put(tx *models.Transaction) {
	if _, ok := s.rows[tx.TransactionID]; !ok {
		s.order = append(s.order, tx.TransactionID)
	}
	cp := *tx
	s.rows[tx.TransactionID] = &cp
}

func (s *memoryStore) ListBetween(ctx context.Context, from, to time.Time, ordered bool) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastFrom, s.lastTo, s.lastOrdered = from, to, ordered
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Transaction
	for _, id := range s.order {
		tx := s.rows[id]
		if !tx.TransactionDate.Before(from) && !tx.TransactionDate.After(to) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memoryStore) ExportAll(ctx context.Context) (*models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	table := &models.Table{Columns: models.TransactionColumns}
	for _, id := range s.order {
		tx := s.rows[id]
		table.Rows = append(table.Rows, []any{tx.TransactionID, tx.Name, tx.Email, tx.Amount, tx.TransactionDate, tx.ClientLocation})
	}
	return table, nil
}

func (s *memoryStore) Upsert(ctx context.Context, transactions []*models.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertCalls++
	if s.err != nil {
		return 0, s.err
	}
	for _, tx := range transactions {
		s.put(tx)
	}
	return int64(len(transactions)), nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return s.err
}

type staticResolver struct {
	zones map[string]string
	err   error
	calls int
}

func (r *staticResolver) Resolve(ctx context.Context, location string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	zone, ok := r.zones[location]
	if !ok {
		return "", ErrTimeZoneNotFound
	}
	return zone, nil
}
