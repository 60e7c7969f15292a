package service

import (
	"context"
	"fmt"
	"time"

	"transaction-management/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet      = "Data"
)

type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type ExportService struct {
	repo   TransactionStore
	now    func() time.Time
	logger *zap.Logger
}

func NewExportService(repo TransactionStore, logger *zap.Logger) *ExportService {
	return &ExportService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// Export writes every stored row into a single-sheet workbook. Row 1 holds the
// column names; each following row holds one record in the same order.
func (s *ExportService) Export(ctx context.Context) (*ExportFile, error) {
	table, err := s.repo.ExportAll(ctx)
	if err != nil {
		s.logger.Error("Failed to read transactions for export", zap.Error(err))
		return nil, err
	}
	if table == nil || len(table.Rows) == 0 {
		return nil, ErrNoData
	}

	content, err := buildWorkbook(table)
	if err != nil {
		s.logger.Error("Failed to build workbook", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Transactions exported", zap.Int("rows", len(table.Rows)))

	return &ExportFile{
		Name:        exportFileName(s.now()),
		ContentType: ExcelContentType,
		Content:     content,
	}, nil
}

func buildWorkbook(table *models.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue renders timestamps as RFC 3339 UTC text and nulls as empty cells.
func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return val
	}
}

// exportFileName formats as ExportedData-yyyyMMddHHmmssfff.xlsx.
func exportFileName(now time.Time) string {
	return fmt.Sprintf("ExportedData-%s%03d.xlsx", now.Format("20060102150405"), now.Nanosecond()/int(time.Millisecond))
}
