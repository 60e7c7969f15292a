package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	"transaction-management/internal/dto"
	"transaction-management/internal/models"
	"transaction-management/internal/service"
	"transaction-management/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mock_handlers transaction-management/internal/api/handlers TransactionQuerier,TransactionExporter,TransactionImporter

type TransactionQuerier interface {
	ListUserOffset(ctx context.Context, first, second string) ([]*models.Transaction, error)
	ListClientOffset(ctx context.Context, first, second string) ([]*models.Transaction, error)
	ListJanuary(ctx context.Context) ([]*models.Transaction, error)
	Health(ctx context.Context) error
}

type TransactionExporter interface {
	Export(ctx context.Context) (*service.ExportFile, error)
}

type TransactionImporter interface {
	Import(ctx context.Context, file io.Reader) (int, error)
}

type TransactionHandler struct {
	querier  TransactionQuerier
	exporter TransactionExporter
	importer TransactionImporter
	logger   *zap.Logger
}

func NewTransactionHandler(querier TransactionQuerier, exporter TransactionExporter, importer TransactionImporter, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		querier:  querier,
		exporter: exporter,
		importer: importer,
		logger:   logger,
	}
}

// GetTransactionBetweenTwoDataUserOffset godoc
// @Summary List transactions between two local date-times
// @Description Both bounds are read at the server's current UTC offset; results are returned in UTC
// @Tags transactions
// @Produce json
// @Param firstData query string true "Lower bound, e.g. 2024-01-15T00:00:00"
// @Param secondData query string true "Upper bound, e.g. 2024-01-15T23:59:59"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /GetTransactionBetweenTwoDataUserOffsetAsync [get]
func (h *TransactionHandler) GetTransactionBetweenTwoDataUserOffset(c *fiber.Ctx) error {
	txs, err := h.querier.ListUserOffset(c.UserContext(), c.Query("firstData"), c.Query("secondData"))
	if err != nil {
		return h.fail(c, "Failed to list transactions", err)
	}
	return c.JSON(dto.NewTransactionResponses(txs))
}

// GetTransactionBetweenTwoDataClientOffset godoc
// @Summary List transactions between two offset-qualified date-times
// @Description Bounds carry their own offset (RFC 3339); bounds without one are read as UTC
// @Tags transactions
// @Produce json
// @Param firstData query string true "Lower bound, e.g. 2024-01-15T00:00:00+03:00"
// @Param secondData query string true "Upper bound, e.g. 2024-01-15T23:59:59+03:00"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /GetTransactionBetweenTwoDataClientOffsetAsync [get]
func (h *TransactionHandler) GetTransactionBetweenTwoDataClientOffset(c *fiber.Ctx) error {
	txs, err := h.querier.ListClientOffset(c.UserContext(), c.Query("firstData"), c.Query("secondData"))
	if err != nil {
		return h.fail(c, "Failed to list transactions", err)
	}
	return c.JSON(dto.NewTransactionResponses(txs))
}

// GetJanuaryTransactions godoc
// @Summary List January 2024 transactions
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /GetJanuaryTransactionsAsync [get]
func (h *TransactionHandler) GetJanuaryTransactions(c *fiber.Ctx) error {
	txs, err := h.querier.ListJanuary(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list January transactions", err)
	}
	return c.JSON(dto.NewTransactionResponses(txs))
}

// ExportToExcel godoc
// @Summary Export all transactions
// @Description Download every stored transaction as an .xlsx workbook
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /ExportToExcelAsync [get]
func (h *TransactionHandler) ExportToExcel(c *fiber.Ctx) error {
	file, err := h.exporter.Export(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to export transactions", err)
	}

	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}

// DownloadData godoc
// @Summary Import transactions from CSV
// @Description Upsert rows keyed on transaction_id; each transaction_date is pinned to the zone of its client_location
// @Tags transactions
// @Accept multipart/form-data
// @Produce plain
// @Param file formData file true "CSV file with a header row"
// @Success 200 {string} string "File download"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /DownloadDataAsync [post]
func (h *TransactionHandler) DownloadData(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Failed to open file",
		})
	}
	defer src.Close()

	n, err := h.importer.Import(c.UserContext(), src)
	if err != nil {
		h.logger.Error("CSV import failed",
			zap.String("file", file.Filename),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	h.logger.Info("CSV import finished", zap.String("file", file.Filename), zap.Int("rows", n))
	return c.Type("txt").SendString("File download")
}

// Health godoc
// @Summary Liveness and database check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *TransactionHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.querier.Health(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable"})
	}
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// fail maps service errors onto HTTP statuses.
func (h *TransactionHandler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	body := msg

	switch {
	case errors.Is(err, service.ErrDatabaseUnavailable):
		status = fiber.StatusBadRequest
		body = "Database connection unavailable"
	case errors.Is(err, service.ErrInvalidRange):
		status = fiber.StatusBadRequest
		body = err.Error()
	case errors.Is(err, service.ErrNoData):
		status = fiber.StatusNotFound
		body = "No data found to export."
	}

	if status == fiber.StatusInternalServerError {
		h.logger.Error(msg, zap.String("request_id", middleware.RequestIDFrom(c)), zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: body})
}
