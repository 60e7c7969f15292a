package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transaction-management/internal/api/handlers"
	mock_handlers "transaction-management/internal/api/handlers/mocks"
	"transaction-management/internal/dto"
	"transaction-management/internal/models"
	"transaction-management/internal/service"
	"transaction-management/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testDeps struct {
	querier  *mock_handlers.MockTransactionQuerier
	exporter *mock_handlers.MockTransactionExporter
	importer *mock_handlers.MockTransactionImporter
	app      *fiber.App
}

func newTestApp(t *testing.T) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := &testDeps{
		querier:  mock_handlers.NewMockTransactionQuerier(ctrl),
		exporter: mock_handlers.NewMockTransactionExporter(ctrl),
		importer: mock_handlers.NewMockTransactionImporter(ctrl),
	}

	h := handlers.NewTransactionHandler(d.querier, d.exporter, d.importer, zap.NewNop())
	app := fiber.New()
	app.Get("/GetTransactionBetweenTwoDataUserOffsetAsync", h.GetTransactionBetweenTwoDataUserOffset)
	app.Get("/GetTransactionBetweenTwoDataClientOffsetAsync", h.GetTransactionBetweenTwoDataClientOffset)
	app.Get("/GetJanuaryTransactionsAsync", h.GetJanuaryTransactions)
	app.Get("/ExportToExcelAsync", h.ExportToExcel)
	app.Post("/DownloadDataAsync", h.DownloadData)
	app.Get("/health", h.Health)
	d.app = app
	return d
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/DownloadDataAsync", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

var sampleTransactions = []*models.Transaction{
	{
		TransactionID:   "T1",
		Name:            "Alice",
		Email:           "a@x.com",
		Amount:          "100",
		TransactionDate: time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("", -5*3600)),
		ClientLocation:  "40.7,-74.0",
	},
}

func TestRangeQueries(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setup          func(d *testDeps)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "user offset success",
			url:  "/GetTransactionBetweenTwoDataUserOffsetAsync?firstData=2024-01-15T00:00:00&secondData=2024-01-16T00:00:00",
			setup: func(d *testDeps) {
				d.querier.EXPECT().
					ListUserOffset(gomock.Any(), "2024-01-15T00:00:00", "2024-01-16T00:00:00").
					Return(sampleTransactions, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "client offset keeps encoded plus",
			url:  "/GetTransactionBetweenTwoDataClientOffsetAsync?firstData=2024-01-15T00:00:00%2B05:00&secondData=2024-01-16T00:00:00%2B05:00",
			setup: func(d *testDeps) {
				d.querier.EXPECT().
					ListClientOffset(gomock.Any(), "2024-01-15T00:00:00+05:00", "2024-01-16T00:00:00+05:00").
					Return([]*models.Transaction{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "january",
			url:  "/GetJanuaryTransactionsAsync",
			setup: func(d *testDeps) {
				d.querier.EXPECT().ListJanuary(gomock.Any()).Return(sampleTransactions, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "invalid bound",
			url:  "/GetTransactionBetweenTwoDataUserOffsetAsync?firstData=nope&secondData=2024-01-16",
			setup: func(d *testDeps) {
				d.querier.EXPECT().
					ListUserOffset(gomock.Any(), "nope", "2024-01-16").
					Return(nil, fmt.Errorf("%w: firstData \"nope\"", service.ErrInvalidRange))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "database unavailable",
			url:  "/GetJanuaryTransactionsAsync",
			setup: func(d *testDeps) {
				d.querier.EXPECT().ListJanuary(gomock.Any()).Return(nil, service.ErrDatabaseUnavailable)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected failure",
			url:  "/GetTransactionBetweenTwoDataClientOffsetAsync?firstData=a&secondData=b",
			setup: func(d *testDeps) {
				d.querier.EXPECT().ListClientOffset(gomock.Any(), "a", "b").Return(nil, errors.New("syntax error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestApp(t)
			tt.setup(d)

			resp, body := doRequest(t, d.app, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(body))

			if tt.expectedStatus != http.StatusOK {
				var e dto.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &e))
				assert.NotEmpty(t, e.Error)
				return
			}

			var got []dto.TransactionResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Len(t, got, tt.expectedCount)
			assert.NotNil(t, got)
		})
	}
}

func TestRangeQuery_ReturnsUTC(t *testing.T) {
	d := newTestApp(t)
	d.querier.EXPECT().ListJanuary(gomock.Any()).Return(sampleTransactions, nil)

	_, body := doRequest(t, d.app, httptest.NewRequest(http.MethodGet, "/GetJanuaryTransactionsAsync", nil))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-15T15:00:00Z", got[0]["transaction_date"])
	assert.Equal(t, "T1", got[0]["transaction_id"])
	assert.Equal(t, "40.7,-74.0", got[0]["client_location"])
}

func TestExportToExcel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := newTestApp(t)
		d.exporter.EXPECT().Export(gomock.Any()).Return(&service.ExportFile{
			Name:        "ExportedData-20240101000000000.xlsx",
			ContentType: service.ExcelContentType,
			Content:     []byte("PK\x03\x04workbook"),
		}, nil)

		resp, body := doRequest(t, d.app, httptest.NewRequest(http.MethodGet, "/ExportToExcelAsync", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, service.ExcelContentType, resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="ExportedData-20240101000000000.xlsx"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, []byte("PK\x03\x04workbook"), body)
	})

	t.Run("no data", func(t *testing.T) {
		d := newTestApp(t)
		d.exporter.EXPECT().Export(gomock.Any()).Return(nil, service.ErrNoData)

		resp, body := doRequest(t, d.app, httptest.NewRequest(http.MethodGet, "/ExportToExcelAsync", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error":"No data found to export."}`, string(body))
	})
}

func TestDownloadData(t *testing.T) {
	const csvBody = "transaction_id,name,email,amount,transaction_date,client_location\nT1,Alice,a@x.com,100,2024-01-15T10:00:00,\"40.7,-74.0\"\n"

	tests := []struct {
		name           string
		req            func(t *testing.T) *http.Request
		setup          func(d *testDeps)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			req:  func(t *testing.T) *http.Request { return multipartUpload(t, "file", "tx.csv", csvBody) },
			setup: func(d *testDeps) {
				d.importer.EXPECT().Import(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r io.Reader) (int, error) {
					b, err := io.ReadAll(r)
					require.NoError(t, err)
					assert.Equal(t, csvBody, string(b))
					return 1, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "File download",
		},
		{
			name:           "missing file",
			req:            func(t *testing.T) *http.Request { return multipartUpload(t, "", "", "") },
			setup:          func(d *testDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "import failure surfaces as server error",
			req:  func(t *testing.T) *http.Request { return multipartUpload(t, "file", "tx.csv", csvBody) },
			setup: func(d *testDeps) {
				d.importer.EXPECT().Import(gomock.Any(), gomock.Any()).Return(0, service.ErrTimeZoneNotFound)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestApp(t)
			tt.setup(d)

			resp, body := doRequest(t, d.app, tt.req(t))
			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(body))
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, string(body))
				assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	d := newTestApp(t)
	d.querier.EXPECT().Health(gomock.Any()).Return(nil)
	resp, body := doRequest(t, d.app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	d = newTestApp(t)
	d.querier.EXPECT().Health(gomock.Any()).Return(errors.New("down"))
	resp, _ = doRequest(t, d.app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDownloadData_LogsRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mock_handlers.NewMockTransactionImporter(ctrl)
	importer.EXPECT().Import(gomock.Any(), gomock.Any()).Return(0, service.ErrTimeZoneNotFound)

	core, logs := observer.New(zapcore.ErrorLevel)
	h := handlers.NewTransactionHandler(
		mock_handlers.NewMockTransactionQuerier(ctrl),
		mock_handlers.NewMockTransactionExporter(ctrl),
		importer,
		zap.New(core),
	)
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Post("/DownloadDataAsync", h.DownloadData)

	req := multipartUpload(t, "file", "tx.csv", "transaction_id\nT1\n")
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	resp, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.FilterMessage("CSV import failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}
