package dto

import (
	"time"

	"transaction-management/internal/models"
)

type TransactionResponse struct {
	TransactionID   string `json:"transaction_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	ClientLocation  string `json:"client_location"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// NewTransactionResponse renders tx with its timestamp normalized to UTC.
func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   tx.TransactionID,
		Name:            tx.Name,
		Email:           tx.Email,
		Amount:          tx.Amount,
		TransactionDate: tx.TransactionDate.UTC().Format(time.RFC3339Nano),
		ClientLocation:  tx.ClientLocation,
	}
}

func NewTransactionResponses(txs []*models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = NewTransactionResponse(tx)
	}
	return responses
}
