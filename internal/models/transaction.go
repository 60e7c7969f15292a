package models

import (
	"time"
)

// TransactionColumns lists the columns of the transactions table in insert order.
var TransactionColumns = []string{
	"transaction_id",
	"name",
	"email",
	"amount",
	"transaction_date",
	"client_location",
}

type Transaction struct {
	TransactionID   string    `db:"transaction_id" json:"transaction_id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	Amount          string    `db:"amount" json:"amount"`
	TransactionDate time.Time `db:"transaction_date" json:"transaction_date"`
	ClientLocation  string    `db:"client_location" json:"client_location"`
}

// Table is an untyped result set: column names in field order plus row values.
type Table struct {
	Columns []string
	Rows    [][]any
}
