package model

import "time"

// TransactionType is the direction of a stock movement.
type TransactionType string

// Transaction types.
const (
	TransactionIn  TransactionType = "in"
	TransactionOut TransactionType = "out"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// Transaction is an immutable record of a stock movement.
type Transaction struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"itemId"`
	Type     TransactionType `json:"type"`
	Quantity int             `json:"quantity"`
	PICName  string          `json:"picName,omitempty"`
	Date     time.Time       `json:"date"`
	Notes    string          `json:"notes,omitempty"`
}

// Delta returns the signed stock change caused by the transaction.
func (t Transaction) Delta() int {
	if t.Type == TransactionOut {
		return -t.Quantity
	}
	return t.Quantity
}
