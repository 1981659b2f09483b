package model

import "testing"

func TestTransactionDelta(t *testing.T) {
	if d := (Transaction{Type: TransactionIn, Quantity: 5}).Delta(); d != 5 {
		t.Errorf("expected delta 5, got %d", d)
	}
	if d := (Transaction{Type: TransactionOut, Quantity: 5}).Delta(); d != -5 {
		t.Errorf("expected delta -5, got %d", d)
	}
}
