package inventory

import (
	"context"
	"math"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

// TransactionDraft holds the caller-supplied fields of a stock movement.
type TransactionDraft struct {
	ItemID   string
	Type     model.TransactionType
	Quantity int
	PICName  string
	Notes    string
}

// AddTransaction records a stock movement and applies it to the item's stock.
// The item must exist, the quantity must be positive, a stock-out needs a
// person in charge and may not exceed the current stock, and a stock-in may
// not overflow it. On error nothing changes.
func (s *Store) AddTransaction(ctx context.Context, draft TransactionDraft) (model.Transaction, error) {
	i := s.indexOfItem(draft.ItemID)
	if i < 0 {
		return model.Transaction{}, ErrItemNotFound
	}
	if !draft.Type.Valid() {
		return model.Transaction{}, invalidInput("unknown transaction type %q", draft.Type)
	}
	if draft.Quantity <= 0 {
		return model.Transaction{}, ErrInvalidQuantity
	}

	picName := strings.TrimSpace(draft.PICName)
	if draft.Type == model.TransactionOut {
		if picName == "" {
			return model.Transaction{}, invalidInput("person in charge is required for stock out")
		}
		if available := s.items[i].CurrentStock; draft.Quantity > available {
			return model.Transaction{}, &InsufficientStockError{Available: available, Requested: draft.Quantity}
		}
	} else {
		if draft.Quantity > math.MaxInt-s.items[i].CurrentStock {
			return model.Transaction{}, ErrInvalidQuantity
		}
		picName = ""
	}

	now := s.now()
	t := model.Transaction{
		ID:       s.newID(),
		ItemID:   draft.ItemID,
		Type:     draft.Type,
		Quantity: draft.Quantity,
		PICName:  picName,
		Date:     now,
		Notes:    strings.TrimSpace(draft.Notes),
	}

	s.transactions = append(s.transactions, t)
	s.items[i].CurrentStock += t.Delta()
	s.items[i].UpdatedAt = now
	s.save(ctx, KeyTransactions, KeyItems)
	return t, nil
}

// ItemTransactions returns the transactions of one item in chronological order.
func (s *Store) ItemTransactions(itemID string) []model.Transaction {
	var result []model.Transaction
	for _, t := range s.transactions {
		if t.ItemID == itemID {
			result = append(result, t)
		}
	}
	return result
}
