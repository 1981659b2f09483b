// Package inventory holds the in-memory inventory state: items, stock
// transactions, item types and departments. Every mutation writes the
// affected collections back to a Persister.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/zaloga/internal/model"
)

// Store owns the four inventory collections. The in-memory state is the
// source of truth for reads; persistence is best effort.
//
// A Store is not safe for concurrent use.
type Store struct {
	persister Persister
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger

	items        []model.Item
	transactions []model.Transaction
	itemTypes    []model.ItemType
	departments  []model.Department
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps and expiry alerts.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the generator for record ids and barcode entropy.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open loads all collections from p. Item types and departments that have
// never been stored are seeded with the defaults and saved.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "inventory")

	var err error
	if s.items, _, err = load[model.Item](ctx, p, KeyItems); err != nil {
		return nil, err
	}
	if s.transactions, _, err = load[model.Transaction](ctx, p, KeyTransactions); err != nil {
		return nil, err
	}

	var found bool
	if s.itemTypes, found, err = load[model.ItemType](ctx, p, KeyItemTypes); err != nil {
		return nil, err
	}
	if !found {
		for _, name := range model.DefaultItemTypes {
			s.itemTypes = append(s.itemTypes, model.ItemType{ID: s.newID(), Name: name})
		}
		s.logger.Info("seeded default item types", "count", len(s.itemTypes))
		s.save(ctx, KeyItemTypes)
	}

	if s.departments, found, err = load[model.Department](ctx, p, KeyDepartments); err != nil {
		return nil, err
	}
	if !found {
		for _, name := range model.DefaultDepartments {
			s.departments = append(s.departments, model.Department{ID: s.newID(), Name: name})
		}
		s.logger.Info("seeded default departments", "count", len(s.departments))
		s.save(ctx, KeyDepartments)
	}

	return s, nil
}

func load[T any](ctx context.Context, p Persister, key string) ([]T, bool, error) {
	data, ok, err := p.Load(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return []T{}, false, nil
	}
	records, err := decode[T](data)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	return records, true, nil
}

// save writes the given collections back in full. Failures are logged and
// never undo the in-memory change.
func (s *Store) save(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var data []byte
		var err error
		switch key {
		case KeyItems:
			data, err = encode(s.items)
		case KeyTransactions:
			data, err = encode(s.transactions)
		case KeyItemTypes:
			data, err = encode(s.itemTypes)
		case KeyDepartments:
			data, err = encode(s.departments)
		default:
			err = fmt.Errorf("unknown collection %q", key)
		}
		if err == nil {
			err = s.persister.Save(ctx, key, data)
		}
		if err != nil {
			s.logger.Error("failed to save collection", "key", key, "error", err)
		}
	}
}

// Items returns a copy of all items in insertion order.
func (s *Store) Items() []model.Item {
	return append([]model.Item(nil), s.items...)
}

// Transactions returns a copy of all transactions in chronological order.
func (s *Store) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.transactions...)
}

// ItemTypes returns a copy of all item types.
func (s *Store) ItemTypes() []model.ItemType {
	return append([]model.ItemType(nil), s.itemTypes...)
}

// Departments returns a copy of all departments.
func (s *Store) Departments() []model.Department {
	return append([]model.Department(nil), s.departments...)
}
