package inventory

import "context"

//go:generate mockgen -source=persister.go -destination=mocks/persister.go -package=mocks

// Persister is the durable key-value store the inventory is loaded from and
// written back to. Each key holds one whole serialized collection.
type Persister interface {
	// Load returns the stored value for key. ok is false when nothing is stored.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save overwrites the value stored for key.
	Save(ctx context.Context, key string, data []byte) error
}

// Collection keys.
const (
	KeyItems        = "items"
	KeyTransactions = "transactions"
	KeyItemTypes    = "item-types"
	KeyDepartments  = "departments"
)
