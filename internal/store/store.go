package store

import (
	"context"
	"errors"

	"inventory-service/internal/model"
)

// Store-level errors. Implementations translate their backend's failures
// into these so callers can branch without knowing the engine.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a write violated a uniqueness constraint.
	ErrConflict = errors.New("record conflicts with an existing record")

	// ErrUnavailable indicates the backend could not be reached or the
	// transaction failed for reasons unrelated to the data itself.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the persistence contract the catalog depends on: plain CRUD
// primitives over the product table plus a transactional scope. Uniqueness
// checks and the write they guard run inside a single WithTx call so the
// store's transaction boundary is the serialization point for concurrent
// writers.
type Store interface {
	// WithTx runs fn against a Store bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error

	Insert(ctx context.Context, p *model.Product) error
	UpdateByID(ctx context.Context, p *model.Product) error
	DeleteByID(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindByNameCI returns the record whose name matches case-insensitively,
	// skipping excludeID (0 means exclude nothing).
	FindByNameCI(ctx context.Context, name string, excludeID uint) (model.Product, error)

	// FindByCodeCI returns the record whose code matches case-insensitively,
	// skipping excludeID (0 means exclude nothing).
	FindByCodeCI(ctx context.Context, code string, excludeID uint) (model.Product, error)
}
