package catalog

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

// Catalog owns the inventory domain logic: validation, uniqueness,
// querying and statistics. It holds no state of its own; every operation
// reads and writes through the store it was constructed with.
type Catalog struct {
	store store.Store
}

// New builds a Catalog over the given record store.
func New(s store.Store) *Catalog {
	return &Catalog{store: s}
}

// CreateProduct validates the input, enforces uniqueness and persists a new
// record. The uniqueness check and the insert share one store transaction,
// so concurrent creates resolve at the store's serialization point. The
// returned warnings are advisory; the write has already succeeded.
func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput) (model.Product, []Warning, error) {
	record, err := in.normalize()
	if err != nil {
		return model.Product{}, nil, err
	}

	err = c.store.WithTx(ctx, func(tx store.Store) error {
		if err := c.checkUnique(ctx, tx, record.Name, record.CodeValue(), 0); err != nil {
			return err
		}
		return tx.Insert(ctx, &record)
	})
	if err != nil {
		return model.Product{}, nil, c.mapWriteErr(ctx, err, record, 0)
	}

	return record, warnings(record), nil
}

// UpdateProduct revalidates the full field set and overwrites the record.
// The record's own id is excluded from the conflict scan, so saving a
// product under its unchanged name succeeds.
func (c *Catalog) UpdateProduct(ctx context.Context, id uint, in ProductInput) (model.Product, []Warning, error) {
	record, err := in.normalize()
	if err != nil {
		return model.Product{}, nil, err
	}

	var updated model.Product
	err = c.store.WithTx(ctx, func(tx store.Store) error {
		existing, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := c.checkUnique(ctx, tx, record.Name, record.CodeValue(), id); err != nil {
			return err
		}

		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := tx.UpdateByID(ctx, &record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Product{}, nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return model.Product{}, nil, c.mapWriteErr(ctx, err, record, id)
	}

	return updated, warnings(updated), nil
}

// DeleteProduct removes the record outright. A second delete of the same id
// reports ErrNotFound.
func (c *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	if err := c.store.DeleteByID(ctx, id); err != nil {
		return mapStoreErrID(err, id)
	}
	return nil
}

// GetProduct fetches one record by id.
func (c *Catalog) GetProduct(ctx context.Context, id uint) (model.Product, error) {
	product, err := c.store.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, mapStoreErrID(err, id)
	}
	return product, nil
}

// checkUnique is the uniqueness guard: no other record may hold the same
// name (case-insensitive) or the same non-empty code. excludeID skips the
// record being updated.
func (c *Catalog) checkUnique(ctx context.Context, s store.Store, name, code string, excludeID uint) error {
	_, err := s.FindByNameCI(ctx, name, excludeID)
	switch {
	case err == nil:
		return ErrNameConflict
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	// An empty code is "no code" and never conflicts.
	if code == "" {
		return nil
	}
	_, err = s.FindByCodeCI(ctx, code, excludeID)
	switch {
	case err == nil:
		return ErrCodeConflict
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	return nil
}

// mapWriteErr converts the failure of a guarded write into the catalog
// taxonomy. Guard-produced conflicts pass through untouched. A duplicate-key
// error from the store itself means a concurrent writer slipped past the
// guard; the conflict is re-scanned against the committed state to name the
// colliding column, falling back to the name conflict when the racer has
// since disappeared.
func (c *Catalog) mapWriteErr(ctx context.Context, err error, record model.Product, excludeID uint) error {
	switch {
	case errors.Is(err, ErrNameConflict), errors.Is(err, ErrCodeConflict):
		return err
	case errors.Is(err, store.ErrConflict):
		guardErr := c.checkUnique(ctx, c.store, record.Name, record.CodeValue(), excludeID)
		if errors.Is(guardErr, ErrNameConflict) || errors.Is(guardErr, ErrCodeConflict) {
			return guardErr
		}
		return ErrNameConflict
	default:
		return mapStoreErr(err)
	}
}

// mapStoreErr converts store-level failures into the catalog taxonomy.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}

func mapStoreErrID(err error, id uint) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return mapStoreErr(err)
}
