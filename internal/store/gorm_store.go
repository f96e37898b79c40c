package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/prometheus"
)

// GormStore implements Store on top of a gorm connection. The same type
// serves both the root connection and transaction-bound copies handed to
// WithTx closures.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection. The connection must have been
// opened with TranslateError enabled so duplicate-key violations surface as
// gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Insert(ctx context.Context, p *model.Product) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) UpdateByID(ctx context.Context, p *model.Product) error {
	if p.ID == 0 {
		return fmt.Errorf("update without id: %w", ErrNotFound)
	}
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := s.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (model.Product, error) {
	defer prometheus.TrackDBOperation("find_by_id")(time.Now())
	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return product, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("find_all")(time.Now())
	var products []model.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *GormStore) FindByNameCI(ctx context.Context, name string, excludeID uint) (model.Product, error) {
	defer prometheus.TrackDBOperation("find_by_name")(time.Now())
	var product model.Product
	query := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&product).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return product, nil
}

func (s *GormStore) FindByCodeCI(ctx context.Context, code string, excludeID uint) (model.Product, error) {
	defer prometheus.TrackDBOperation("find_by_code")(time.Now())
	var product model.Product
	query := s.db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&product).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return product, nil
}

// translate maps gorm errors onto the store taxonomy. Anything that is not
// a not-found or duplicate-key condition is treated as the backend being
// unavailable.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
