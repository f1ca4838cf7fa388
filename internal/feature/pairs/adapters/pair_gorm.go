// Package adapters provides the repository implementations of the pairs feature.
package adapters

import (
	"context"
	"fmt"

	"crypto_dashboard/internal/feature/pairs/domain/entity"
	"crypto_dashboard/internal/feature/pairs/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pairGorm is the gorm implementation of PairRepository (SQLite or PostgreSQL).
type pairGorm struct {
	db *gorm.DB
}

var _ usecase.PairRepository = (*pairGorm)(nil)

// NewPairRepository creates a pairGorm repository on the given connection.
func NewPairRepository(db *gorm.DB) *pairGorm {
	return &pairGorm{db: db}
}

// ListActive returns all active pairs ordered by sort_key.
func (r *pairGorm) ListActive(ctx context.Context) ([]entity.Pair, error) {
	var pairs []entity.Pair
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&pairs).Error; err != nil {
		return nil, err
	}
	return pairs, nil
}

// ExistsActive reports whether an active pair with the given code exists.
func (r *pairGorm) ExistsActive(ctx context.Context, code string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Pair{}).
		Where("code = ? AND is_active = ?", code, true).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Seed inserts pairs that are not stored yet. Existing rows are left untouched
// so operators can deactivate a pair in the database.
func Seed(ctx context.Context, db *gorm.DB, pairs []entity.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	rows := append([]entity.Pair(nil), pairs...)
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("seed pairs: %w", err)
	}
	return nil
}
