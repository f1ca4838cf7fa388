// Package usecase implements the business logic for trading pair lookups.
package usecase

import (
	"context"
	"strings"

	"crypto_dashboard/internal/feature/pairs/domain/entity"
)

// PairRepository abstracts the storage of the offered trading pairs.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PairRepository interface {
	ListActive(ctx context.Context) ([]entity.Pair, error)
	ExistsActive(ctx context.Context, code string) (bool, error)
}

// PairsUsecase provides business logic for pair operations.
type PairsUsecase struct {
	repo PairRepository
}

// NewPairsUsecase creates a new PairsUsecase with the given repository.
func NewPairsUsecase(r PairRepository) *PairsUsecase {
	return &PairsUsecase{repo: r}
}

// ListActivePairs returns the active pairs in display order.
func (u *PairsUsecase) ListActivePairs(ctx context.Context) ([]entity.Pair, error) {
	return u.repo.ListActive(ctx)
}

// IsActive reports whether code names an active pair. Codes are matched
// case-insensitively, as the exchange does.
func (u *PairsUsecase) IsActive(ctx context.Context, code string) (bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false, nil
	}
	return u.repo.ExistsActive(ctx, code)
}
