package adapters

import (
	"context"
	"sort"

	"crypto_dashboard/internal/feature/pairs/domain/entity"
	"crypto_dashboard/internal/feature/pairs/usecase"
)

// pairMemory serves a fixed pair list when no database is configured.
type pairMemory struct {
	pairs []entity.Pair
}

var _ usecase.PairRepository = (*pairMemory)(nil)

// NewMemoryRepository keeps the active entries of pairs, ordered by SortKey.
func NewMemoryRepository(pairs []entity.Pair) *pairMemory {
	active := make([]entity.Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].SortKey < active[j].SortKey })
	return &pairMemory{pairs: active}
}

func (r *pairMemory) ListActive(_ context.Context) ([]entity.Pair, error) {
	return append([]entity.Pair(nil), r.pairs...), nil
}

func (r *pairMemory) ExistsActive(_ context.Context, code string) (bool, error) {
	for _, p := range r.pairs {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}
