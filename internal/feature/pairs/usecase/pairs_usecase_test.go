package usecase_test

import (
	"context"
	"errors"
	"testing"

	"crypto_dashboard/internal/feature/pairs/domain/entity"
	"crypto_dashboard/internal/feature/pairs/usecase"

	"github.com/stretchr/testify/assert"
)

// mockPairRepository is a mock implementation of PairRepository.
type mockPairRepository struct {
	ListActiveFunc   func(ctx context.Context) ([]entity.Pair, error)
	ExistsActiveFunc func(ctx context.Context, code string) (bool, error)
	existsCalls      int
}

func (m *mockPairRepository) ListActive(ctx context.Context) ([]entity.Pair, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockPairRepository) ExistsActive(ctx context.Context, code string) (bool, error) {
	m.existsCalls++
	if m.ExistsActiveFunc != nil {
		return m.ExistsActiveFunc(ctx, code)
	}
	return false, nil
}

func TestPairsUsecase_ListActivePairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mockList  func(ctx context.Context) ([]entity.Pair, error)
		wantPairs []entity.Pair
		wantErr   bool
	}{
		{
			name: "success: returns pairs",
			mockList: func(ctx context.Context) ([]entity.Pair, error) {
				return entity.DefaultPairs, nil
			},
			wantPairs: entity.DefaultPairs,
		},
		{
			name: "error: repository failure",
			mockList: func(ctx context.Context) ([]entity.Pair, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewPairsUsecase(&mockPairRepository{ListActiveFunc: tt.mockList})
			got, err := uc.ListActivePairs(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantPairs, got)
		})
	}
}

func TestPairsUsecase_IsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		code      string
		want      bool
		wantCalls int
	}{
		{name: "known pair", code: "BTC-USD", want: true, wantCalls: 1},
		{name: "lowercase is normalised", code: " eth-usd ", want: true, wantCalls: 1},
		{name: "unknown pair", code: "DOGE-USD", want: false, wantCalls: 1},
		{name: "empty code skips the repository", code: "", want: false, wantCalls: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockPairRepository{
				ExistsActiveFunc: func(ctx context.Context, code string) (bool, error) {
					return code == "BTC-USD" || code == "ETH-USD", nil
				},
			}
			got, err := usecase.NewPairsUsecase(repo).IsActive(context.Background(), tt.code)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, repo.existsCalls)
		})
	}
}
