package adapters

import (
	"context"
	"testing"

	"crypto_dashboard/internal/feature/pairs/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB prepares an in-memory SQLite database with the pairs table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// every pooled connection to :memory: would be a new database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Pair{}), "failed to migrate table")
	return db
}

func seedPair(t *testing.T, db *gorm.DB, code, name string, sortKey int) *entity.Pair {
	t.Helper()

	p := &entity.Pair{Code: code, Name: name, IsActive: true, SortKey: sortKey}
	require.NoError(t, db.Create(p).Error, "failed to seed pair")
	return p
}

// deactivate flips is_active after insert; a false value on create would be
// replaced by the column default.
func deactivate(t *testing.T, db *gorm.DB, p *entity.Pair) {
	t.Helper()
	require.NoError(t, db.Model(p).Update("is_active", false).Error)
}

func TestPairGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCodes []string
	}{
		{
			name: "success: returns active pairs sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedPair(t, db, "ETH-USD", "Ethereum", 2)
				seedPair(t, db, "BTC-USD", "Bitcoin", 1)
				seedPair(t, db, "SOL-USD", "Solana", 3)
			},
			expectedCodes: []string{"BTC-USD", "ETH-USD", "SOL-USD"},
		},
		{
			name: "success: excludes inactive pairs",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedPair(t, db, "BTC-USD", "Bitcoin", 1)
				deactivate(t, db, seedPair(t, db, "ETH-USD", "Ethereum", 2))
				seedPair(t, db, "ADA-USD", "Cardano", 4)
			},
			expectedCodes: []string{"BTC-USD", "ADA-USD"},
		},
		{
			name:          "success: empty table",
			setupFunc:     func(t *testing.T, db *gorm.DB) {},
			expectedCodes: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			tt.setupFunc(t, db)

			pairs, err := NewPairRepository(db).ListActive(context.Background())
			require.NoError(t, err)

			codes := make([]string, 0, len(pairs))
			for _, p := range pairs {
				codes = append(codes, p.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)
		})
	}
}

func TestPairGorm_ExistsActive(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedPair(t, db, "BTC-USD", "Bitcoin", 1)
	deactivate(t, db, seedPair(t, db, "ETH-USD", "Ethereum", 2))
	repo := NewPairRepository(db)

	tests := []struct {
		code string
		want bool
	}{
		{"BTC-USD", true},
		{"ETH-USD", false},
		{"DOGE-USD", false},
	}
	for _, tt := range tests {
		got, err := repo.ExistsActive(context.Background(), tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.code)
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, entity.DefaultPairs))
	require.NoError(t, Seed(ctx, db, entity.DefaultPairs), "seeding twice is a no-op")

	var count int64
	require.NoError(t, db.Model(&entity.Pair{}).Count(&count).Error)
	assert.Equal(t, int64(len(entity.DefaultPairs)), count)

	// a pair deactivated by an operator stays deactivated
	var eth entity.Pair
	require.NoError(t, db.Where("code = ?", "ETH-USD").First(&eth).Error)
	deactivate(t, db, &eth)
	require.NoError(t, Seed(ctx, db, entity.DefaultPairs))

	ok, err := NewPairRepository(db).ExistsActive(ctx, "ETH-USD")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, uint(0), entity.DefaultPairs[0].ID, "seed must not write IDs into the input")
}

func TestSeed_Empty(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Seed(context.Background(), setupTestDB(t), nil))
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	pairs := []entity.Pair{
		{Code: "SOL-USD", IsActive: true, SortKey: 3},
		{Code: "BTC-USD", IsActive: true, SortKey: 1},
		{Code: "XRP-USD", IsActive: false, SortKey: 2},
	}
	repo := NewMemoryRepository(pairs)
	ctx := context.Background()

	got, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BTC-USD", got[0].Code)
	assert.Equal(t, "SOL-USD", got[1].Code)

	got[0].Code = "changed"
	again, _ := repo.ListActive(ctx)
	assert.Equal(t, "BTC-USD", again[0].Code, "callers get a copy")

	ok, err := repo.ExistsActive(ctx, "SOL-USD")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsActive(ctx, "XRP-USD")
	require.NoError(t, err)
	assert.False(t, ok)
}
