package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okasina/okasina-fashion/storage/db"
)

func TestNewRunsMigrations(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "nested", "okasina.db"))
	require.NoError(t, err)
	defer store.Close()

	// both tables exist and accept writes
	product, err := store.Queries.CreateProduct(context.Background(), db.CreateProductParams{
		ID:       uuid.New().String(),
		Name:     "Migration Check",
		Category: "Clothing",
		Price:    45,
		PriceMur: 2025,
		StockQty: 10,
		IsActive: sql.NullBool{Bool: false, Valid: true},
		Status:   "draft",
	})
	require.NoError(t, err)
	assert.Equal(t, "Migration Check", product.Name)
	assert.False(t, product.CreatedAt.IsZero())

	_, err = store.Queries.CreateImportJob(context.Background(), db.CreateImportJobParams{
		ID:        "job1",
		AlbumID:   "a1",
		AlbumName: "Check",
	})
	require.NoError(t, err)

	job, err := store.Queries.GetImportJob(context.Background(), "job1")
	require.NoError(t, err)
	assert.Equal(t, "running", job.Status)
}

func TestReimportKeepsDuplicateRows(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	// two imports of the same photo produce two catalog rows; the shared
	// object key means they still point at one stored image
	for i := 0; i < 2; i++ {
		_, err := queries.CreateProduct(context.Background(), db.CreateProductParams{
			ID:            uuid.New().String(),
			Name:          "Twice Imported",
			Category:      "Clothing",
			Price:         45,
			PriceMur:      2025,
			ImageUrl:      "https://cdn.test/fb-a1-p1.jpg",
			StockQty:      10,
			IsActive:      sql.NullBool{Bool: false, Valid: true},
			Status:        "draft",
			SourcePhotoID: sql.NullString{String: "p1", Valid: true},
		})
		require.NoError(t, err)
	}

	products, err := queries.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
