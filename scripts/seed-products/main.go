package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/internal/synth"
	"github.com/okasina/okasina-fashion/storage"
	"github.com/okasina/okasina-fashion/storage/db"
)

const numProducts = 30

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/okasina.db"
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	fmt.Println("🌱 Seeding fashion products...")
	fmt.Println()

	generator := synth.New(rng, nil)
	ctx := context.Background()
	created := 0

	for i := 0; i < numProducts; i++ {
		draft := generator.Synthesize(fmt.Sprintf("seed-%03d.jpg", i), fakeCaption())

		tagsJSON, _ := json.Marshal(draft.Tags)
		_, err := store.Queries.CreateProduct(ctx, db.CreateProductParams{
			ID:          uuid.New().String(),
			Name:        draft.Name,
			Description: draft.Description,
			Category:    draft.Category,
			Price:       draft.SuggestedPrice,
			PriceMur:    int64(math.Round(draft.SuggestedPrice * importer.MurPerUSD)),
			ImageUrl:    gofakeit.ImageURL(800, 1000),
			StockQty:    int64(gofakeit.Number(1, 25)),
			IsActive:    sql.NullBool{Bool: true, Valid: true},
			Status:      "active",
			Tags:        sql.NullString{String: string(tagsJSON), Valid: true},
		})
		if err != nil {
			log.Fatalf("Failed to create product: %v", err)
		}
		created++
	}

	fmt.Printf("✅ Seeded %d products into %s\n", created, dbPath)
}

// fakeCaption mimics the kind of caption text the album import sees.
func fakeCaption() string {
	garments := []string{"dress", "shirt", "saree", "kurti", "jacket", "skirt", "scarf", "handbag", "necklace", "gown"}
	colors := []string{"red", "blue", "black", "white", "green", "golden"}
	styles := []string{"casual", "formal", "elegant", "vintage", "modern", "bohemian"}

	return fmt.Sprintf("%s %s %s from %s",
		gofakeit.RandomString(colors),
		gofakeit.RandomString(styles),
		gofakeit.RandomString(garments),
		gofakeit.Company(),
	)
}
