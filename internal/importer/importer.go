// Package importer runs the social album import batch: list photos, relay
// each binary into owned storage, synthesize a draft product, write it to
// the catalog. Failures are per-photo; the batch always runs to completion.
package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/okasina/okasina-fashion/internal/meta"
	"github.com/okasina/okasina-fashion/internal/relay"
	"github.com/okasina/okasina-fashion/internal/synth"
	"github.com/okasina/okasina-fashion/storage/db"
	"github.com/oklog/ulid/v2"
)

// PhotoLimit bounds one import page. Ten photos keeps a full batch within
// the execution ceiling of the serverless hosts this job historically ran on.
const PhotoLimit = 10

// MurPerUSD is the fixed conversion rate applied to every written product.
const MurPerUSD = 45

type PhotoLister interface {
	ListPhotos(ctx context.Context, albumID string, limit int) ([]meta.Photo, error)
}

type ImageRelay interface {
	Copy(ctx context.Context, albumID, photoID, sourceURL string) (string, error)
}

type Request struct {
	AlbumID        string
	AlbumName      string
	UseAI          bool
	CreateProducts bool
}

// ImportedProduct is a synthesized draft plus its stored image URL and, when
// written to the catalog, its row id.
type ImportedProduct struct {
	synth.DraftProduct
	ID       string `json:"id,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// ItemError records one failed photo without failing the batch.
type ItemError struct {
	Photo string `json:"photo"`
	Error string `json:"error"`
}

type Result struct {
	Message         string            `json:"message"`
	ProductsCreated int               `json:"productsCreated"`
	AIUsed          bool              `json:"aiUsed"`
	Products        []ImportedProduct `json:"products"`
	Errors          []ItemError       `json:"errors,omitempty"`
	CSV             string            `json:"csv,omitempty"`
	Logs            []string          `json:"logs"`
}

type Importer struct {
	photos  PhotoLister
	relay   ImageRelay
	synth   *synth.Synthesizer
	queries *db.Queries
}

func New(photos PhotoLister, imageRelay ImageRelay, synthesizer *synth.Synthesizer, queries *db.Queries) *Importer {
	return &Importer{
		photos:  photos,
		relay:   imageRelay,
		synth:   synthesizer,
		queries: queries,
	}
}

// ImportAlbum runs one import batch. The photo listing is the only hard
// failure: it surfaces before any write happens. Everything after that is
// per-photo — a failed download, upload, or insert is recorded in
// Result.Errors and the loop moves on.
func (imp *Importer) ImportAlbum(ctx context.Context, req Request) (*Result, error) {
	var logs []string
	log := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		slog.Info(msg, "album", req.AlbumID)
		logs = append(logs, msg)
	}

	log("Starting import for album: %s (%s)", req.AlbumID, req.AlbumName)

	jobID := ulid.Make().String()
	if _, err := imp.queries.CreateImportJob(ctx, db.CreateImportJobParams{
		ID:        jobID,
		AlbumID:   req.AlbumID,
		AlbumName: req.AlbumName,
	}); err != nil {
		slog.Error("failed to create import job", "error", err, "album", req.AlbumID)
	}

	log("Fetching photos...")
	photos, err := imp.photos.ListPhotos(ctx, req.AlbumID, PhotoLimit)
	if err != nil {
		imp.failJob(ctx, jobID, err)
		return nil, fmt.Errorf("fetch album photos: %w", err)
	}
	log("Found %d photos.", len(photos))

	if len(photos) == 0 {
		imp.completeJob(ctx, jobID, 0)
		return &Result{
			Message: "No photos found in this album.",
			Logs:    logs,
		}, nil
	}

	if err := imp.queries.UpdateImportJobProgress(ctx, db.UpdateImportJobProgressParams{
		ProcessedItems: sql.NullInt64{Int64: 0, Valid: true},
		TotalItems:     sql.NullInt64{Int64: int64(len(photos)), Valid: true},
		ID:             jobID,
	}); err != nil {
		slog.Error("failed to update job progress", "error", err, "job_id", jobID)
	}

	var (
		products []ImportedProduct
		errors   []ItemError
		aiUsed   bool
	)

	for i, photo := range photos {
		log("Processing photo %d/%d: %s", i+1, len(photos), photo.ID)

		if photo.SourceURL == "" {
			log("Skipping %s: no image source", photo.ID)
			continue
		}

		imageURL, err := imp.relay.Copy(ctx, req.AlbumID, photo.ID, photo.SourceURL)
		if err != nil {
			log("Relay failed for %s: %v", photo.ID, err)
			errors = append(errors, ItemError{Photo: photo.ID, Error: err.Error()})
			continue
		}

		filename := relay.ObjectKey(req.AlbumID, photo.ID)
		var draft synth.DraftProduct
		if req.UseAI {
			var used bool
			draft, used = imp.synth.SynthesizeWithAI(ctx, filename, req.AlbumName)
			aiUsed = aiUsed || used
		} else {
			draft = imp.synth.Synthesize(filename, req.AlbumName)
		}

		item := ImportedProduct{DraftProduct: draft, ImageURL: imageURL}

		if req.CreateProducts {
			product, err := imp.writeProduct(ctx, req, photo.ID, draft, imageURL)
			if err != nil {
				log("DB insert failed for %s: %v", photo.ID, err)
				errors = append(errors, ItemError{Photo: photo.ID, Error: err.Error()})
				continue
			}
			item.ID = product.ID
			log("Created product: %s", draft.Name)
		}

		products = append(products, item)

		if err := imp.queries.UpdateImportJobProgress(ctx, db.UpdateImportJobProgressParams{
			ProcessedItems: sql.NullInt64{Int64: int64(i + 1), Valid: true},
			TotalItems:     sql.NullInt64{Int64: int64(len(photos)), Valid: true},
			ID:             jobID,
		}); err != nil {
			slog.Error("failed to update job progress", "error", err, "job_id", jobID)
		}
	}

	imp.completeJob(ctx, jobID, len(products))

	return &Result{
		Message:         fmt.Sprintf("Successfully processed %d photos.", len(products)),
		ProductsCreated: len(products),
		AIUsed:          aiUsed,
		Products:        products,
		Errors:          errors,
		CSV:             BuildCSV(products),
		Logs:            logs,
	}, nil
}

func (imp *Importer) writeProduct(ctx context.Context, req Request, photoID string, draft synth.DraftProduct, imageURL string) (db.Product, error) {
	tagsJSON, _ := json.Marshal(draft.Tags)

	return imp.queries.CreateProduct(ctx, db.CreateProductParams{
		ID:            uuid.New().String(),
		Name:          draft.Name,
		Description:   draft.Description,
		Category:      draft.Category,
		Price:         draft.SuggestedPrice,
		PriceMur:      int64(math.Round(draft.SuggestedPrice * MurPerUSD)),
		ImageUrl:      imageURL,
		StockQty:      10,
		IsActive:      sql.NullBool{Bool: false, Valid: true},
		Status:        "draft",
		Tags:          sql.NullString{String: string(tagsJSON), Valid: len(draft.Tags) > 0},
		SourceAlbumID: sql.NullString{String: req.AlbumID, Valid: true},
		SourcePhotoID: sql.NullString{String: photoID, Valid: true},
	})
}

func (imp *Importer) completeJob(ctx context.Context, jobID string, created int) {
	if err := imp.queries.CompleteImportJob(ctx, db.CompleteImportJobParams{
		ProductsCreated: sql.NullInt64{Int64: int64(created), Valid: true},
		ID:              jobID,
	}); err != nil {
		slog.Error("failed to complete import job", "error", err, "job_id", jobID)
	}
}

func (imp *Importer) failJob(ctx context.Context, jobID string, cause error) {
	if err := imp.queries.FailImportJob(ctx, db.FailImportJobParams{
		ErrorMessage: sql.NullString{String: cause.Error(), Valid: true},
		ID:           jobID,
	}); err != nil {
		slog.Error("failed to mark import job failed", "error", err, "job_id", jobID)
	}
}
