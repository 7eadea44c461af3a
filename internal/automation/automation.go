// Package automation interprets a flat list of tagged actions against the
// real catalog. Each step reports how many rows it touched; a failing step
// is recorded and the run continues, mirroring the per-item policy of the
// import batch.
package automation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/storage/db"
)

const (
	ActionFilterByStatus = "filter_by_status"
	ActionAdjustPrice    = "adjust_price"
	ActionAddTag         = "add_tag"
	ActionPostToSocial   = "post_to_social"
)

// Action is one tagged step. Only the fields of its Type are read.
type Action struct {
	Type string `json:"type"`
	// filter_by_status
	Status string `json:"status,omitempty"`
	// adjust_price: percentage applied to the current price, e.g. 10 or -15.
	Percent float64 `json:"percent,omitempty"`
	// add_tag
	Tag string `json:"tag,omitempty"`
	// post_to_social
	Message string `json:"message,omitempty"`
}

type StepResult struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
	Detail   string `json:"detail,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Poster publishes a message on the connected social page.
type Poster interface {
	PostToFeed(ctx context.Context, message string) (string, error)
}

type Runner struct {
	queries *db.Queries
	poster  Poster
}

func NewRunner(queries *db.Queries, poster Poster) *Runner {
	return &Runner{queries: queries, poster: poster}
}

// Run executes the actions in order. Mutating steps operate on the current
// selection; until a filter runs, the selection is the whole catalog.
func (r *Runner) Run(ctx context.Context, actions []Action) []StepResult {
	results := make([]StepResult, 0, len(actions))

	var selection []db.Product
	selected := false

	for _, action := range actions {
		step := StepResult{Action: action.Type}

		switch action.Type {
		case ActionFilterByStatus:
			products, err := r.queries.ListProductsByStatus(ctx, action.Status)
			if err != nil {
				step.Error = err.Error()
				break
			}
			selection = products
			selected = true
			step.Affected = len(products)
			step.Detail = fmt.Sprintf("selected products with status %q", action.Status)

		case ActionAdjustPrice:
			products, err := r.currentSelection(ctx, selection, selected)
			if err != nil {
				step.Error = err.Error()
				break
			}
			for i, p := range products {
				newPrice := math.Round(p.Price*(1+action.Percent/100)*100) / 100
				err := r.queries.UpdateProductPricing(ctx, db.UpdateProductPricingParams{
					Price:    newPrice,
					PriceMur: int64(math.Round(newPrice * importer.MurPerUSD)),
					ID:       p.ID,
				})
				if err != nil {
					slog.Error("failed to adjust price", "error", err, "product", p.ID)
					continue
				}
				products[i].Price = newPrice
				step.Affected++
			}
			selection = products
			step.Detail = fmt.Sprintf("adjusted prices by %+.1f%%", action.Percent)

		case ActionAddTag:
			products, err := r.currentSelection(ctx, selection, selected)
			if err != nil {
				step.Error = err.Error()
				break
			}
			for _, p := range products {
				tags := decodeTags(p.Tags)
				if containsTag(tags, action.Tag) {
					continue
				}
				tagsJSON, _ := json.Marshal(append(tags, action.Tag))
				err := r.queries.UpdateProductTags(ctx, db.UpdateProductTagsParams{
					Tags: sql.NullString{String: string(tagsJSON), Valid: true},
					ID:   p.ID,
				})
				if err != nil {
					slog.Error("failed to add tag", "error", err, "product", p.ID)
					continue
				}
				step.Affected++
			}
			step.Detail = fmt.Sprintf("added tag %q", action.Tag)

		case ActionPostToSocial:
			if r.poster == nil {
				step.Error = "social posting is not configured"
				break
			}
			postID, err := r.poster.PostToFeed(ctx, action.Message)
			if err != nil {
				step.Error = err.Error()
				break
			}
			step.Affected = 1
			step.Detail = "posted " + postID

		default:
			step.Error = fmt.Sprintf("unknown action type %q", action.Type)
		}

		results = append(results, step)
	}

	return results
}

func (r *Runner) currentSelection(ctx context.Context, selection []db.Product, selected bool) ([]db.Product, error) {
	if selected {
		return selection, nil
	}
	return r.queries.ListProducts(ctx)
}

func decodeTags(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil
	}
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
