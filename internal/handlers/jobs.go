package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/storage/db"
)

type JobsHandler struct {
	queries *db.Queries
}

func NewJobsHandler(queries *db.Queries) *JobsHandler {
	return &JobsHandler{queries: queries}
}

type importJobResponse struct {
	ID              string     `json:"id"`
	AlbumID         string     `json:"album_id"`
	AlbumName       string     `json:"album_name"`
	TotalItems      int64      `json:"total_items"`
	ProcessedItems  int64      `json:"processed_items"`
	ProductsCreated int64      `json:"products_created"`
	Status          string     `json:"status"`
	Error           string     `json:"error,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func (h *JobsHandler) HandleListImportJobs(c echo.Context) error {
	jobs, err := h.queries.ListImportJobs(c.Request().Context(), db.ListImportJobsParams{
		Limit:  20,
		Offset: 0,
	})
	if err != nil {
		slog.Error("failed to list import jobs", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list import jobs")
	}

	response := make([]importJobResponse, len(jobs))
	for i, j := range jobs {
		resp := importJobResponse{
			ID:              j.ID,
			AlbumID:         j.AlbumID,
			AlbumName:       j.AlbumName,
			TotalItems:      j.TotalItems.Int64,
			ProcessedItems:  j.ProcessedItems.Int64,
			ProductsCreated: j.ProductsCreated.Int64,
			Status:          j.Status,
			Error:           j.ErrorMessage.String,
			StartedAt:       j.StartedAt,
		}
		if j.CompletedAt.Valid {
			t := j.CompletedAt.Time
			resp.CompletedAt = &t
		}
		response[i] = resp
	}

	return c.JSON(http.StatusOK, response)
}
