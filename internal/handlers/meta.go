package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/internal/meta"
)

// PageClient is the slice of the Graph client the handlers use.
type PageClient interface {
	ListAlbums(ctx context.Context) ([]meta.Album, error)
	PageMetrics(ctx context.Context) (*meta.Metrics, error)
}

// AlbumImporter runs the import batch.
type AlbumImporter interface {
	ImportAlbum(ctx context.Context, req importer.Request) (*importer.Result, error)
}

// MetaHandler serves the social-media endpoints. A nil client or importer
// means the corresponding configuration is missing; requests fail before any
// outbound call.
type MetaHandler struct {
	client   PageClient
	importer AlbumImporter
}

func NewMetaHandler(client PageClient, albumImporter AlbumImporter) *MetaHandler {
	return &MetaHandler{client: client, importer: albumImporter}
}

func (h *MetaHandler) HandleListAlbums(c echo.Context) error {
	if h.client == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Missing FB_PAGE_ID or FB_ACCESS_TOKEN"})
	}

	albums, err := h.client.ListAlbums(c.Request().Context())
	if err != nil {
		slog.Error("failed to list albums", "error", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"albums": albums})
}

func (h *MetaHandler) HandleMetrics(c echo.Context) error {
	if h.client == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Missing FB_PAGE_ID or FB_ACCESS_TOKEN"})
	}

	metrics, err := h.client.PageMetrics(c.Request().Context())
	if err != nil {
		slog.Error("failed to fetch page metrics", "error", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, metrics)
}

type importAlbumRequest struct {
	AlbumID        string `json:"albumId"`
	AlbumName      string `json:"albumName"`
	UseAI          bool   `json:"useAI"`
	CreateProducts *bool  `json:"createProducts"`
}

func (h *MetaHandler) HandleImportAlbum(c echo.Context) error {
	var req importAlbumRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.AlbumID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing albumId"})
	}
	if h.client == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Missing FB_ACCESS_TOKEN"})
	}
	if h.importer == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Missing storage configuration"})
	}

	// Rows are created unless the caller explicitly opts out.
	createProducts := true
	if req.CreateProducts != nil {
		createProducts = *req.CreateProducts
	}

	result, err := h.importer.ImportAlbum(c.Request().Context(), importer.Request{
		AlbumID:        req.AlbumID,
		AlbumName:      req.AlbumName,
		UseAI:          req.UseAI,
		CreateProducts: createProducts,
	})
	if err != nil {
		// The only hard failure is the photo listing, before any write.
		slog.Error("album import failed", "error", err, "album", req.AlbumID)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
