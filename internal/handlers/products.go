package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/storage/db"
)

type ProductsHandler struct {
	queries *db.Queries
}

func NewProductsHandler(queries *db.Queries) *ProductsHandler {
	return &ProductsHandler{queries: queries}
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	StockQty    int64    `json:"stock_qty"`
	IsActive    bool     `json:"is_active"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	PriceMur    int64     `json:"price_mur"`
	ImageURL    string    `json:"image_url"`
	StockQty    int64     `json:"stock_qty"`
	IsActive    bool      `json:"is_active"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *ProductsHandler) HandleListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		products []db.Product
		err      error
	)
	if status := c.QueryParam("status"); status != "" {
		products, err = h.queries.ListProductsByStatus(ctx, status)
	} else {
		products, err = h.queries.ListProducts(ctx)
	}
	if err != nil {
		slog.Error("failed to list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list products")
	}

	response := make([]productResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *ProductsHandler) HandleGetProduct(c echo.Context) error {
	id := c.Param("id")
	product, err := h.queries.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		slog.Error("failed to get product", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get product")
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *ProductsHandler) HandleCreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing name")
	}
	if req.Status == "" {
		req.Status = "draft"
	}

	product, err := h.queries.CreateProduct(c.Request().Context(), db.CreateProductParams{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceMur:    murPrice(req.Price),
		ImageUrl:    req.ImageURL,
		StockQty:    req.StockQty,
		IsActive:    sql.NullBool{Bool: req.IsActive, Valid: true},
		Status:      req.Status,
		Tags:        encodeTags(req.Tags),
	})
	if err != nil {
		slog.Error("failed to create product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *ProductsHandler) HandleUpdateProduct(c echo.Context) error {
	id := c.Param("id")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.queries.UpdateProduct(c.Request().Context(), db.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceMur:    murPrice(req.Price),
		ImageUrl:    req.ImageURL,
		StockQty:    req.StockQty,
		IsActive:    sql.NullBool{Bool: req.IsActive, Valid: true},
		Status:      req.Status,
		Tags:        encodeTags(req.Tags),
		ID:          id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		slog.Error("failed to update product", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *ProductsHandler) HandleDeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.queries.DeleteProduct(c.Request().Context(), id); err != nil {
		slog.Error("failed to delete product", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}

// HandlePublishDrafts promotes every draft row to active in one statement.
func (h *ProductsHandler) HandlePublishDrafts(c echo.Context) error {
	ctx := c.Request().Context()

	published, err := h.queries.PublishDraftProducts(ctx)
	if err != nil {
		slog.Error("failed to publish drafts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to publish drafts")
	}

	active, err := h.queries.CountProductsByStatus(ctx, "active")
	if err != nil {
		slog.Error("failed to count active products", "error", err)
	}

	slog.Info("published draft products", "published", published, "active_total", active)
	return c.JSON(http.StatusOK, echo.Map{
		"published":   published,
		"activeTotal": active,
	})
}

func toProductResponse(p db.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		PriceMur:    p.PriceMur,
		ImageURL:    p.ImageUrl,
		StockQty:    p.StockQty,
		IsActive:    p.IsActive.Valid && p.IsActive.Bool,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Tags.Valid && p.Tags.String != "" {
		var tags []string
		if err := json.Unmarshal([]byte(p.Tags.String), &tags); err == nil {
			resp.Tags = tags
		}
	}
	return resp
}

func murPrice(price float64) int64 {
	return int64(math.Round(price * importer.MurPerUSD))
}

func encodeTags(tags []string) sql.NullString {
	if len(tags) == 0 {
		return sql.NullString{}
	}
	raw, _ := json.Marshal(tags)
	return sql.NullString{String: string(raw), Valid: true}
}
