package db

import (
	"context"
	"database/sql"
)

const createProduct = `
INSERT INTO products (
    id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id,
    created_at, updated_at
`

type CreateProductParams struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         float64
	PriceMur      int64
	ImageUrl      string
	StockQty      int64
	IsActive      sql.NullBool
	Status        string
	Tags          sql.NullString
	SourceAlbumID sql.NullString
	SourcePhotoID sql.NullString
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, createProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.Price,
		arg.PriceMur,
		arg.ImageUrl,
		arg.StockQty,
		arg.IsActive,
		arg.Status,
		arg.Tags,
		arg.SourceAlbumID,
		arg.SourcePhotoID,
	)
	return scanProduct(row)
}

const getProduct = `
SELECT id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id,
    created_at, updated_at
FROM products WHERE id = ?
`

func (q *Queries) GetProduct(ctx context.Context, id string) (Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx, getProduct, id))
}

const listProducts = `
SELECT id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id,
    created_at, updated_at
FROM products ORDER BY created_at DESC
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const listProductsByStatus = `
SELECT id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id,
    created_at, updated_at
FROM products WHERE status = ? ORDER BY created_at DESC
`

func (q *Queries) ListProductsByStatus(ctx context.Context, status string) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProductsByStatus, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const countProductsByStatus = `SELECT COUNT(*) FROM products WHERE status = ?`

func (q *Queries) CountProductsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProductsByStatus, status).Scan(&count)
	return count, err
}

const updateProduct = `
UPDATE products SET
    name = ?,
    description = ?,
    category = ?,
    price = ?,
    price_mur = ?,
    image_url = ?,
    stock_qty = ?,
    is_active = ?,
    status = ?,
    tags = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, description, category, price, price_mur, image_url,
    stock_qty, is_active, status, tags, source_album_id, source_photo_id,
    created_at, updated_at
`

type UpdateProductParams struct {
	Name        string
	Description string
	Category    string
	Price       float64
	PriceMur    int64
	ImageUrl    string
	StockQty    int64
	IsActive    sql.NullBool
	Status      string
	Tags        sql.NullString
	ID          string
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, updateProduct,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.Price,
		arg.PriceMur,
		arg.ImageUrl,
		arg.StockQty,
		arg.IsActive,
		arg.Status,
		arg.Tags,
		arg.ID,
	)
	return scanProduct(row)
}

const updateProductPricing = `
UPDATE products SET price = ?, price_mur = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

type UpdateProductPricingParams struct {
	Price    float64
	PriceMur int64
	ID       string
}

func (q *Queries) UpdateProductPricing(ctx context.Context, arg UpdateProductPricingParams) error {
	_, err := q.db.ExecContext(ctx, updateProductPricing, arg.Price, arg.PriceMur, arg.ID)
	return err
}

const updateProductTags = `
UPDATE products SET tags = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

type UpdateProductTagsParams struct {
	Tags sql.NullString
	ID   string
}

func (q *Queries) UpdateProductTags(ctx context.Context, arg UpdateProductTagsParams) error {
	_, err := q.db.ExecContext(ctx, updateProductTags, arg.Tags, arg.ID)
	return err
}

const deleteProduct = `DELETE FROM products WHERE id = ?`

func (q *Queries) DeleteProduct(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteProduct, id)
	return err
}

const publishDraftProducts = `
UPDATE products SET status = 'active', is_active = 1, updated_at = CURRENT_TIMESTAMP
WHERE status = 'draft'
`

// PublishDraftProducts promotes every draft row to active and returns the
// number of rows touched.
func (q *Queries) PublishDraftProducts(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, publishDraftProducts)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanProduct(row *sql.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.PriceMur,
		&p.ImageUrl,
		&p.StockQty,
		&p.IsActive,
		&p.Status,
		&p.Tags,
		&p.SourceAlbumID,
		&p.SourcePhotoID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Category,
			&p.Price,
			&p.PriceMur,
			&p.ImageUrl,
			&p.StockQty,
			&p.IsActive,
			&p.Status,
			&p.Tags,
			&p.SourceAlbumID,
			&p.SourcePhotoID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
