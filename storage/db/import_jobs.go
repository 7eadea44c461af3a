package db

import (
	"context"
	"database/sql"
)

const createImportJob = `
INSERT INTO import_jobs (id, album_id, album_name)
VALUES (?, ?, ?)
RETURNING id, album_id, album_name, total_items, processed_items,
    products_created, status, error_message, started_at, completed_at
`

type CreateImportJobParams struct {
	ID        string
	AlbumID   string
	AlbumName string
}

func (q *Queries) CreateImportJob(ctx context.Context, arg CreateImportJobParams) (ImportJob, error) {
	row := q.db.QueryRowContext(ctx, createImportJob, arg.ID, arg.AlbumID, arg.AlbumName)
	return scanImportJob(row)
}

const updateImportJobProgress = `
UPDATE import_jobs SET processed_items = ?, total_items = ? WHERE id = ?
`

type UpdateImportJobProgressParams struct {
	ProcessedItems sql.NullInt64
	TotalItems     sql.NullInt64
	ID             string
}

func (q *Queries) UpdateImportJobProgress(ctx context.Context, arg UpdateImportJobProgressParams) error {
	_, err := q.db.ExecContext(ctx, updateImportJobProgress, arg.ProcessedItems, arg.TotalItems, arg.ID)
	return err
}

const completeImportJob = `
UPDATE import_jobs SET status = 'completed', products_created = ?, completed_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type CompleteImportJobParams struct {
	ProductsCreated sql.NullInt64
	ID              string
}

func (q *Queries) CompleteImportJob(ctx context.Context, arg CompleteImportJobParams) error {
	_, err := q.db.ExecContext(ctx, completeImportJob, arg.ProductsCreated, arg.ID)
	return err
}

const failImportJob = `
UPDATE import_jobs SET status = 'failed', error_message = ?, completed_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type FailImportJobParams struct {
	ErrorMessage sql.NullString
	ID           string
}

func (q *Queries) FailImportJob(ctx context.Context, arg FailImportJobParams) error {
	_, err := q.db.ExecContext(ctx, failImportJob, arg.ErrorMessage, arg.ID)
	return err
}

const getImportJob = `
SELECT id, album_id, album_name, total_items, processed_items,
    products_created, status, error_message, started_at, completed_at
FROM import_jobs WHERE id = ?
`

func (q *Queries) GetImportJob(ctx context.Context, id string) (ImportJob, error) {
	return scanImportJob(q.db.QueryRowContext(ctx, getImportJob, id))
}

const listImportJobs = `
SELECT id, album_id, album_name, total_items, processed_items,
    products_created, status, error_message, started_at, completed_at
FROM import_jobs ORDER BY started_at DESC LIMIT ? OFFSET ?
`

type ListImportJobsParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListImportJobs(ctx context.Context, arg ListImportJobsParams) ([]ImportJob, error) {
	rows, err := q.db.QueryContext(ctx, listImportJobs, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ImportJob
	for rows.Next() {
		var j ImportJob
		if err := rows.Scan(
			&j.ID,
			&j.AlbumID,
			&j.AlbumName,
			&j.TotalItems,
			&j.ProcessedItems,
			&j.ProductsCreated,
			&j.Status,
			&j.ErrorMessage,
			&j.StartedAt,
			&j.CompletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

func scanImportJob(row *sql.Row) (ImportJob, error) {
	var j ImportJob
	err := row.Scan(
		&j.ID,
		&j.AlbumID,
		&j.AlbumName,
		&j.TotalItems,
		&j.ProcessedItems,
		&j.ProductsCreated,
		&j.Status,
		&j.ErrorMessage,
		&j.StartedAt,
		&j.CompletedAt,
	)
	return j, err
}
