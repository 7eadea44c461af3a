package db

import (
	"database/sql"
	"time"
)

type Product struct {
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
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ImportJob struct {
	ID              string
	AlbumID         string
	AlbumName       string
	TotalItems      sql.NullInt64
	ProcessedItems  sql.NullInt64
	ProductsCreated sql.NullInt64
	Status          string
	ErrorMessage    sql.NullString
	StartedAt       time.Time
	CompletedAt     sql.NullTime
}
