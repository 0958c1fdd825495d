package storage

import (
	"database/sql"

	_ "github.com/lib/pq"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/internal/scraper"
	apperr "stayscan/hotelworker/pkg/errors"
)

// PostgresWriter flattens crawl documents into a hotels table, one row per
// hotel per crawl date.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens and verifies a connection using a lib/pq DSN
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperr.NewStorage("open", "failed to open database", err)
	}
	if err := db.Ping(); err != nil {
		return nil, apperr.NewStorage("ping", "failed to ping database", err)
	}
	return &PostgresWriter{db: db}, nil
}

func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

// EnsureSchema creates the hotels table and its indexes if missing
func (w *PostgresWriter) EnsureSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS hotels (
		id SERIAL PRIMARY KEY,
		city VARCHAR(255) NOT NULL,
		name TEXT NOT NULL,
		location VARCHAR(255),
		stars VARCHAR(20),
		price_text VARCHAR(100),
		price_amount NUMERIC(12, 2),
		rating NUMERIC(3, 1),
		review_count INTEGER,
		detail_url TEXT NOT NULL,
		room_count INTEGER NOT NULL DEFAULT 0,
		image_count INTEGER NOT NULL DEFAULT 0,
		scraped_date DATE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (detail_url, scraped_date)
	);

	CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels(city);
	CREATE INDEX IF NOT EXISTS idx_hotels_rating ON hotels(rating);
	CREATE INDEX IF NOT EXISTS idx_hotels_scraped_date ON hotels(scraped_date);
	`

	if _, err := w.db.Exec(query); err != nil {
		return apperr.NewStorage("schema", "failed to create hotels table", err)
	}
	return nil
}

// SaveDocument inserts every hotel of the document in one transaction.
// Re-running the same crawl date upserts nothing thanks to the unique
// constraint.
func (w *PostgresWriter) SaveDocument(doc *scraper.Document) error {
	if len(doc.Hotels) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return apperr.NewStorage("insert", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO hotels (city, name, location, stars, price_text, price_amount,
			rating, review_count, detail_url, room_count, image_count, scraped_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (detail_url, scraped_date) DO NOTHING
	`)
	if err != nil {
		return apperr.NewStorage("insert", "failed to prepare statement", err)
	}
	defer stmt.Close()

	for _, hotel := range doc.Hotels {
		var amount sql.NullFloat64
		if v, ok := helpers.NumericAmount(hotel.Price); ok {
			amount = sql.NullFloat64{Float64: v, Valid: true}
		}

		var rating sql.NullFloat64
		var reviews sql.NullInt64
		if hotel.Rating != nil {
			if hotel.Rating.Value != nil {
				rating = sql.NullFloat64{Float64: *hotel.Rating.Value, Valid: true}
			}
			if hotel.Rating.Count != nil {
				reviews = sql.NullInt64{Int64: int64(*hotel.Rating.Count), Valid: true}
			}
		}

		_, err := stmt.Exec(
			doc.City,
			hotel.Name,
			hotel.Location,
			hotel.Stars,
			hotel.Price,
			amount,
			rating,
			reviews,
			hotel.DetailURL,
			len(hotel.Rooms),
			len(hotel.Images),
			doc.Metadata.ScrapingDate,
		)
		if err != nil {
			return apperr.NewStorage("insert", "failed to insert hotel "+hotel.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.NewStorage("insert", "failed to commit transaction", err)
	}
	return nil
}
