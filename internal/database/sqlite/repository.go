package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shorturl786/Shorturl31/internal/database"
	"github.com/shorturl786/Shorturl31/internal/models"
)

type urlRecord struct {
	ID          int64     `db:"id"`
	Code        string    `db:"code"`
	OriginalURL string    `db:"original_url"`
	Clicks      int64     `db:"clicks"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *urlRecord) ToURL() *models.URL {
	return &models.URL{
		ID:          r.ID,
		Code:        r.Code,
		OriginalURL: r.OriginalURL,
		Clicks:      r.Clicks,
		CreatedAt:   r.CreatedAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{
		db: db,
	}
}

// Create inserts a new record. The unique index on code makes a conflicting
// insert fail atomically, surfaced as database.ErrCodeExists.
func (r *URLRepository) Create(ctx context.Context, code, originalURL string) (*models.URL, error) {
	const op = "database.sqlite.URLRepository.Create"

	rec := new(urlRecord)
	query := `INSERT INTO urls(code, original_url, created_at)
		VALUES (?, ?, ?)
		RETURNING id, code, original_url, clicks, created_at`

	err := r.db.GetContext(ctx, rec, query, code, originalURL, time.Now().UTC())
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to create url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

// GetByOriginalURL returns the record holding the exact original URL, if any.
func (r *URLRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "database.sqlite.URLRepository.GetByOriginalURL"

	rec := new(urlRecord)
	query := `SELECT id, code, original_url, clicks, created_at
		FROM urls
		WHERE original_url = ?
		LIMIT 1`

	err := r.db.GetContext(ctx, rec, query, originalURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

// ResolveAndCount looks up a record by its exact code and bumps its click
// counter in the same statement, so concurrent resolutions never lose updates.
func (r *URLRepository) ResolveAndCount(ctx context.Context, code string) (*models.URL, error) {
	const op = "database.sqlite.URLRepository.ResolveAndCount"

	rec := new(urlRecord)
	query := `UPDATE urls
		SET clicks = clicks + 1
		WHERE code = ?
		RETURNING id, code, original_url, clicks, created_at`

	err := r.db.GetContext(ctx, rec, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to resolve url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

// GetByCode returns the record for code without touching the click counter.
func (r *URLRepository) GetByCode(ctx context.Context, code string) (*models.URL, error) {
	const op = "database.sqlite.URLRepository.GetByCode"

	rec := new(urlRecord)
	query := `SELECT id, code, original_url, clicks, created_at
		FROM urls
		WHERE code = ?`

	err := r.db.GetContext(ctx, rec, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

// Count returns the total number of stored records.
func (r *URLRepository) Count(ctx context.Context) (int64, error) {
	const op = "database.sqlite.URLRepository.Count"

	var count int64
	query := `SELECT COUNT(*) FROM urls`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count url records: %w", op, err)
	}

	return count, nil
}
