package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shorturl786/Shorturl31/internal/config"
	"github.com/shorturl786/Shorturl31/internal/database"
	"github.com/shorturl786/Shorturl31/internal/models"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrCodeSpaceExhausted is returned when the retry bound for generating a free
// short code is exhausted, which means the code space is saturated at the
// configured length.
var ErrCodeSpaceExhausted = errors.New("short code space exhausted")

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository.
	// Returns database.ErrCodeExists if the code is already taken.
	Create(ctx context.Context, code, originalURL string) (*models.URL, error)

	// GetByOriginalURL retrieves the record holding the exact original URL.
	// Returns database.ErrURLNotFound if no such record exists.
	GetByOriginalURL(ctx context.Context, originalURL string) (*models.URL, error)

	// ResolveAndCount retrieves a URL by its code and atomically increments
	// its click counter. Returns database.ErrURLNotFound on a miss.
	ResolveAndCount(ctx context.Context, code string) (*models.URL, error)

	// GetByCode retrieves a URL by its code without incrementing the counter.
	GetByCode(ctx context.Context, code string) (*models.URL, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)
}

// GenerateFunc produces a random code of the given size drawn from alphabet.
type GenerateFunc func(alphabet string, size int) (string, error)

// Option configures a URLService.
type Option func(*URLService)

// WithGenerator replaces the default nanoid-backed code generator.
func WithGenerator(fn GenerateFunc) Option {
	return func(s *URLService) {
		s.generate = fn
	}
}

// URLService provides methods to manage URL shortening operations.
// The service uses a URLRepository interface to interact with the underlying database.
type URLService struct {
	repo     URLRepository
	cfg      config.Shortener
	generate GenerateFunc
}

// NewURLService creates a new URLService with the provided repository and
// shortener configuration (code length, alphabet, retry bound).
func NewURLService(repo URLRepository, cfg config.Shortener, opts ...Option) *URLService {
	s := &URLService{
		repo:     repo,
		cfg:      cfg,
		generate: gonanoid.Generate,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shorten returns a short code for the provided normalized URL. A URL that was
// shortened before yields its existing record without creating a new row.
// Otherwise it attempts up to the configured retry bound of generate+insert
// cycles, retrying on code collisions, and returns ErrCodeSpaceExhausted once
// the bound is exhausted.
//
// The dedup probe and the insert are separate store calls, so two concurrent
// first-time submissions of the same URL may each create a row with its own
// code. The unique index on code remains the hard invariant.
func (s *URLService) Shorten(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "service.URLService.Shorten"

	url, err := s.repo.GetByOriginalURL(ctx, originalURL)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, database.ErrURLNotFound) {
		return nil, fmt.Errorf("%s: failed to check for existing url: %w", op, err)
	}

	for i := 0; i < s.cfg.MaxAttempts; i++ {
		code, err := s.generate(s.cfg.Alphabet, s.cfg.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := s.repo.Create(ctx, code, originalURL)
		if err != nil {
			if errors.Is(err, database.ErrCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrCodeSpaceExhausted)
}

// Resolve retrieves the original URL associated with the provided short code
// and records the visit. Resolution is an exact match on the code.
func (s *URLService) Resolve(ctx context.Context, code string) (*models.URL, error) {
	const op = "service.URLService.Resolve"

	url, err := s.repo.ResolveAndCount(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// URLStats retrieves the record for the provided short code without counting
// a visit.
func (s *URLService) URLStats(ctx context.Context, code string) (*models.URL, error) {
	const op = "service.URLService.URLStats"

	url, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// TotalURLs returns the total number of shortened URLs.
func (s *URLService) TotalURLs(ctx context.Context) (int64, error) {
	const op = "service.URLService.TotalURLs"

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count urls: %w", op, err)
	}

	return count, nil
}
