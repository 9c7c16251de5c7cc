package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/shorturl786/Shorturl31/internal/models"
)

type URLService interface {
	Shorten(ctx context.Context, originalURL string) (*models.URL, error)
	Resolve(ctx context.Context, code string) (*models.URL, error)
	URLStats(ctx context.Context, code string) (*models.URL, error)
	TotalURLs(ctx context.Context) (int64, error)
}

func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter mounts the HTML pages, the redirect route and the JSON side API.
// The catch-all "/{code}" route never spans a path separator, so only bare
// codes reach the resolver; everything else falls through to the 404 page.
func NewRouter(logger *httplog.Logger, urlSvc URLService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	pages := parsePages()

	r.Get("/", handleIndex(pages))
	r.Post("/", handleShorten(pages, urlSvc))
	r.Get("/url-error.php", handleURLError(pages))
	r.Get("/stats", handleStats(pages, urlSvc))
	r.Get("/static/style.css", handleStylesheet)
	r.Get("/{code}", handleRedirect(pages, urlSvc))
	r.NotFound(handleNotFound(pages))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           84600,
		}))
		r.Use(middleware.AllowContentType("application/json"))

		validate := getValidate()

		r.Post("/shorten", handleAPIShorten(urlSvc, validate))
		r.Get("/stats", handleAPIStats(urlSvc))
		r.Get("/urls/{code}/stats", handleAPIURLStats(urlSvc))
	})

	return r
}
