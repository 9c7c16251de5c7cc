package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/shorturl786/Shorturl31/internal/database"
	"github.com/shorturl786/Shorturl31/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/style.css
var styleCSS []byte

// pages holds the parsed HTML page templates, each paired with the shared
// layout.
type pages struct {
	index       *template.Template
	result      *template.Template
	urlError    *template.Template
	notFound    *template.Template
	serverError *template.Template
	stats       *template.Template
}

func parsePages() *pages {
	parse := func(name string) *template.Template {
		return template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name))
	}

	return &pages{
		index:       parse("index.html"),
		result:      parse("result.html"),
		urlError:    parse("error.html"),
		notFound:    parse("notfound.html"),
		serverError: parse("servererror.html"),
		stats:       parse("stats.html"),
	}
}

func (p *pages) render(w http.ResponseWriter, r *http.Request, statusCode int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": "api.http.render", "err": err})
	}
}

type resultData struct {
	Original string
	ShortURL string
}

type statsData struct {
	Total int64
}

func handleIndex(pages *pages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages.render(w, r, http.StatusOK, pages.index, nil)
	}
}

func handleShorten(pages *pages, svc URLService) http.HandlerFunc {
	const op = "api.http.handleShorten"

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/url-error.php", http.StatusFound)
			return
		}

		originalURL := service.NormalizeURL(r.PostFormValue("url"))
		if originalURL == "" {
			http.Redirect(w, r, "/url-error.php", http.StatusFound)
			return
		}

		url, err := svc.Shorten(r.Context(), originalURL)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			pages.render(w, r, http.StatusInternalServerError, pages.serverError, nil)
			return
		}

		pages.render(w, r, http.StatusOK, pages.result, resultData{
			Original: url.OriginalURL,
			ShortURL: fmt.Sprintf("%s://%s/%s", requestScheme(r), r.Host, url.Code),
		})
	}
}

func handleURLError(pages *pages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages.render(w, r, http.StatusBadRequest, pages.urlError, nil)
	}
}

func handleStats(pages *pages, svc URLService) http.HandlerFunc {
	const op = "api.http.handleStats"

	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.TotalURLs(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			pages.render(w, r, http.StatusInternalServerError, pages.serverError, nil)
			return
		}

		pages.render(w, r, http.StatusOK, pages.stats, statsData{Total: total})
	}
}

func handleRedirect(pages *pages, svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		url, err := svc.Resolve(r.Context(), code)
		if err != nil {
			if errors.Is(err, database.ErrURLNotFound) {
				pages.render(w, r, http.StatusNotFound, pages.notFound, nil)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			pages.render(w, r, http.StatusInternalServerError, pages.serverError, nil)
			return
		}

		http.Redirect(w, r, url.OriginalURL, http.StatusFound)
	}
}

func handleNotFound(pages *pages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages.render(w, r, http.StatusNotFound, pages.notFound, nil)
	}
}

func handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(styleCSS)
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
