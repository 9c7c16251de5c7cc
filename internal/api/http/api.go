package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shorturl786/Shorturl31/internal/database"
	"github.com/shorturl786/Shorturl31/internal/models"
	"github.com/shorturl786/Shorturl31/internal/service"
	"github.com/shorturl786/Shorturl31/pkg/response"
)

type urlRequest struct {
	URL string `json:"url" validate:"required"`
}

type urlResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	Clicks    int64     `json:"clicks,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toURLResponse(url *models.URL) urlResponse {
	return urlResponse{
		ID:        url.ID,
		Code:      url.Code,
		URL:       url.OriginalURL,
		CreatedAt: url.CreatedAt,
	}
}

type statsResponse struct {
	TotalURLs int64 `json:"total_urls"`
}

func handleAPIShorten(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleAPIShorten"
	const successMsg = "The URL has been shortened successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req urlRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		originalURL := service.NormalizeURL(req.URL)
		if originalURL == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.InvalidURLResponse)
			return
		}

		url, err := svc.Shorten(r.Context(), originalURL)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toURLResponse(url)))
	}
}

func handleAPIURLStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleAPIURLStats"
	const successMsg = "The URL statistics retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		url, err := svc.URLStats(r.Context(), code)
		if err != nil {
			if errors.Is(err, database.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		data := toURLResponse(url)
		data.Clicks = url.Clicks

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, data))
	}
}

func handleAPIStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleAPIStats"
	const successMsg = "The service statistics retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.TotalURLs(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, statsResponse{TotalURLs: total}))
	}
}
