package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/arbor/internal/apperr"
	"github.com/starford/arbor/internal/filter"
	"github.com/starford/arbor/internal/noteservice"
	"github.com/starford/arbor/internal/viewer"
)

// crawlHint tells the user how to produce the missing storage file.
const crawlHint = "run the crawl command first"

// Query parameters that are not column filters.
var reservedParams = map[string]bool{
	"root":      true,
	"direction": true,
}

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// nodeName extracts the record name from the URL. chi matches on RawPath
// when it is set (names holding an escaped slash), leaving the parameter
// escaped; otherwise the parameter is already decoded.
func nodeName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return name
	}
	return decoded
}

// viewQuery reads root, direction and column filters from the URL query.
// Every other parameter is a column filter; repeating it accepts several
// values.
func viewQuery(q url.Values) noteservice.ViewQuery {
	c := make(filter.Constraints)
	for col, values := range q {
		if reservedParams[col] {
			continue
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				c[col] = append(c[col], v)
			}
		}
	}
	return noteservice.ViewQuery{
		Root:      q.Get("root"),
		Direction: viewer.ParseDirection(q.Get("direction")),
		Filters:   c,
	}
}

// writeLoadError maps a service error to a response.
func writeLoadError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errResponse{Error: "records not found", Hint: crawlHint})
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// View handles GET /api/view.
//
//	@Summary		Resolve the tree for a root, direction and filters
//	@Tags			tree
//	@Produce		json
//	@Param			root		query		string	false	"Root name"
//	@Param			direction	query		string	false	"Orientation"	Enums(descendants, ancestors)
//	@Success		200			{object}	ViewResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.View(r.Context(), viewQuery(r.URL.Query()))
	if err != nil {
		writeLoadError(w, "view", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Node handles GET /api/nodes/{name}.
//
//	@Summary		Get the details of one record
//	@Tags			tree
//	@Produce		json
//	@Param			name	path		string	true	"Record name"
//	@Success		200		{object}	NodeResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/nodes/{name} [get]
func (h *Handler) Node(w http.ResponseWriter, r *http.Request) {
	name := nodeName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	d, err := h.svc.Node(r.Context(), name)
	if errors.Is(err, apperr.ErrUnknownRecord) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	if err != nil {
		writeLoadError(w, "node", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Roots handles GET /api/roots.
//
//	@Summary		List root names
//	@Tags			tree
//	@Produce		json
//	@Success		200	{object}	RootsResponse
//	@Security		BearerAuth
//	@Router			/roots [get]
func (h *Handler) Roots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.svc.Roots(r.Context())
	if err != nil {
		writeLoadError(w, "roots", err)
		return
	}
	writeJSON(w, http.StatusOK, RootsResponse{Roots: roots})
}

// Stats handles GET /api/stats.
//
//	@Summary		Summarise roots, leaves and orphans
//	@Tags			tree
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeLoadError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Reload handles POST /api/reload.
//
//	@Summary		Re-read the storage file
//	@Tags			tree
//	@Produce		json
//	@Success		200	{object}	ReloadResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Reload(r.Context())
	if err != nil {
		writeLoadError(w, "reload", err)
		return
	}
	slog.Info("records reloaded", slog.Int("total", res.Total), slog.Bool("changed", res.Changed))
	writeJSON(w, http.StatusOK, res)
}
