package driver

import (
	"net/http"

	"github.com/alorle/tvdesk/internal/application"
)

// LogoHTTPHandler handles HTTP requests for the logo cache.
type LogoHTTPHandler struct {
	service *application.LogoService
}

// NewLogoHTTPHandler creates a new HTTP handler for the logo cache.
func NewLogoHTTPHandler(service *application.LogoService) *LogoHTTPHandler {
	return &LogoHTTPHandler{service: service}
}

// logoResponse represents the JSON response for a resolved logo.
type logoResponse struct {
	URL     string `json:"url"`
	Locator string `json:"locator"`
}

// handleResolve handles GET /api/logos?url=
func (h *LogoHTTPHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	locator, err := h.service.Resolve(r.Context(), url)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logoResponse{URL: url, Locator: locator})
}

// handlePurge handles DELETE /api/logos
func (h *LogoHTTPHandler) handlePurge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Purge(); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReset handles POST /api/logos/reset
func (h *LogoHTTPHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset()
	w.WriteHeader(http.StatusNoContent)
}
