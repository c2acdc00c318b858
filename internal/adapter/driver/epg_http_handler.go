package driver

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alorle/tvdesk/internal/application"
)

// EPGHTTPHandler handles HTTP requests for EPG operations.
type EPGHTTPHandler struct {
	service *application.EPGService
}

// NewEPGHTTPHandler creates a new HTTP handler for EPG operations.
func NewEPGHTTPHandler(service *application.EPGService) *EPGHTTPHandler {
	return &EPGHTTPHandler{service: service}
}

// loadGuideRequest represents the JSON body for loading a guide.
type loadGuideRequest struct {
	URL        string   `json:"url"`
	ChannelIDs []string `json:"channelIds"`
}

// guideResponse summarizes the loaded guide.
type guideResponse struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`
	Channels  []string  `json:"channels"`
}

// handleLoad handles POST /api/epg/load
func (h *EPGHTTPHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadGuideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	g, err := h.service.Load(r.Context(), req.URL, req.ChannelIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, guideResponse{
		URL:       g.URL,
		FetchedAt: g.FetchedAt,
		Channels:  g.ChannelIDs(),
	})
}

// handleGuide handles GET /api/epg
func (h *EPGHTTPHandler) handleGuide(w http.ResponseWriter, r *http.Request) {
	g := h.service.Guide()
	writeJSON(w, http.StatusOK, guideResponse{
		URL:       g.URL,
		FetchedAt: g.FetchedAt,
		Channels:  g.ChannelIDs(),
	})
}

// handleSchedule handles GET /api/epg/{channelID}
func (h *EPGHTTPHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelID"]
	writeJSON(w, http.StatusOK, h.service.Schedule(channelID))
}

// handleClear handles DELETE /api/epg
func (h *EPGHTTPHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
