package driver

import (
	"bytes"
	"net/http"

	"github.com/alorle/tvdesk/internal/application"
	"github.com/alorle/tvdesk/internal/channel"
	"github.com/alorle/tvdesk/internal/playlist"
)

// PlaylistHTTPHandler handles HTTP requests for playlist operations.
type PlaylistHTTPHandler struct {
	playlists *application.PlaylistService
	library   *application.LibraryService
}

// NewPlaylistHTTPHandler creates a new HTTP handler for playlist operations.
func NewPlaylistHTTPHandler(playlists *application.PlaylistService, library *application.LibraryService) *PlaylistHTTPHandler {
	return &PlaylistHTTPHandler{
		playlists: playlists,
		library:   library,
	}
}

// fetchPlaylistRequest represents the JSON body for fetching a playlist.
// PlaylistID selects a saved playlist and takes precedence over URL.
type fetchPlaylistRequest struct {
	URL        string            `json:"url"`
	PlaylistID string            `json:"playlistId,omitempty"`
	Headers    *playlist.Headers `json:"headers,omitempty"`
}

// exportPlaylistRequest represents the JSON body for exporting channels.
type exportPlaylistRequest struct {
	Channels []channel.Channel `json:"channels"`
	EPGURLs  []string          `json:"epgUrls,omitempty"`
}

// handleFetch handles POST /api/playlists/fetch
func (h *PlaylistHTTPHandler) handleFetch(w http.ResponseWriter, r *http.Request) {
	var req fetchPlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	url := req.URL
	var headers playlist.Headers
	if req.Headers != nil {
		headers = *req.Headers
	}

	if req.PlaylistID != "" {
		settings, err := h.library.Settings(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		saved, err := settings.FindPlaylist(req.PlaylistID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		url = saved.URL
		if req.Headers == nil {
			headers = saved.RequestHeaders()
		}
	}

	p, err := h.playlists.Load(r.Context(), url, headers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleParse handles POST /api/playlists/parse with a raw M3U body
func (h *PlaylistHTTPHandler) handleParse(w http.ResponseWriter, r *http.Request) {
	channels, err := h.playlists.ParseReader(http.MaxBytesReader(w, r.Body, maxPlaylistBodyBytes))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, channels)
}

// handleExport handles POST /api/playlists/export
func (h *PlaylistHTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportPlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.playlists.Export(&buf, req.Channels, req.EPGURLs); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpegurl")
	w.Header().Set("Content-Disposition", `attachment; filename="playlist.m3u"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
