package driver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alorle/tvdesk/internal/application"
	"github.com/alorle/tvdesk/internal/playlist"
)

// maxSettingsBodyBytes bounds imported settings documents.
const maxSettingsBodyBytes = 4 << 20

// SettingsHTTPHandler handles HTTP requests for the user library.
type SettingsHTTPHandler struct {
	service *application.LibraryService
}

// NewSettingsHTTPHandler creates a new HTTP handler for the user library.
func NewSettingsHTTPHandler(service *application.LibraryService) *SettingsHTTPHandler {
	return &SettingsHTTPHandler{service: service}
}

// volumeRequest represents the JSON body for setting the player volume.
type volumeRequest struct {
	Volume int `json:"volume"`
}

// savePlaylistRequest represents the JSON body for saving a playlist source.
type savePlaylistRequest struct {
	URL     string            `json:"url"`
	Name    string            `json:"name"`
	Headers *playlist.Headers `json:"customHeaders,omitempty"`
	EPGURL  string            `json:"epgUrl,omitempty"`
}

// updatePlaylistRequest represents the JSON body for updating a saved
// playlist. Absent fields are left unchanged.
type updatePlaylistRequest struct {
	Headers *playlist.Headers `json:"customHeaders,omitempty"`
	EPGURL  *string           `json:"epgUrl,omitempty"`
}

// favoriteResponse reports the favorite state after a toggle.
type favoriteResponse struct {
	ChannelID string   `json:"channelId"`
	Favorite  bool     `json:"favorite"`
	Favorites []string `json:"favorites"`
}

// favoriteStateResponse reports whether a single channel is a favorite.
type favoriteStateResponse struct {
	ChannelID string `json:"channelId"`
	Favorite  bool   `json:"favorite"`
}

// handleGet handles GET /api/settings
func (h *SettingsHTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleExport handles GET /api/settings/export
func (h *SettingsHTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="tvdesk-settings.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImport handles PUT /api/settings with an exported settings document
func (h *SettingsHTTPHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r, maxSettingsBodyBytes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	settings, err := h.service.Import(r.Context(), data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleIsFavorite handles GET /api/settings/favorites/{channelID}
func (h *SettingsHTTPHandler) handleIsFavorite(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelID"]

	favorite, err := h.service.IsFavorite(r.Context(), channelID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteStateResponse{ChannelID: channelID, Favorite: favorite})
}

// handleToggleFavorite handles POST /api/settings/favorites/{channelID}
func (h *SettingsHTTPHandler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelID"]

	settings, err := h.service.ToggleFavorite(r.Context(), channelID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoriteResponse{
		ChannelID: channelID,
		Favorite:  settings.IsFavorite(channelID),
		Favorites: settings.Favorites,
	})
}

// handleRecentlyWatched handles POST /api/settings/recent/{channelID}
func (h *SettingsHTTPHandler) handleRecentlyWatched(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.AddRecentlyWatched(r.Context(), mux.Vars(r)["channelID"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleVolume handles PUT /api/settings/volume
func (h *SettingsHTTPHandler) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	settings, err := h.service.SetVolume(r.Context(), req.Volume)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleSavePlaylist handles POST /api/settings/playlists
func (h *SettingsHTTPHandler) handleSavePlaylist(w http.ResponseWriter, r *http.Request) {
	var req savePlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	saved, err := h.service.SavePlaylist(r.Context(), req.URL, req.Name, req.Headers, req.EPGURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleUpdatePlaylist handles PUT /api/settings/playlists/{id}
func (h *SettingsHTTPHandler) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updatePlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	settings, err := h.service.Settings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	saved, err := settings.FindPlaylist(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Headers != nil {
		if saved, err = h.service.UpdatePlaylistHeaders(r.Context(), id, req.Headers); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.EPGURL != nil {
		if saved, err = h.service.UpdatePlaylistEPG(r.Context(), id, *req.EPGURL); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, saved)
}

// handleRemovePlaylist handles DELETE /api/settings/playlists/{id}
func (h *SettingsHTTPHandler) handleRemovePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemovePlaylist(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
