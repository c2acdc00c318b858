package driver

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Playlists *PlaylistHTTPHandler
	Logos     *LogoHTTPHandler
	EPG       *EPGHTTPHandler
	Settings  *SettingsHTTPHandler
	Health    *HealthHTTPHandler
}

// NewRouter registers every route on a new gorilla/mux router. Requests
// under /api are validated against spec, which must describe every route
// registered there.
func NewRouter(h Handlers, spec *openapi3.T, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(logger))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Handle("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(bufferBody(maxPlaylistBodyBytes), requestValidator(spec))

	api.Handle("/openapi.json", NewDocumentationHandler(spec)).Methods(http.MethodGet)

	api.HandleFunc("/playlists/fetch", h.Playlists.handleFetch).Methods(http.MethodPost)
	api.HandleFunc("/playlists/parse", h.Playlists.handleParse).Methods(http.MethodPost)
	api.HandleFunc("/playlists/export", h.Playlists.handleExport).Methods(http.MethodPost)

	api.HandleFunc("/logos", h.Logos.handleResolve).Methods(http.MethodGet)
	api.HandleFunc("/logos", h.Logos.handlePurge).Methods(http.MethodDelete)
	api.HandleFunc("/logos/reset", h.Logos.handleReset).Methods(http.MethodPost)

	api.HandleFunc("/epg", h.EPG.handleGuide).Methods(http.MethodGet)
	api.HandleFunc("/epg", h.EPG.handleClear).Methods(http.MethodDelete)
	api.HandleFunc("/epg/load", h.EPG.handleLoad).Methods(http.MethodPost)
	api.HandleFunc("/epg/{channelID}", h.EPG.handleSchedule).Methods(http.MethodGet)

	api.HandleFunc("/settings", h.Settings.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings.handleImport).Methods(http.MethodPut)
	api.HandleFunc("/settings/export", h.Settings.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/settings/volume", h.Settings.handleVolume).Methods(http.MethodPut)
	api.HandleFunc("/settings/favorites/{channelID}", h.Settings.handleIsFavorite).Methods(http.MethodGet)
	api.HandleFunc("/settings/favorites/{channelID}", h.Settings.handleToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/settings/recent/{channelID}", h.Settings.handleRecentlyWatched).Methods(http.MethodPost)
	api.HandleFunc("/settings/playlists", h.Settings.handleSavePlaylist).Methods(http.MethodPost)
	api.HandleFunc("/settings/playlists/{id}", h.Settings.handleUpdatePlaylist).Methods(http.MethodPut)
	api.HandleFunc("/settings/playlists/{id}", h.Settings.handleRemovePlaylist).Methods(http.MethodDelete)

	return r
}
