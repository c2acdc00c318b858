// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alorle/tvdesk/internal/port/driven"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

var (
	// PlaylistFetches counts playlist downloads by result
	PlaylistFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tvdesk_playlist_fetches_total",
		Help: "Total number of playlist fetches",
	}, []string{"result"})

	// ChannelsParsed observes the number of channels found per parsed playlist
	ChannelsParsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tvdesk_playlist_channels_parsed",
		Help:    "Number of channels found per parsed playlist",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// LogoRequests counts logo cache lookups by result (hit, miss, or failure kind)
	LogoRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tvdesk_logo_cache_requests_total",
		Help: "Total number of logo cache requests",
	}, []string{"result"})

	// EPGLoads counts program guide loads by result
	EPGLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tvdesk_epg_loads_total",
		Help: "Total number of program guide loads",
	}, []string{"result"})

	// HTTPRequestDuration tracks API latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tvdesk_http_request_duration_seconds",
		Help:    "Duration of API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Kind maps an adapter error to a low-cardinality label value.
func Kind(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, driven.ErrClientBuild):
		return "client_build"
	case errors.Is(err, driven.ErrNetwork):
		return "network"
	case errors.Is(err, driven.ErrHTTPStatus):
		return "http_status"
	case errors.Is(err, driven.ErrBodyRead):
		return "body_read"
	case errors.Is(err, driven.ErrCacheDir):
		return "cache_dir"
	case errors.Is(err, driven.ErrCacheWrite):
		return "cache_write"
	default:
		return "other"
	}
}

// RecordPlaylistFetch increments the fetch counter for the outcome of err
func RecordPlaylistFetch(err error) {
	PlaylistFetches.WithLabelValues(Kind(err)).Inc()
}

// RecordChannelsParsed observes the size of a parsed playlist
func RecordChannelsParsed(count int) {
	ChannelsParsed.Observe(float64(count))
}

// RecordLogoRequest increments the logo counter with an explicit result
func RecordLogoRequest(result string) {
	LogoRequests.WithLabelValues(result).Inc()
}

// RecordLogoFailure increments the logo counter for the kind of err
func RecordLogoFailure(err error) {
	LogoRequests.WithLabelValues(Kind(err)).Inc()
}

// RecordEPGLoad increments the guide load counter for the outcome of err
func RecordEPGLoad(err error) {
	EPGLoads.WithLabelValues(Kind(err)).Inc()
}

// ObserveHTTPRequest records the duration of an API request
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
