package driven

import (
	"context"
	"time"

	"github.com/alorle/tvdesk/internal/epg"
)

// EPGFetcher retrieves program guide data from external XMLTV sources.
// This is a driven port implemented by concrete adapters (e.g., HTTP client).
type EPGFetcher interface {
	// FetchGuide downloads the guide at url and keeps the programmes of the
	// given channel ids that are still running at now or start within the
	// fetcher's look-ahead window.
	FetchGuide(ctx context.Context, url string, channelIDs []string, now time.Time) (epg.Guide, error)
}
