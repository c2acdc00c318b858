package driven

import (
	"context"

	"github.com/alorle/tvdesk/internal/epg"
)

// GuideRepository persists the last loaded program guide.
// This is a driven port implemented by concrete adapters (e.g., BoltDB).
type GuideRepository interface {
	// Save replaces the stored guide.
	Save(ctx context.Context, g epg.Guide) error

	// Load returns the stored guide. Returns epg.ErrGuideNotFound if nothing
	// was saved yet.
	Load(ctx context.Context) (epg.Guide, error)

	// Clear removes the stored guide.
	Clear(ctx context.Context) error
}
