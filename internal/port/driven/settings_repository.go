package driven

import (
	"context"

	"github.com/alorle/tvdesk/internal/library"
)

// SettingsRepository persists the user library.
// This is a driven port implemented by concrete adapters (e.g., BoltDB).
type SettingsRepository interface {
	// Load returns the stored settings, or library.Default() when none exist.
	Load(ctx context.Context) (library.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, s library.Settings) error

	// Ping checks if the repository (database) is accessible and operational.
	Ping(ctx context.Context) error
}
