package storage

import "context"

// Well-known local settings flags.
const (
	// FlagDebugLogging gates verbose auth-flow logging
	FlagDebugLogging = "debug_logging"
)

// SettingsStorage persists small client-side preferences.
type SettingsStorage interface {
	// GetFlag returns the stored flag value, false when never set
	GetFlag(ctx context.Context, name string) (bool, error)

	// SetFlag stores the flag value
	SetFlag(ctx context.Context, name string, value bool) error
}
