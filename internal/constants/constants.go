package constants

import "time"

const (
	// AccountCacheTTL covers display-name lookups; names almost never change.
	AccountCacheTTL = 1 * time.Hour
	// EloCacheTTL covers rank lookups, which move between games.
	EloCacheTTL = 60 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

// MaxConcurrentLookups caps the per-summary fan-out against the Riot API
// so one roster cannot burst the rate limit.
const MaxConcurrentLookups = 4

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
