package constant

import "time"

const (
	// BaselineCacheTTL is how long the unfiltered aggregated summary stays
	// valid before the worker recomputes it.
	BaselineCacheTTL = time.Hour

	// FilteredCacheTTL is how long per-filter aggregated summaries stay
	// valid in redis.
	FilteredCacheTTL = 10 * time.Minute

	// DefaultInventoryLimit bounds /inventory responses when the caller
	// does not specify a limit.
	DefaultInventoryLimit = 100

	// MaxInventoryLimit is the hard cap for a single /inventory fetch.
	MaxInventoryLimit = 10000

	// SubjectInventoryUpdated is the NATS subject the ingest pipeline
	// publishes to after landing a new inventory snapshot.
	SubjectInventoryUpdated = "INVENTORY.updated"
)
