package cache

import (
	"encoding/json"
	"time"
)

// CleanOptions specifies which parts of the cache to clean.
type CleanOptions struct {
	All     bool
	Devices bool
	Logs    bool
}

// CleanResult reports how much data a clean removed.
type CleanResult struct {
	DeviceFreed int64
	LogFreed    int64
	TotalFreed  int64
}

// Info describes the current cache contents.
type Info struct {
	Directory   string
	DeviceSize  int64
	DeviceFiles int
	LogSize     int64
	LogFiles    int
	TotalSize   int64
}

// envelope wraps a cached payload with the time it was stored, so reads can
// enforce the TTL without relying on file mtimes.
type envelope struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}
