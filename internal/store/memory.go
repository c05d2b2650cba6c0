// Package store keeps recent forecast results in memory for the HTTP API.
package store

import (
	"sync"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

const (
	// DefaultMaxPerLocation bounds history per site; one hourly run for a
	// week is plenty for the API and for debugging.
	DefaultMaxPerLocation = 168
	// DefaultMaxAge drops results older than this on the next write.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Memory is a concurrency-safe in-memory store of forecast results, keyed
// by location. Retention is enforced on write: oldest-first by count, then
// by age.
type Memory struct {
	mu      sync.RWMutex
	results map[string][]*domain.ForecastResult

	maxPerLocation int
	maxAge         time.Duration
}

// NewMemory creates a store with the given retention limits. Zero values
// select the defaults.
func NewMemory(maxPerLocation int, maxAge time.Duration) *Memory {
	if maxPerLocation <= 0 {
		maxPerLocation = DefaultMaxPerLocation
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Memory{
		results:        make(map[string][]*domain.ForecastResult),
		maxPerLocation: maxPerLocation,
		maxAge:         maxAge,
	}
}

// Put appends a result to its location's history and prunes.
func (m *Memory) Put(result *domain.ForecastResult) {
	key := result.Location.Key()

	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.results[key], result)
	if excess := len(history) - m.maxPerLocation; excess > 0 {
		history = history[excess:]
	}

	cutoff := domain.Clock().Now().Add(-m.maxAge)
	for len(history) > 0 && history[0].GeneratedAt.Before(cutoff) {
		history = history[1:]
	}
	m.results[key] = history
}

// GetLatest returns the most recent result for a location key.
func (m *Memory) GetLatest(key string) (*domain.ForecastResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.results[key]
	if len(history) == 0 {
		return nil, false
	}
	return history[len(history)-1], true
}

// History returns all retained results for a location key, oldest first.
func (m *Memory) History(key string) []*domain.ForecastResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.results[key]
	out := make([]*domain.ForecastResult, len(history))
	copy(out, history)
	return out
}

// Locations returns the keys with at least one retained result.
func (m *Memory) Locations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.results))
	for k, v := range m.results {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}
