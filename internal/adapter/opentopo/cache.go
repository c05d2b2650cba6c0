package opentopo

import (
	"context"
	"fmt"
	"sync"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// CachedService memoizes elevation lookups. Terrain does not move, so one
// upstream call per coordinate pair is enough for the life of the process.
type CachedService struct {
	inner domain.ElevationService

	mu    sync.Mutex
	cache map[string]float64
}

var _ domain.ElevationService = (*CachedService)(nil)

// NewCachedService wraps an ElevationService with an in-memory cache.
func NewCachedService(inner domain.ElevationService) *CachedService {
	return &CachedService{
		inner: inner,
		cache: make(map[string]float64),
	}
}

// Elevation returns the cached elevation, fetching on first use. Failed
// lookups are not cached, so transient upstream errors retry next run.
func (s *CachedService) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	key := fmt.Sprintf("%.6f,%.6f", lat, lon)

	s.mu.Lock()
	if v, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err := s.inner.Elevation(ctx, lat, lon)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()
	return v, nil
}
