package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

var testLoc = domain.Location{Name: "Test Reach", Lat: 40.04, Lon: -74.99}

func resultAt(ts time.Time) *domain.ForecastResult {
	return &domain.ForecastResult{Location: testLoc, GeneratedAt: ts}
}

func TestMemoryPutAndGetLatest(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	t.Run("latest wins", func(t *testing.T) {
		s := NewMemory(0, 0)
		s.Put(resultAt(now.Add(-2 * time.Hour)))
		s.Put(resultAt(now.Add(-1 * time.Hour)))

		got, ok := s.GetLatest(testLoc.Key())
		require.True(t, ok)
		assert.Equal(t, now.Add(-1*time.Hour), got.GeneratedAt)
	})

	t.Run("empty store", func(t *testing.T) {
		s := NewMemory(0, 0)
		_, ok := s.GetLatest(testLoc.Key())
		assert.False(t, ok)
	})

	t.Run("count retention drops oldest", func(t *testing.T) {
		s := NewMemory(3, 0)
		for i := 0; i < 5; i++ {
			s.Put(resultAt(now.Add(time.Duration(i) * time.Minute)))
		}

		history := s.History(testLoc.Key())
		require.Len(t, history, 3)
		assert.Equal(t, now.Add(2*time.Minute), history[0].GeneratedAt)
		assert.Equal(t, now.Add(4*time.Minute), history[2].GeneratedAt)
	})

	t.Run("age retention drops stale results", func(t *testing.T) {
		s := NewMemory(0, time.Hour)
		s.Put(resultAt(now.Add(-2 * time.Hour)))
		s.Put(resultAt(now.Add(-30 * time.Minute)))

		history := s.History(testLoc.Key())
		require.Len(t, history, 1)
		assert.Equal(t, now.Add(-30*time.Minute), history[0].GeneratedAt)
	})

	t.Run("locations are independent", func(t *testing.T) {
		s := NewMemory(0, 0)
		other := &domain.ForecastResult{
			Location:    domain.Location{Name: "Other", Lat: 41, Lon: -75},
			GeneratedAt: now,
		}
		s.Put(resultAt(now))
		s.Put(other)

		assert.Len(t, s.Locations(), 2)
		got, ok := s.GetLatest(other.Location.Key())
		require.True(t, ok)
		assert.Equal(t, "Other", got.Location.Name)
	})
}

func TestMemoryConcurrentAccess(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	s := NewMemory(10, 0)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				loc := domain.Location{Name: fmt.Sprintf("loc-%d", i), Lat: float64(i), Lon: -75}
				s.Put(&domain.ForecastResult{Location: loc})
				s.GetLatest(loc.Key())
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Len(t, s.Locations(), 4)
}
