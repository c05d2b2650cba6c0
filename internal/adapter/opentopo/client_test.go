package opentopo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestElevation(t *testing.T) {
	t.Run("returns the first result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "40.039661,-74.992145", r.URL.Query().Get("locations"))
			w.Write([]byte(`{"status":"OK","results":[{"dataset":"ned10m","elevation":11.7,` +
				`"location":{"lat":40.039661,"lng":-74.992145}}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, testLogger())
		elev, err := client.Elevation(context.Background(), 40.039661, -74.992145)
		require.NoError(t, err)
		assert.Equal(t, 11.7, elev)
	})

	t.Run("non-OK status in payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"INVALID_REQUEST","error":"Invalid location."}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := client.Elevation(context.Background(), 400, -75)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid location")
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := client.Elevation(context.Background(), 40, -75)
		require.Error(t, err)
	})

	t.Run("empty results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"OK","results":[]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := client.Elevation(context.Background(), 40, -75)
		require.Error(t, err)
	})
}

// countingService fakes the upstream for cache tests.
type countingService struct {
	calls int
	err   error
}

func (s *countingService) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return 42.5, nil
}

func TestCachedService(t *testing.T) {
	t.Run("second lookup hits the cache", func(t *testing.T) {
		inner := &countingService{}
		cached := NewCachedService(inner)

		for i := 0; i < 3; i++ {
			elev, err := cached.Elevation(context.Background(), 40.04, -74.99)
			require.NoError(t, err)
			assert.Equal(t, 42.5, elev)
		}
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("distinct coordinates get distinct lookups", func(t *testing.T) {
		inner := &countingService{}
		cached := NewCachedService(inner)

		_, err := cached.Elevation(context.Background(), 40.04, -74.99)
		require.NoError(t, err)
		_, err = cached.Elevation(context.Background(), 40.22, -74.78)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingService{err: errors.New("upstream down")}
		cached := NewCachedService(inner)

		_, err := cached.Elevation(context.Background(), 40.04, -74.99)
		require.Error(t, err)

		inner.err = nil
		elev, err := cached.Elevation(context.Background(), 40.04, -74.99)
		require.NoError(t, err)
		assert.Equal(t, 42.5, elev)
		assert.Equal(t, 2, inner.calls)
	})
}
