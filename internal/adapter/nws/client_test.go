package nws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFetchWindow(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	t.Run("fetches and parses a window", func(t *testing.T) {
		var gotQuery map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(forecastPage(winterRows)))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 100, testLogger())
		win, err := client.FetchWindow(context.Background(), 40.039661, -74.992145, 48)
		require.NoError(t, err)

		assert.Equal(t, 48, win.LeadHours)
		assert.Equal(t, "EST", win.TZ.String())
		assert.Len(t, win.Records, 6)

		assert.Equal(t, []string{"48"}, gotQuery["AheadHour"])
		assert.Equal(t, []string{"digital"}, gotQuery["FcstType"])
		assert.Equal(t, []string{"40.039661"}, gotQuery["textField1"])
		assert.Equal(t, []string{"-74.992145"}, gotQuery["textField2"])
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 100, testLogger())
		_, err := client.FetchWindow(context.Background(), 40, -75, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("unparseable page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>maintenance</body></html>"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 100, testLogger())
		_, err := client.FetchWindow(context.Background(), 40, -75, 0)
		require.Error(t, err)
	})

	t.Run("canceled context aborts the rate limit wait", func(t *testing.T) {
		client := NewClient("http://unreachable.invalid", time.Second, 0.001, testLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.FetchWindow(ctx, 40, -75, 0)
		require.Error(t, err)
	})
}
