package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Geocode(t *testing.T) {
	t.Parallel()

	t.Run("success parses string coordinates", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "20 W 34th St, New York", q.Get("q"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "1", q.Get("limit"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"40.7484405","lon":"-73.9878531","display_name":"Empire State Building"}]`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		coords, err := c.Geocode(context.Background(), "20 W 34th St, New York")
		require.NoError(t, err)
		assert.InDelta(t, 40.7484405, coords.Latitude, 1e-9)
		assert.InDelta(t, -73.9878531, coords.Longitude, 1e-9)
	})

	t.Run("zero results", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Geocode(context.Background(), "jkfdlsajfkldsajklfdsa")
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("unrecognized body counts as no results", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Geocode(context.Background(), "anywhere")
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("unparseable coordinates count as no results", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"0"}]`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Geocode(context.Background(), "anywhere")
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("provider error status is not ErrNoResults", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Geocode(context.Background(), "anywhere")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoResults)
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClient(srv.URL).Geocode(ctx, "anywhere")
		assert.Error(t, err)
	})
}

func TestClient_Options(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithUserAgent("custom-agent/2.0"), WithHTTPClient(srv.Client()))
	coords, err := c.Geocode(context.Background(), "anywhere")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, coords.Latitude, 1e-9)
}
