package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/pkg/config"
)

func testConfig(baseURL string) config.NominatimConfig {
	return config.NominatimConfig{
		BaseURL:        baseURL,
		UserAgent:      "taxihotspots-test/1.0",
		Zoom:           16,
		TimeoutSeconds: 5,
	}
}

func TestClient_Describe(t *testing.T) {
	t.Run("successful reverse geocode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "1.3", r.URL.Query().Get("lat"))
			assert.Equal(t, "103.85", r.URL.Query().Get("lon"))
			assert.Equal(t, "16", r.URL.Query().Get("zoom"))
			assert.Equal(t, "taxihotspots-test/1.0", r.Header.Get("User-Agent"))

			_, _ = w.Write([]byte(`{"display_name": "Raffles Place, Downtown Core, Singapore"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		desc, err := client.Describe(context.Background(), domain.GeoPoint{Lat: 1.3, Lon: 103.85})
		require.NoError(t, err)
		assert.Equal(t, "Raffles Place, Downtown Core, Singapore", desc)
	})

	t.Run("missing display name degrades to Unknown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		desc, err := client.Describe(context.Background(), domain.GeoPoint{Lat: 0, Lon: 0})
		require.NoError(t, err)
		assert.Equal(t, "Unknown", desc)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Describe(context.Background(), domain.GeoPoint{Lat: 1.3, Lon: 103.85})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}
