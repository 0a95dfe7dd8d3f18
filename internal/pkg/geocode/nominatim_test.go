package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatim_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "selfie-punch/test", r.Header.Get("User-Agent"))

		switch r.URL.Query().Get("lat") {
		case "21.2467":
			_, _ = io.WriteString(w, `{"display_name":"Raipur, Chhattisgarh, India"}`)
		case "0":
			_, _ = io.WriteString(w, `{"error":"Unable to geocode"}`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	geocoder := NewNominatim(server.URL, "selfie-punch/test", time.Second, server.Client())

	name, err := geocoder.Reverse(context.Background(), location.Coordinate{Latitude: 21.2467, Longitude: 81.6624})
	require.NoError(t, err)
	assert.Equal(t, "Raipur, Chhattisgarh, India", name)

	_, err = geocoder.Reverse(context.Background(), location.Coordinate{})
	assert.ErrorIs(t, err, location.ErrGeocodeFailed)

	_, err = geocoder.Reverse(context.Background(), location.Coordinate{Latitude: 10, Longitude: 10})
	assert.ErrorIs(t, err, location.ErrGeocodeFailed)
}
