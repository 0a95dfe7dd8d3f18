package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	json "github.com/goccy/go-json"
)

// Nominatim resolves coordinates with a Nominatim compatible reverse endpoint.
type Nominatim struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration, httpClient *http.Client) location.Geocoder {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse returns the display_name of c.
func (n *Nominatim) Reverse(ctx context.Context, c location.Coordinate) (string, error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", location.ErrGeocodeFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", location.ErrGeocodeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", location.ErrGeocodeFailed, resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", location.ErrGeocodeFailed, err)
	}
	if body.Error != "" {
		return "", fmt.Errorf("%w: %s", location.ErrGeocodeFailed, body.Error)
	}
	if strings.TrimSpace(body.DisplayName) == "" {
		return "", fmt.Errorf("%w: empty display_name", location.ErrGeocodeFailed)
	}
	return body.DisplayName, nil
}
