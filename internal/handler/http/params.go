package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
	"github.com/goccy/go-json"
)

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: key, Message: key + " must be a number"}}
	}
	return n, nil
}

func decodeJSON(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}
