package server

import (
	"net/http"
	"strconv"
)

// parseQueryInt parses an integer query parameter with a default and an
// optional maximum (max of 0 means unbounded). Negative values fall back to
// the default.
func parseQueryInt(r *http.Request, name string, defaultValue, maxValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	if maxValue > 0 && value > maxValue {
		return maxValue
	}
	return value
}
