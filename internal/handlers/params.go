package handlers

import (
	"net/http"
	"strconv"
)

// getParam reads a path or query parameter whether the router stored it
// with a leading colon or via the net/http PathValue API.
func getParam(r *http.Request, name string) string {
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	if val := r.URL.Query().Get(name); val != "" {
		return val
	}
	return r.PathValue(name)
}

// getIntParam parses an integer parameter, returning ok=false when the
// parameter is absent or malformed.
func getIntParam(r *http.Request, name string) (int, bool) {
	raw := getParam(r, name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
