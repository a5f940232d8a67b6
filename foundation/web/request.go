package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dimfeld/httptreemux/v5"
)

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	m := httptreemux.ContextParams(r.Context())
	return m[key]
}

// Query returns the url query value for the specified key.
func Query(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// QueryInt returns the url query value for the specified key as an int. An
// empty value returns the provided default.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("query %q: %w", key, err)
	}

	return n, nil
}

// QueryUint returns the url query value for the specified key as an uint64.
// An empty value returns the provided default.
func QueryUint(r *http.Request, key string, def uint64) (uint64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("query %q: %w", key, err)
	}

	return n, nil
}
