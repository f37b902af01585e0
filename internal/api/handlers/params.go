package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// OptionalQueryInt читает необязательный целочисленный query параметр, 0 - если не задан
func OptionalQueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", name, err)
	}
	return v, nil
}

// OptionalQueryString возвращает nil, если параметр не задан
func OptionalQueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// OptionalQueryBool читает необязательный булевый query параметр, false - если не задан
func OptionalQueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", name, err)
	}
	return v, nil
}
