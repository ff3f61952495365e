package view

import (
	"net/http"
	"strings"
)

type URLBuilder struct {
	base string
}

func NewURLBuilder(base string) *URLBuilder {
	return &URLBuilder{base: strings.TrimRight(base, "/")}
}

// URL joins path onto the base. An empty path yields the base itself, and
// an empty base yields a root-relative path.
func (b *URLBuilder) URL(path string) string {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		if b.base == "" {
			return "/"
		}
		return b.base
	}
	return b.base + "/" + path
}

func (b *URLBuilder) Asset(path string) string {
	return b.URL(path)
}

// BaseURLFromRequest derives scheme://host for deployments without a
// configured BASE_URL.
func BaseURLFromRequest(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
