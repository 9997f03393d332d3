package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/qaforge/qaforge/internal/listquery"
)

// ListParams parses the list query string of r.
func ListParams(r *http.Request) listquery.Params {
	return listquery.ParseParams(r.URL.Query())
}

// IncludeDeleted reports whether the request asked for soft-deleted documents.
func IncludeDeleted(r *http.Request) bool {
	include, _ := strconv.ParseBool(r.URL.Query().Get("includeDeleted"))
	return include
}

// PathID returns the trimmed {id} route parameter.
func PathID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}
