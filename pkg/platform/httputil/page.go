package httputil

import (
	"net/http"
	"strconv"

	"talenthub/pkg/pagination"
)

// PageFromQuery parses the page/size query parameters of a list request.
// Missing or malformed values fall back to the normalized defaults.
func PageFromQuery(r *http.Request) pagination.Page {
	index, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return pagination.New(index, size)
}
