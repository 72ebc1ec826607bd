// Package pagination provides page/size arithmetic and the wire-level page
// metadata shared by every list endpoint.
package pagination

// DefaultPageSize is applied when the client omits or zeroes the size parameter.
const DefaultPageSize = 20

// MaxPageSize caps the page size to keep list queries bounded.
const MaxPageSize = 100

// Page is a normalized page request.
type Page struct {
	Index int
	Size  int
}

// New normalizes raw page/size query values. Indexes start at 1.
func New(index, size int) Page {
	if index < 1 {
		index = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Index: index, Size: size}
}

// Offset returns the row offset for this page.
func (p Page) Offset() int {
	return (p.Index - 1) * p.Size
}

// Meta describes a page of results on the wire.
type Meta struct {
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// MetaFor computes page metadata for a total result count.
func (p Page) MetaFor(totalCount int) Meta {
	totalPages := (totalCount + p.Size - 1) / p.Size
	return Meta{
		PageIndex:   p.Index,
		PageSize:    p.Size,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrevious: p.Index > 1,
		HasNext:     p.Index < totalPages,
	}
}
