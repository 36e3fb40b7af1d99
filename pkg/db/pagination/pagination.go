package pagination

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Request carries the page window requested by the caller.
type Request struct {
	Page     int `form:"page,default=1" json:"page"`
	PageSize int `form:"pageSize,default=10" json:"pageSize"`
}

// Normalize clamps the window: page is at least 1, pageSize falls back to
// the default when below 1 and is capped at MaxPageSize.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

func (r Request) Limit() int {
	return r.PageSize
}

// Page is the result envelope for one page of items.
type Page[T any] struct {
	Items           []T   `json:"items"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPage builds the envelope for a normalized request and a total count.
func NewPage[T any](items []T, req Request, totalCount int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int((totalCount + int64(req.PageSize) - 1) / int64(req.PageSize))
	}

	return &Page[T]{
		Items:           items,
		Page:            req.Page,
		PageSize:        req.PageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: req.Page > 1,
		HasNextPage:     req.Page < totalPages,
	}
}
