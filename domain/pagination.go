package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest describes a page of a listing with an optional search key
type PageRequest struct {
	Page      int
	Limit     int
	SearchKey string
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Validate rejects non-positive page or limit values
func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.Limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}

// PageMeta is returned alongside every paginated listing
type PageMeta struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	LastPage int64 `json:"lastPage"`
}

// Paginate builds the page metadata; lastPage is ceil(total/limit)
func Paginate(page, limit int, total int64) PageMeta {
	var last int64
	if limit > 0 {
		l := int64(limit)
		last = (total + l - 1) / l
	}
	return PageMeta{Page: page, Limit: limit, Total: total, LastPage: last}
}

// Page is a slice of results with its metadata
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}
