package util

// DefaultPageLimit is applied when a caller passes a non-positive limit
const DefaultPageLimit = 10

// Pagination describes one page of a listing. The same shape is shared by
// bookmark, quote, discussion and reading-group member listings.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	Offset     int   `json:"-"`
}

// Paginate normalizes (page, limit) and computes the page descriptor for
// totalCount rows. page <= 0 falls back to 1, limit <= 0 to DefaultPageLimit.
func Paginate(page, limit int, totalCount int64) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    int64(page)*int64(limit) < totalCount,
		Offset:     (page - 1) * limit,
	}
}
