package utils

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	MaxPerPage     = 100
)

// NormalizePage applies defaults to a 1-based page and clamps perPage to MaxPerPage.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// LimitOffset converts a page into SQL LIMIT and OFFSET values.
func LimitOffset(page, perPage int) (limit, offset int) {
	page, perPage = NormalizePage(page, perPage)
	return perPage, (page - 1) * perPage
}

// TotalPages returns how many pages of perPage items hold total items.
func TotalPages(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
