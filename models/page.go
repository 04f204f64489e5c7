package models

type Page struct {
	CurrentPage   int `json:"currentPage"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Paginate returns the slice of items for a zero-based page and the
// matching pagination info.
func Paginate[T any](items []T, currentPage, pageSize int) ([]T, *Page) {
	if pageSize <= 0 {
		pageSize = len(items)
	}
	if currentPage < 0 {
		currentPage = 0
	}

	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/pageSize + 1
	}

	page := &Page{
		CurrentPage:   currentPage,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}

	// compare page indexes first so currentPage*pageSize cannot overflow
	if total == 0 || currentPage > (total-1)/pageSize {
		return []T{}, page
	}
	start := currentPage * pageSize
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	return items[start:end], page
}
