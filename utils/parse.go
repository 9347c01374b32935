package utils

import "strconv"

func ParseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParsePage reads page/limit query values the way the list endpoints expect:
// page starts at 1, limit defaults to 6 and is capped at 12.
func ParsePage(pageStr, limitStr string) (page, limit int) {
	page = ParseInt(pageStr)
	if page < 1 {
		page = 1
	}
	limit = ParseInt(limitStr)
	if limit < 1 {
		limit = 6
	}
	if limit > 12 {
		limit = 12
	}
	return page, limit
}
