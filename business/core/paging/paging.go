// Package paging resolves which page a record lives on and reconciles a
// search result with the page being displayed, so exactly one record is
// flagged as highlighted while its page is active.
package paging

// Match identifies a matched record by its position in the full, unpaged
// collection and the page that position falls on.
type Match struct {
	Index int `json:"index"`
	Page  int `json:"page"`
}

// Resolve returns the match for the record at index. Pages start at 1.
func Resolve(index int, perPage int) Match {
	perPage = max(perPage, 1)

	return Match{
		Index: index,
		Page:  index/perPage + 1,
	}
}

// Offset returns the position of the record at index within its page.
func Offset(index int, perPage int) int {
	return index % max(perPage, 1)
}

// TotalPages returns the number of pages needed to hold total records.
func TotalPages(total int, perPage int) int {
	perPage = max(perPage, 1)
	return (total + perPage - 1) / perPage
}

// Bounds returns the half open range of indexes displayed on the page.
func Bounds(page int, perPage int, total int) (start int, end int) {
	perPage = max(perPage, 1)

	start = min(max(page-1, 0)*perPage, total)
	end = min(start+perPage, total)

	return start, end
}

// clamp keeps the page between 1 and the last page.
func clamp(page int, perPage int, total int) int {
	return min(max(page, 1), max(TotalPages(total, perPage), 1))
}
