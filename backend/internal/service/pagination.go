package service

// PageSize is the number of posts on one category page.
const PageSize = 20

// RecentLimit is the number of posts in the recent posts widget.
const RecentLimit = 4

// ClampPage returns requested when it is a valid page and the last page
// otherwise. An empty listing still has one (empty) page.
func ClampPage(requested, totalPages int) int {
	requested = max(1, requested)
	if requested <= totalPages {
		return requested
	}
	return max(1, totalPages)
}
