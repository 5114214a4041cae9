package domain

// QuestionsPerPage is the fixed page size of every paginated listing.
const QuestionsPerPage = 10

// Paginate returns the 1-based page of items. Pages outside the available
// range, including page < 1, yield an empty slice rather than an error.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
