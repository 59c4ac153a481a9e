// Package page computes page windows over in-memory lists.
package page

// Page is the visible window of a list.
type Page[T any] struct {
	// Items is the window, a sub-slice of the input.
	Items []T

	// Number is the clamped 1-based page number.
	Number int

	// TotalPages is max(1, ceil(Total/Size)).
	TotalPages int

	// Size is the effective page size.
	Size int

	// Total is the length of the whole list.
	Total int
}

// TotalPages returns max(1, ceil(n/size)). A size below 1 counts as 1.
func TotalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 1
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// Clamp returns current clamped into [1, TotalPages(n, size)].
func Clamp(current, n, size int) int {
	total := TotalPages(n, size)
	if current < 1 {
		return 1
	}
	if current > total {
		return total
	}
	return current
}

// Of returns the 1-based page holding the item at index.
func Of(index, size int) int {
	if size < 1 {
		size = 1
	}
	if index < 0 {
		return 1
	}
	return index/size + 1
}

// Paginate returns the window of items for the current page.
// The current page is always re-clamped against the list length.
func Paginate[T any](items []T, size, current int) Page[T] {
	if size < 1 {
		size = 1
	}
	n := len(items)
	number := Clamp(current, n, size)

	start := (number - 1) * size
	end := min(start+size, n)

	return Page[T]{
		Items:      items[start:end:end],
		Number:     number,
		TotalPages: TotalPages(n, size),
		Size:       size,
		Total:      n,
	}
}
