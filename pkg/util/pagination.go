package util

import "strconv"

// Page describes one page of a paginated listing.
type Page struct {
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.TotalPages }

func (p Page) PreviousNumber() int { return p.Number - 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

// NewPage resolves a raw page parameter the forgiving way: a non-integer yields the
// first page and any number outside 1..TotalPages yields the last page.
// An empty listing still has one (empty) page.
func NewPage(raw string, size int, total int64) Page {
	if size <= 0 {
		size = 10
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > totalPages:
		number = totalPages
	}

	return Page{Number: number, Size: size, TotalItems: total, TotalPages: totalPages}
}
