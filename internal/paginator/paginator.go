// Package paginator provides a windowed view over an ordered slice.
package paginator

// Paginator pages through a slice it exclusively owns. The page size is fixed
// at construction; to change the items' identity, build a new Paginator.
type Paginator[T any] struct {
	items       []T
	pageSize    int
	currentPage int
}

// New creates a paginator positioned on the first page. A page size below 1
// is treated as 1.
func New[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator[T]{
		items:    items,
		pageSize: pageSize,
	}
}

// PageSize returns the number of items per page
func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

// CurrentPage returns the zero-based index of the current page
func (p *Paginator[T]) CurrentPage() int {
	return p.currentPage
}

// Len returns the total number of items
func (p *Paginator[T]) Len() int {
	return len(p.items)
}

// TotalPages returns ceil(len/pageSize), or 0 when there are no items
func (p *Paginator[T]) TotalPages() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// AllItems returns the backing slice. Elements may be mutated in place.
func (p *Paginator[T]) AllItems() []T {
	return p.items
}

// Item returns a pointer to the item at absolute index i, or nil if out of range
func (p *Paginator[T]) Item(i int) *T {
	if i < 0 || i >= len(p.items) {
		return nil
	}
	return &p.items[i]
}

// IndexOf converts a row on the current page to an absolute index
func (p *Paginator[T]) IndexOf(row int) int {
	return p.currentPage*p.pageSize + row
}

// CurrentPageItems returns the items on the current page
func (p *Paginator[T]) CurrentPageItems() []T {
	start := p.currentPage * p.pageSize
	if start >= len(p.items) {
		return p.items[len(p.items):]
	}
	end := min(start+p.pageSize, len(p.items))
	return p.items[start:end]
}

// NextPage advances one page; it is a no-op on the last page
func (p *Paginator[T]) NextPage() {
	if p.currentPage+1 < p.TotalPages() {
		p.currentPage++
	}
}

// PrevPage goes back one page; it is a no-op on the first page
func (p *Paginator[T]) PrevPage() {
	if p.currentPage > 0 {
		p.currentPage--
	}
}

// Filter returns every item matching predicate across all pages
func (p *Paginator[T]) Filter(predicate func(T) bool) []T {
	var out []T
	for _, item := range p.items {
		if predicate(item) {
			out = append(out, item)
		}
	}
	return out
}
