package catalog

import (
	"sync/atomic"

	"swiftkart/internal/domain"
)

// DefaultPageSize matches the storefront's scroll increment.
const DefaultPageSize = 20

// Paginator slices the catalog into fixed-size pages and overlays live stock
// status on each page as it is served. The cursor (count of items already
// loaded) is owned by the caller; the paginator keeps no position of its own.
type Paginator struct {
	src      *Source
	pageSize int
	loading  atomic.Bool
}

func NewPaginator(src *Source, pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{src: src, pageSize: pageSize}
}

// LoadPage returns the next page after alreadyLoaded items, stock-annotated.
// The second return is false when the call was suppressed because another
// page load is still in flight; the caller should retry after it settles.
// Once the cursor reaches catalog length the page is empty.
func (p *Paginator) LoadPage(alreadyLoaded int) ([]domain.Product, bool) {
	if !p.loading.CompareAndSwap(false, true) {
		return nil, false
	}
	defer p.loading.Store(false)

	if alreadyLoaded < 0 {
		alreadyLoaded = 0
	}
	if alreadyLoaded >= p.src.Len() {
		return []domain.Product{}, true
	}
	end := alreadyLoaded + p.pageSize
	if end > p.src.Len() {
		end = p.src.Len()
	}

	page := make([]domain.Product, 0, end-alreadyLoaded)
	for _, prod := range p.src.products[alreadyLoaded:end] {
		page = append(page, p.src.overlay(prod))
	}
	return page, true
}

// Get resolves a single product by id with stock overlaid, for detail views
// and deep links.
func (p *Paginator) Get(id string) (domain.Product, error) {
	for _, prod := range p.src.products {
		if prod.ID == id {
			return p.src.overlay(prod), nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}
