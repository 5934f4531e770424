package catalog

import (
	"fmt"
	"testing"

	"swiftkart/internal/domain"
)

func fixtureSource(n int) *Source {
	products := make([]domain.Product, 0, n)
	records := []domain.StockRecord{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p-%03d", i)
		products = append(products, domain.Product{ID: id, Name: "Item " + id, Price: 10})
		// every third product has no stock record, every fifth is FALSE
		if i%3 == 0 {
			continue
		}
		avail := "TRUE"
		if i%5 == 0 {
			avail = "FALSE"
		}
		records = append(records, domain.StockRecord{ProductID: id, Available: avail})
	}
	return NewSource(products, records)
}

func TestLoadPagePartitionsCatalog(t *testing.T) {
	src := fixtureSource(47)
	p := NewPaginator(src, 20)

	var all []domain.Product
	loaded := 0
	for i := 0; i < 10; i++ {
		page, ok := p.LoadPage(loaded)
		if !ok {
			t.Fatalf("page %d suppressed", i)
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		loaded += len(page)
	}

	if len(all) != 47 {
		t.Fatalf("want 47 products total, got %d", len(all))
	}
	seen := map[string]bool{}
	for i, prod := range all {
		if seen[prod.ID] {
			t.Fatalf("duplicate product %s", prod.ID)
		}
		seen[prod.ID] = true
		if want := fmt.Sprintf("p-%03d", i); prod.ID != want {
			t.Fatalf("order broken at %d: want %s got %s", i, want, prod.ID)
		}
	}

	// page after the last non-empty page is empty
	page, ok := p.LoadPage(47)
	if !ok || len(page) != 0 {
		t.Fatalf("want empty page past end, got %d items ok=%v", len(page), ok)
	}
}

func TestLoadPageIdempotentCursor(t *testing.T) {
	p := NewPaginator(fixtureSource(30), 20)
	a, _ := p.LoadPage(20)
	b, _ := p.LoadPage(20)
	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("want 10-item pages, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pages differ at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLoadPageSuppressedWhileInFlight(t *testing.T) {
	p := NewPaginator(fixtureSource(5), 20)
	p.loading.Store(true)
	if page, ok := p.LoadPage(0); ok || page != nil {
		t.Fatalf("re-entrant load should be a no-op, got ok=%v page=%v", ok, page)
	}
	p.loading.Store(false)
	if _, ok := p.LoadPage(0); !ok {
		t.Fatal("load should proceed once the in-flight page settles")
	}
}

func TestStockOverlayFailsClosed(t *testing.T) {
	src := NewSource(
		[]domain.Product{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]domain.StockRecord{
			{ProductID: "a", Available: "TRUE"},
			{ProductID: "b", Available: "FALSE"},
			// no record for c
		},
	)
	page, _ := NewPaginator(src, 20).LoadPage(0)
	want := map[string]bool{"a": true, "b": false, "c": false}
	for _, prod := range page {
		if prod.InStock != want[prod.ID] {
			t.Fatalf("product %s: want inStock=%v got %v", prod.ID, want[prod.ID], prod.InStock)
		}
	}
}

func TestGetUnknownProduct(t *testing.T) {
	p := NewPaginator(fixtureSource(3), 20)
	if _, err := p.Get("nope"); err != ErrProductNotFound {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	prod, err := p.Get("p-001")
	if err != nil || prod.ID != "p-001" {
		t.Fatalf("want p-001, got %+v err=%v", prod, err)
	}
}
