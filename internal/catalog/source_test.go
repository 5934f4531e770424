package catalog

import "testing"

func TestLoadEmbeddedSeedData(t *testing.T) {
	src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
	p := NewPaginator(src, DefaultPageSize)

	// p-022 has no stock record in the seed feed: must read out of stock
	prod, err := p.Get("p-022")
	if err != nil {
		t.Fatal(err)
	}
	if prod.InStock {
		t.Fatal("product without stock record must be out of stock")
	}

	prod, err = p.Get("p-001")
	if err != nil {
		t.Fatal(err)
	}
	if !prod.InStock {
		t.Fatal("p-001 is TRUE in the seed feed, want inStock")
	}
}
