package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"swiftkart/internal/domain"
)

// ErrProductNotFound is returned for deep links to ids the catalog does not hold.
var ErrProductNotFound = errors.New("catalog: product not found")

//go:embed data/products.json data/stock.json
var seedFS embed.FS

// Source holds the catalog and stock feeds, loaded once at startup and
// immutable afterwards. Stock is indexed by product id for the overlay.
type Source struct {
	products []domain.Product
	stock    map[string]domain.StockRecord
}

// Load reads products.json and stock.json from dataDir, falling back to the
// embedded seed data when dataDir is empty or the file is absent.
func Load(dataDir string) (*Source, error) {
	var products []domain.Product
	if err := readJSON(dataDir, "products.json", &products); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var records []domain.StockRecord
	if err := readJSON(dataDir, "stock.json", &records); err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}

	stock := make(map[string]domain.StockRecord, len(records))
	for _, r := range records {
		stock[r.ProductID] = r
	}
	return &Source{products: products, stock: stock}, nil
}

// NewSource builds a Source from in-memory feeds. Used by tests and by any
// caller that already has the data loaded.
func NewSource(products []domain.Product, records []domain.StockRecord) *Source {
	stock := make(map[string]domain.StockRecord, len(records))
	for _, r := range records {
		stock[r.ProductID] = r
	}
	return &Source{products: products, stock: stock}
}

func (s *Source) Len() int { return len(s.products) }

// overlay returns p with InStock set from the stock feed. A missing record
// means out of stock.
func (s *Source) overlay(p domain.Product) domain.Product {
	r, ok := s.stock[p.ID]
	p.InStock = ok && r.InStock()
	return p
}

func readJSON(dataDir, name string, out any) error {
	if dataDir != "" {
		path := filepath.Join(dataDir, name)
		if b, err := os.ReadFile(path); err == nil {
			return json.Unmarshal(b, out)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	b, err := seedFS.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
