package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"swiftkart/internal/domain"
	"swiftkart/internal/kv"
)

// DefaultKey is the well-known persistence key holding the serialized cart.
const DefaultKey = "cart"

// Store owns the cart: an ordered list of items, unique by product id,
// persisted as one JSON value in the kv store. All mutations run under a
// single mutex so a read-modify-write can never interleave with another and
// lose an update. The in-memory mirror only advances after a successful
// persist; on storage failure it stays at the last persisted state.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	key   string
	items []domain.CartItem
}

func NewStore(store kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: store, key: key}
}

// Items re-reads the persisted cart, making the store the single source of
// truth for display regardless of which flow last mutated it.
func (s *Store) Items(ctx context.Context) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.items = items
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out, nil
}

// Add merges the product into the cart: an existing line's quantity grows by
// one, a new product is appended with quantity 1. The updated cart is
// persisted before the mirror is touched.
func (s *Store) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range items {
		if items[i].Product.ID == p.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, domain.CartItem{Product: p, Quantity: 1})
	}
	if err := s.persist(ctx, items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// Remove drops the line with the given product id. Removing an id that is not
// in the cart is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	if err := s.persist(ctx, kept); err != nil {
		return err
	}
	s.items = kept
	return nil
}

// load reads the persisted cart. A missing or unparsable value is an empty
// cart, not an error; only a real store failure propagates.
func (s *Store) load(ctx context.Context) ([]domain.CartItem, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err == kv.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: read %q: %w", s.key, err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (s *Store) persist(ctx context.Context, items []domain.CartItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("cart: persist %q: %w", s.key, err)
	}
	return nil
}
