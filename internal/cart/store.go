// Package cart holds the per-session cart store, its snapshot codec, the
// session registry and the write-behind persister.
package cart

import (
	"math"
	"sync"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

// Persister receives a copy of the items after every effective mutation.
// Implementations must not block on I/O.
type Persister interface {
	Persist(key string, items []domain.LineItem)
}

type nopPersister struct{}

func (nopPersister) Persist(string, []domain.LineItem) {}

// Store is the cart of one session. All methods are safe for concurrent use;
// every mutation is atomic and is followed by exactly one Persist call with
// the resulting items. Invalid input leaves the state untouched.
type Store struct {
	mu        sync.Mutex
	key       string
	items     []domain.LineItem
	open      bool
	persister Persister
}

// NewStore creates a closed store under the storage key, seeded with items.
// The caller must pass well-formed items (see Decode). p may be nil.
func NewStore(key string, p Persister, items []domain.LineItem) *Store {
	if p == nil {
		p = nopPersister{}
	}
	return &Store{
		key:       key,
		items:     cloneItems(items),
		persister: p,
	}
}

// Key returns the storage key of the store.
func (s *Store) Key() string {
	return s.key
}

// AddItem appends a new line or, when the key already exists, increases its
// quantity. The price and metadata of an existing line keep their snapshot.
func (s *Store) AddItem(productID, variant string, unitPrice int64, quantity int, meta domain.ItemMetadata) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case productID == "":
		return s.stateLocked(), apperrors.InvalidInput("product id is required")
	case quantity < 1:
		return s.stateLocked(), apperrors.InvalidInput("quantity must be at least 1")
	case unitPrice < 0:
		return s.stateLocked(), apperrors.InvalidInput("unit price must not be negative")
	}

	k := domain.Key{ProductID: productID, Variant: variant}
	next := cloneItems(s.items)
	if i := domain.IndexOf(next, k); i >= 0 {
		if next[i].Quantity > math.MaxInt-quantity {
			return s.stateLocked(), apperrors.InvalidInput("quantity is out of range")
		}
		next[i].Quantity += quantity
	} else {
		next = append(next, domain.LineItem{
			ProductID: productID,
			Variant:   variant,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			Name:      meta.Name,
			ImageURL:  meta.ImageURL,
		})
	}
	if !domain.TotalsFit(next) {
		return s.stateLocked(), apperrors.InvalidInput("cart total is out of range")
	}

	s.items = next
	s.persistLocked()
	return s.stateLocked(), nil
}

// RemoveItem deletes the line with the given key. A missing key is a no-op
// and is not persisted.
func (s *Store) RemoveItem(productID, variant string) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(domain.Key{ProductID: productID, Variant: variant}) {
		s.persistLocked()
	}
	return s.stateLocked()
}

// UpdateQuantity sets the quantity of an existing line. quantity <= 0 removes
// the line. A missing key is a no-op. A quantity whose totals would not fit
// is rejected and leaves the state untouched.
func (s *Store) UpdateQuantity(productID, variant string, quantity int) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := domain.Key{ProductID: productID, Variant: variant}
	if quantity <= 0 {
		if s.removeLocked(k) {
			s.persistLocked()
		}
		return s.stateLocked(), nil
	}

	i := domain.IndexOf(s.items, k)
	if i < 0 || s.items[i].Quantity == quantity {
		return s.stateLocked(), nil
	}
	next := cloneItems(s.items)
	next[i].Quantity = quantity
	if !domain.TotalsFit(next) {
		return s.stateLocked(), apperrors.InvalidInput("cart total is out of range")
	}

	s.items = next
	s.persistLocked()
	return s.stateLocked(), nil
}

// Clear empties the cart.
func (s *Store) Clear() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked()
	return s.stateLocked()
}

// Totals returns the derived item count and subtotal.
func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.items)
}

// Open shows the cart. Visibility is never persisted.
func (s *Store) Open() domain.CartState {
	return s.setOpen(func(bool) bool { return true })
}

// Close hides the cart.
func (s *Store) Close() domain.CartState {
	return s.setOpen(func(bool) bool { return false })
}

// Toggle flips visibility.
func (s *Store) Toggle() domain.CartState {
	return s.setOpen(func(open bool) bool { return !open })
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// IsOpen reports the visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// State returns a copy of the whole state.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) setOpen(next func(bool) bool) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = next(s.open)
	return s.stateLocked()
}

func (s *Store) removeLocked(k domain.Key) bool {
	i := domain.IndexOf(s.items, k)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store) persistLocked() {
	s.persister.Persist(s.key, cloneItems(s.items))
}

func (s *Store) stateLocked() domain.CartState {
	return domain.CartState{Items: cloneItems(s.items), IsOpen: s.open}
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}
