package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/cart"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/event"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

// ProductLookup resolves products at add-time.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// StoreRegistry hands out the store of a session.
type StoreRegistry interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

// AddItemInput holds the parameters for adding an item to the cart. Price
// and display data come from the catalog, never from the caller.
type AddItemInput struct {
	ProductID string `json:"product_id"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// CartView is the cart as presented to the storefront.
type CartView struct {
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
	Currency  string            `json:"currency"`
	IsOpen    bool              `json:"is_open"`
}

// TotalsView is the totals-only projection of a cart.
type TotalsView struct {
	domain.Totals
	Currency string `json:"currency"`
}

// CartService implements the session-facing cart use cases.
type CartService struct {
	registry  StoreRegistry
	products  ProductLookup
	publisher event.Publisher
	currency  string
	logger    *slog.Logger
}

// NewCartService creates a new cart service. A nil publisher discards events.
func NewCartService(registry StoreRegistry, products ProductLookup, publisher event.Publisher, currency string, logger *slog.Logger) *CartService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &CartService{
		registry:  registry,
		products:  products,
		publisher: publisher,
		currency:  currency,
		logger:    logger,
	}
}

// GetCart returns the session's cart, empty if it has never been used.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (CartView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.view(store.State()), nil
}

// Totals returns the item count and subtotal of the session's cart.
func (s *CartService) Totals(ctx context.Context, sessionID string) (TotalsView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return TotalsView{}, err
	}
	return TotalsView{Totals: store.Totals(), Currency: s.currency}, nil
}

// AddItem resolves the product from the catalog and adds it to the cart,
// snapshotting the current price, name and image.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (CartView, error) {
	if input.ProductID == "" {
		return CartView{}, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 1 {
		return CartView{}, apperrors.InvalidInput("quantity must be at least 1")
	}

	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}

	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return s.view(store.State()), fmt.Errorf("resolve product %s: %w", input.ProductID, err)
	}
	if !product.AcceptsVariant(input.Variant) {
		msg := fmt.Sprintf("product %s has no variant %q", product.ID, input.Variant)
		if len(product.Sizes) > 0 && input.Variant == "" {
			msg = fmt.Sprintf("product %s requires a size", product.ID)
		}
		return s.view(store.State()), apperrors.InvalidInput(msg)
	}

	state, err := store.AddItem(product.ID, input.Variant, product.Price, input.Quantity, domain.ItemMetadata{
		Name:     product.Name,
		ImageURL: product.ImageURL,
	})
	if err != nil {
		return s.view(state), err
	}

	cartItemsAdded.WithLabelValues(product.Category).Add(float64(input.Quantity))
	cartMutations.WithLabelValues("add").Inc()
	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", product.ID),
		slog.String("variant", input.Variant),
		slog.Int("quantity", input.Quantity),
	)
	s.publishUpdated(ctx, sessionID, state.Items)

	return s.view(state), nil
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it.
// A line that is not in the cart is left alone.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (CartView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}

	before := store.Items()
	state, err := store.UpdateQuantity(productID, variant, quantity)
	if err != nil {
		return s.view(state), err
	}
	if s.changed(before, state.Items) {
		cartMutations.WithLabelValues("update").Inc()
		s.logger.InfoContext(ctx, "cart item quantity updated",
			slog.String("session_id", sessionID),
			slog.String("product_id", productID),
			slog.String("variant", variant),
			slog.Int("quantity", quantity),
		)
		s.publishUpdated(ctx, sessionID, state.Items)
	}

	return s.view(state), nil
}

// RemoveItem deletes a line from the cart. Removing a missing line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, variant string) (CartView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}

	before := store.Items()
	state := store.RemoveItem(productID, variant)
	if s.changed(before, state.Items) {
		cartMutations.WithLabelValues("remove").Inc()
		s.logger.InfoContext(ctx, "item removed from cart",
			slog.String("session_id", sessionID),
			slog.String("product_id", productID),
			slog.String("variant", variant),
		)
		s.publishUpdated(ctx, sessionID, state.Items)
	}

	return s.view(state), nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) (CartView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}

	state := store.Clear()
	cartMutations.WithLabelValues("clear").Inc()
	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))

	if err := s.publisher.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return s.view(state), nil
}

// Open shows the cart.
func (s *CartService) Open(ctx context.Context, sessionID string) (CartView, error) {
	return s.visibility(ctx, sessionID, (*cart.Store).Open)
}

// Close hides the cart.
func (s *CartService) Close(ctx context.Context, sessionID string) (CartView, error) {
	return s.visibility(ctx, sessionID, (*cart.Store).Close)
}

// Toggle flips the cart's visibility.
func (s *CartService) Toggle(ctx context.Context, sessionID string) (CartView, error) {
	return s.visibility(ctx, sessionID, (*cart.Store).Toggle)
}

func (s *CartService) visibility(ctx context.Context, sessionID string, op func(*cart.Store) domain.CartState) (CartView, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.view(op(store)), nil
}

func (s *CartService) changed(before, after []domain.LineItem) bool {
	return !slices.Equal(before, after)
}

func (s *CartService) publishUpdated(ctx context.Context, sessionID string, items []domain.LineItem) {
	if err := s.publisher.PublishCartUpdated(ctx, sessionID, items); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) view(state domain.CartState) CartView {
	totals := state.Totals()
	items := state.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartView{
		Items:     items,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal,
		Currency:  s.currency,
		IsOpen:    state.IsOpen,
	}
}
