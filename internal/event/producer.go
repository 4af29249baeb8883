package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	pkgkafka "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/kafka"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/logger"
)

// Kafka topics for cart events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

const (
	AggregateTypeCart = "cart"
	SourceStorefront  = "storefront"
)

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	SessionID string            `json:"session_id"`
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
	Currency  string            `json:"currency"`
}

// CartClearedData is the payload of a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// Publisher is the event sink used by the cart service.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, items []domain.LineItem) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// Producer publishes cart events to Kafka, keyed by session.
type Producer struct {
	kafka    *pkgkafka.Producer
	currency string
	logger   *slog.Logger
}

// NewProducer creates a new cart event producer.
func NewProducer(kafka *pkgkafka.Producer, currency string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:    kafka,
		currency: currency,
		logger:   logger,
	}
}

// PublishCartUpdated publishes a cart.updated event carrying the full cart.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, items []domain.LineItem) error {
	totals := domain.ComputeTotals(items)
	if items == nil {
		items = []domain.LineItem{}
	}
	data := CartUpdatedData{
		SessionID: sessionID,
		Items:     items,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal,
		Currency:  p.currency,
	}

	evt, err := pkgkafka.NewEvent(TopicCartUpdated, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCartUpdated, evt); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	evt, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, CartClearedData{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCartCleared, evt); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}
	return nil
}

// NopPublisher discards events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishCartUpdated(context.Context, string, []domain.LineItem) error { return nil }
func (NopPublisher) PublishCartCleared(context.Context, string) error                    { return nil }
