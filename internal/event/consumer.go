package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/reviews-service/internal/cache"
	"github.com/utafrali/reviews-service/internal/service"
	pkgkafka "github.com/utafrali/reviews-service/pkg/kafka"
)

// TopicReviewEvents is the single topic carrying all review write events.
var TopicReviewEvents = pkgkafka.Topic("review", "events")

// Review write events published by the moderation and order systems. Each
// one invalidates cached row sets and triggers a counter recompute here.
const (
	EventReviewApproved          = "review.approved"
	EventReviewRejected          = "review.rejected"
	EventReviewDeleted           = "review.deleted"
	EventReviewBulkStatusChanged = "review.bulk_status_changed"
)

// ReviewEventData is the payload shared by all review write events.
type ReviewEventData struct {
	ReviewID   int64   `json:"review_id,omitempty"`
	ProductIDs []int64 `json:"product_ids"`
	AuthorIDs  []int64 `json:"author_ids"`
}

// Handler reacts to review write events: purge the affected cache groups,
// then recompute the per-product counters.
type Handler struct {
	store      cache.Store
	aggregates *service.AggregateService
	logger     *slog.Logger
}

// NewHandler creates a review event handler.
func NewHandler(store cache.Store, aggregates *service.AggregateService, logger *slog.Logger) *Handler {
	return &Handler{
		store:      store,
		aggregates: aggregates,
		logger:     logger,
	}
}

// Handle processes one event from the review events topic. Unknown event
// types are skipped so the topic can grow without breaking this consumer.
func (h *Handler) Handle(ctx context.Context, evt *pkgkafka.Event) error {
	switch evt.EventType {
	case EventReviewApproved, EventReviewRejected, EventReviewDeleted, EventReviewBulkStatusChanged:
	default:
		h.logger.DebugContext(ctx, "ignoring event", slog.String("event_type", evt.EventType))
		return nil
	}

	var data ReviewEventData
	if err := evt.UnmarshalData(&data); err != nil {
		return fmt.Errorf("decode %s event: %w", evt.EventType, err)
	}

	if err := h.purge(ctx, data); err != nil {
		return err
	}

	if err := h.aggregates.RefreshReviewCounts(ctx, data.ProductIDs...); err != nil {
		return err
	}
	if err := h.aggregates.RefreshAverageRatings(ctx, data.ProductIDs...); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "review event processed",
		slog.String("event_type", evt.EventType),
		slog.Int64("review_id", data.ReviewID),
		slog.Any("product_ids", data.ProductIDs),
	)

	return nil
}

func (h *Handler) purge(ctx context.Context, data ReviewEventData) error {
	if err := cache.PurgeReviewLists(ctx, h.store); err != nil {
		return err
	}
	if data.ReviewID > 0 {
		if err := cache.PurgeReview(ctx, h.store, data.ReviewID); err != nil {
			return err
		}
	}
	if len(data.ProductIDs) > 0 {
		if err := cache.PurgeProducts(ctx, h.store, data.ProductIDs...); err != nil {
			return err
		}
	}
	if len(data.AuthorIDs) > 0 {
		if err := cache.PurgeAuthors(ctx, h.store, data.AuthorIDs...); err != nil {
			return err
		}
	}
	return nil
}
