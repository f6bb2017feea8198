package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/utafrali/reviews-service/internal/repository"
)

// AggregateService recomputes the derived per-product counters after review
// writes elsewhere in the system. It reads the backing store directly,
// never the cache, so a recompute always sees the freshest rows.
type AggregateService struct {
	reviews repository.ReviewRepository
	meta    repository.ProductMetaRepository
	logger  *slog.Logger
}

// NewAggregateService creates a new aggregation service.
func NewAggregateService(reviews repository.ReviewRepository, meta repository.ProductMetaRepository, logger *slog.Logger) *AggregateService {
	return &AggregateService{
		reviews: reviews,
		meta:    meta,
		logger:  logger,
	}
}

// RefreshReviewCounts recounts each product's approved reviews and persists
// the count to both the legacy and the plugin counter keys.
func (s *AggregateService) RefreshReviewCounts(ctx context.Context, productIDs ...int64) error {
	for _, productID := range productIDs {
		approved, err := s.reviews.ListApprovedByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("refresh review count for product %d: %w", productID, err)
		}

		if len(approved) == 0 {
			// The plugin this replaces left stale counters in place when the
			// last approved review disappeared. Kept for compatibility.
			s.logger.WarnContext(ctx, "no approved reviews, leaving stored count untouched",
				slog.Int64("product_id", productID),
			)
			continue
		}

		count := strconv.Itoa(len(approved))
		if err := s.persistBoth(ctx, productID, repository.MetaLegacyReviewCount, repository.MetaReviewCount, count); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "review count refreshed",
			slog.Int64("product_id", productID),
			slog.String("count", count),
		)
	}

	return nil
}

// RefreshAverageRatings recomputes each product's mean approved total score,
// rounds it half away from zero, and persists it to both the legacy and the
// plugin rating keys.
func (s *AggregateService) RefreshAverageRatings(ctx context.Context, productIDs ...int64) error {
	for _, productID := range productIDs {
		approved, err := s.reviews.ListApprovedByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("refresh average rating for product %d: %w", productID, err)
		}

		if len(approved) == 0 {
			s.logger.WarnContext(ctx, "no approved reviews, leaving stored rating untouched",
				slog.Int64("product_id", productID),
			)
			continue
		}

		var sum int
		for _, rv := range approved {
			sum += rv.TotalScore
		}
		average := int(math.Round(float64(sum) / float64(len(approved))))

		value := strconv.Itoa(average)
		if err := s.persistBoth(ctx, productID, repository.MetaLegacyAverageRating, repository.MetaAverageRating, value); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "average rating refreshed",
			slog.Int64("product_id", productID),
			slog.String("average", value),
		)
	}

	return nil
}

func (s *AggregateService) persistBoth(ctx context.Context, productID int64, legacyKey, pluginKey, value string) error {
	if err := s.meta.Set(ctx, productID, legacyKey, value); err != nil {
		return fmt.Errorf("persist %s for product %d: %w", legacyKey, productID, err)
	}
	if err := s.meta.Set(ctx, productID, pluginKey, value); err != nil {
		return fmt.Errorf("persist %s for product %d: %w", pluginKey, productID, err)
	}
	return nil
}
