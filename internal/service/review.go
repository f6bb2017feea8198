package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/utafrali/reviews-service/internal/cache"
	"github.com/utafrali/reviews-service/internal/domain"
	"github.com/utafrali/reviews-service/internal/repository"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// Query carries the shared shape options of every list operation.
type Query struct {
	Projection Projection
	Order      Order
}

// ReviewConfig carries the cache knobs for the review query service.
type ReviewConfig struct {
	// TTL is the expiry applied to every cached review row set.
	TTL time.Duration

	// Bypass forces delete-then-recompute on every read (debug mode).
	Bypass bool
}

// ReviewService is the review read path: parameter validation, cache-aside
// row-set fetch, projection into the requested shape.
type ReviewService struct {
	reviews repository.ReviewRepository
	traits  repository.TraitRepository
	ratings repository.RatingRepository
	meta    repository.ProductMetaRepository
	catalog *CatalogService
	store   cache.Store
	cfg     ReviewConfig
	logger  *slog.Logger
}

// NewReviewService creates a new review query service.
func NewReviewService(
	reviews repository.ReviewRepository,
	traits repository.TraitRepository,
	ratings repository.RatingRepository,
	meta repository.ProductMetaRepository,
	catalog *CatalogService,
	store cache.Store,
	cfg ReviewConfig,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		traits:  traits,
		ratings: ratings,
		meta:    meta,
		catalog: catalog,
		store:   store,
		cfg:     cfg,
		logger:  logger,
	}
}

// AdminReviews returns every review regardless of status.
func (s *ReviewService) AdminReviews(ctx context.Context, q Query) (*Result, error) {
	reviews, err := s.listCached(ctx, cache.KeyAdminReviews(), s.reviews.ListAll)
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// AllReviews returns every non-rejected review.
func (s *ReviewService) AllReviews(ctx context.Context, q Query) (*Result, error) {
	reviews, err := s.listCached(ctx, cache.KeyAllReviews(), s.reviews.ListPublic)
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// ReviewsForProduct returns a product's non-rejected reviews.
func (s *ReviewService) ReviewsForProduct(ctx context.Context, productID int64, q Query) (*Result, error) {
	if productID <= 0 {
		return nil, apperrors.MissingParameter("product ID")
	}

	reviews, err := s.listCached(ctx, cache.KeyReviewsForProduct(productID), func(ctx context.Context) ([]domain.Review, error) {
		return s.reviews.ListByProduct(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// ApprovedReviewsForProduct returns a product's approved reviews only.
func (s *ReviewService) ApprovedReviewsForProduct(ctx context.Context, productID int64, q Query) (*Result, error) {
	if productID <= 0 {
		return nil, apperrors.MissingParameter("product ID")
	}

	reviews, err := s.approvedForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// approvedForProduct is the cached approved row set, shared with the
// aggregation layer.
func (s *ReviewService) approvedForProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	return s.listCached(ctx, cache.KeyApprovedReviewsForProduct(productID), func(ctx context.Context) ([]domain.Review, error) {
		return s.reviews.ListApprovedByProduct(ctx, productID)
	})
}

// ReviewsForAuthor returns an author's non-rejected reviews.
func (s *ReviewService) ReviewsForAuthor(ctx context.Context, authorID int64, q Query) (*Result, error) {
	if authorID <= 0 {
		return nil, apperrors.MissingParameter("author ID")
	}

	reviews, err := s.listCached(ctx, cache.KeyReviewsForAuthor(authorID), func(ctx context.Context) ([]domain.Review, error) {
		return s.reviews.ListByAuthor(ctx, authorID)
	})
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// VerifiedReviews returns non-rejected verified-purchase reviews.
func (s *ReviewService) VerifiedReviews(ctx context.Context, q Query) (*Result, error) {
	reviews, err := s.listCached(ctx, cache.KeyVerifiedReviews(), s.reviews.ListVerified)
	if err != nil {
		return nil, err
	}
	return s.projectReviews(ctx, reviews, q)
}

// SingleReview returns one review by id. A valid id with no matching row is
// a not-found error, never a missing-parameter error.
func (s *ReviewService) SingleReview(ctx context.Context, reviewID int64) (*domain.Review, error) {
	if reviewID <= 0 {
		return nil, apperrors.MissingParameter("review ID")
	}

	review, _, err := cache.GetOrCompute(ctx, s.store, cache.KeySingleReview(reviewID), s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) (domain.Review, bool, error) {
			rv, err := s.reviews.GetByID(ctx, reviewID)
			if err != nil {
				return domain.Review{}, false, err
			}
			return *rv, true, nil
		})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// ReviewBatch resolves a caller-supplied id list, preserving its order.
// Ids that no longer resolve are dropped.
func (s *ReviewService) ReviewBatch(ctx context.Context, reviewIDs []int64) ([]domain.Review, error) {
	if len(reviewIDs) == 0 {
		return nil, apperrors.MissingParameter("review ID list")
	}

	reviews := make([]domain.Review, 0, len(reviewIDs))
	for _, id := range reviewIDs {
		rv, err := s.SingleReview(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		reviews = append(reviews, *rv)
	}

	return reviews, nil
}

// ReviewCountForProduct returns the number of non-rejected reviews a product
// has. A zero count is treated as an empty result and never cached.
func (s *ReviewService) ReviewCountForProduct(ctx context.Context, productID int64) (int, error) {
	if productID <= 0 {
		return 0, apperrors.MissingParameter("product ID")
	}

	count, _, err := cache.GetOrCompute(ctx, s.store, cache.KeyReviewCountForProduct(productID), s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) (int, bool, error) {
			n, err := s.reviews.CountByProduct(ctx, productID)
			if err != nil {
				return 0, false, err
			}
			return n, n > 0, nil
		})
	return count, err
}

// LegacyReviewCounts returns the per-product legacy review counters.
func (s *ReviewService) LegacyReviewCounts(ctx context.Context) (map[int64]int, error) {
	counts, _, err := cache.GetOrCompute(ctx, s.store, cache.KeyLegacyReviewCounts(), s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) (map[int64]int, bool, error) {
			m, err := s.meta.LegacyReviewCounts(ctx)
			if err != nil {
				return nil, false, err
			}
			return m, len(m) > 0, nil
		})
	return counts, err
}

// RatingForReviewAttribute returns the score one review gave one attribute.
// Uncached; callers hit it rarely and always want the stored row.
func (s *ReviewService) RatingForReviewAttribute(ctx context.Context, reviewID, attributeID int64) (int, error) {
	if reviewID <= 0 {
		return 0, apperrors.MissingParameter("review ID")
	}
	if attributeID <= 0 {
		return 0, apperrors.MissingParameter("attribute ID")
	}

	return s.ratings.GetScore(ctx, reviewID, attributeID)
}

func (s *ReviewService) listCached(ctx context.Context, key string, fetch func(ctx context.Context) ([]domain.Review, error)) ([]domain.Review, error) {
	reviews, _, err := cache.GetOrCompute(ctx, s.store, key, s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) ([]domain.Review, bool, error) {
			rows, err := fetch(ctx)
			if err != nil {
				return nil, false, err
			}
			return rows, len(rows) > 0, nil
		})
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) projectReviews(ctx context.Context, reviews []domain.Review, q Query) (*Result, error) {
	return project(reviews, reviewManifest,
		func(r domain.Review) int64 { return r.ID },
		q.Projection, q.Order,
		func() (any, error) {
			shaped, err := s.displayReviews(ctx, reviews)
			if err != nil {
				return nil, err
			}
			return shaped, nil
		})
}
