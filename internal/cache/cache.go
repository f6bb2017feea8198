package cache

import (
	"context"
	"fmt"
	"time"
)

// GetOrCompute wraps a read query with the cache-aside pattern. On a hit it
// returns the cached value; on a miss it invokes compute, stores the result,
// and returns it. Two behaviors carried over from the plugin this replaces:
//
//   - bypass deletes the entry before lookup, forcing recomputation (debug
//     mode and explicit caller overrides);
//   - a result compute reports as empty (ok == false) is returned but never
//     cached, so repeated reads of empty result sets re-hit the backing store.
//
// There is no request coalescing: concurrent misses on one key each run
// compute and the last write wins.
func GetOrCompute[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	bypass bool,
	compute func(ctx context.Context) (T, bool, error),
) (T, bool, error) {
	var zero T

	if bypass {
		if err := store.Delete(ctx, key); err != nil {
			return zero, false, fmt.Errorf("purge %s before recompute: %w", key, err)
		}
	} else {
		var cached T
		hit, err := store.Get(ctx, key, &cached)
		if err != nil {
			return zero, false, err
		}
		if hit {
			return cached, true, nil
		}
	}

	value, ok, err := compute(ctx)
	if err != nil {
		return zero, false, err
	}

	if ok {
		if err := store.Set(ctx, key, value, ttl); err != nil {
			return zero, false, err
		}
	}

	return value, ok, nil
}

// PurgeReviewLists drops the product- and author-independent review row sets.
func PurgeReviewLists(ctx context.Context, store Store) error {
	return store.Delete(ctx,
		KeyAllReviews(),
		KeyAdminReviews(),
		KeyVerifiedReviews(),
		KeyLegacyReviewCounts(),
	)
}

// PurgeReview drops one review's single-entry key.
func PurgeReview(ctx context.Context, store Store, reviewID int64) error {
	return store.Delete(ctx, KeySingleReview(reviewID))
}

// PurgeProducts drops every per-product key for the given products.
func PurgeProducts(ctx context.Context, store Store, productIDs ...int64) error {
	var keys []string
	for _, id := range productIDs {
		keys = append(keys,
			KeyReviewsForProduct(id),
			KeyApprovedReviewsForProduct(id),
			KeyReviewCountForProduct(id),
			KeyAttributesForProduct(id),
		)
	}
	return store.Delete(ctx, keys...)
}

// PurgeAuthors drops every per-author key for the given authors.
func PurgeAuthors(ctx context.Context, store Store, authorIDs ...int64) error {
	var keys []string
	for _, id := range authorIDs {
		keys = append(keys,
			KeyReviewsForAuthor(id),
			KeyCharacteristicsForAuthor(id),
		)
	}
	return store.Delete(ctx, keys...)
}

// PurgeTaxonomies drops the attribute and characteristic catalog keys.
func PurgeTaxonomies(ctx context.Context, store Store) error {
	return store.Delete(ctx, KeyAllAttributes(), KeyAllCharacteristics())
}
