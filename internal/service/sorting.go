package service

import (
	"context"

	apperrors "github.com/utafrali/reviews-service/pkg/errors"
	"github.com/utafrali/reviews-service/pkg/slug"
)

// SortFilter is one (characteristic, value) pair a caller filters reviews by.
type SortFilter struct {
	CharacteristicID int64  `json:"charstcs_id" validate:"required,gt=0"`
	Value            string `json:"value" validate:"required"`
}

// SortResult is the outcome of a sorting query. NoMatches distinguishes "a
// filter matched nothing" from an error and from "no filters applied".
type SortResult struct {
	IDs       []int64 `json:"review_ids"`
	NoMatches bool    `json:"no_matches"`
}

// ReviewsForSorting returns the ids of a product's reviews whose authors
// match every submitted (characteristic, value) filter. Per-filter id sets
// are intersected; any filter matching zero reviews short-circuits to the
// no-matches result. Values are normalized to their stored key form, so
// "Extra Large" and "extra-large" filter identically. Deliberately uncached:
// filter combinations are too sparse to be worth keying.
func (s *ReviewService) ReviewsForSorting(ctx context.Context, productID int64, filters []SortFilter) (*SortResult, error) {
	if productID <= 0 {
		return nil, apperrors.MissingParameter("product ID")
	}
	if len(filters) == 0 {
		return nil, apperrors.MissingParameter("characteristic filter")
	}

	var result []int64
	for i, f := range filters {
		if f.CharacteristicID <= 0 {
			return nil, apperrors.MissingParameter("characteristic ID")
		}
		if f.Value == "" {
			return nil, apperrors.MissingParameter("characteristic value")
		}

		ids, err := s.traits.ReviewIDsMatching(ctx, productID, f.CharacteristicID, slug.Make(f.Value))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &SortResult{NoMatches: true}, nil
		}

		if i == 0 {
			result = ids
			continue
		}

		result = intersect(result, ids)
		if len(result) == 0 {
			return &SortResult{NoMatches: true}, nil
		}
	}

	return &SortResult{IDs: result}, nil
}

// intersect keeps the elements of a that also appear in b, preserving a's
// order.
func intersect(a, b []int64) []int64 {
	inB := make(map[int64]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}

	var out []int64
	for _, id := range a {
		if inB[id] {
			out = append(out, id)
		}
	}
	return out
}
