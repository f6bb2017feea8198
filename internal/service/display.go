package service

import (
	"context"
	"errors"
	"sort"

	"github.com/utafrali/reviews-service/internal/domain"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// displayReviews reshapes raw review rows into the nested display structure:
// content fields grouped, each attribute sub-score resolved to a labeled
// triple, each author characteristic resolved to its human label. Output
// order follows input order. Scores and traits referencing catalog entries
// that no longer exist are dropped rather than failing the whole page.
func (s *ReviewService) displayReviews(ctx context.Context, reviews []domain.Review) ([]domain.DisplayReview, error) {
	shaped := make([]domain.DisplayReview, 0, len(reviews))

	for _, rv := range reviews {
		ratings, err := s.resolveScores(ctx, rv.AttributeScores)
		if err != nil {
			return nil, err
		}

		traits, err := s.resolveTraits(ctx, rv.AuthorTraits)
		if err != nil {
			return nil, err
		}

		shaped = append(shaped, domain.DisplayReview{
			ID:        rv.ID,
			ProductID: rv.ProductID,
			AuthorID:  rv.AuthorID,
			Verified:  rv.Verified,
			Content: domain.ReviewContent{
				Date:    rv.Date,
				Slug:    rv.Slug,
				Title:   rv.Title,
				Summary: rv.Summary,
				Content: rv.Content,
				Status:  rv.Status,
			},
			TotalScore:            rv.TotalScore,
			RatingAttributes:      ratings,
			AuthorCharacteristics: traits,
		})
	}

	return shaped, nil
}

func (s *ReviewService) resolveScores(ctx context.Context, scores domain.ScoreMap) ([]domain.ScoredAttribute, error) {
	resolved := make([]domain.ScoredAttribute, 0, len(scores))

	for _, id := range sortedKeys(scores) {
		attr, err := s.catalog.SingleAttribute(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		resolved = append(resolved, domain.ScoredAttribute{
			ID:    id,
			Label: attr.Name,
			Value: scores[id],
		})
	}

	return resolved, nil
}

func (s *ReviewService) resolveTraits(ctx context.Context, traits domain.TraitMap) ([]domain.AuthorTrait, error) {
	resolved := make([]domain.AuthorTrait, 0, len(traits))

	for _, id := range sortedKeys(traits) {
		char, err := s.catalog.SingleCharacteristic(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		resolved = append(resolved, domain.AuthorTrait{
			ID:    id,
			Label: char.Name,
			Value: char.Label(traits[id]),
		})
	}

	return resolved, nil
}

// sortedKeys fixes the iteration order of the serialized maps so display
// output is deterministic.
func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
