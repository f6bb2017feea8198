package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/reviews-service/pkg/database"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// GetScore returns the score one review gave one attribute.
func (r *RatingRepository) GetScore(ctx context.Context, reviewID, attributeID int64) (int, error) {
	query := `
		SELECT rating_score
		FROM rev_ratings
		WHERE review_id = $1 AND attribute_id = $2`

	ctx, done := database.TraceQuery(ctx, "rating.get_score", query)

	var score int
	err := r.pool.QueryRow(ctx, query, reviewID, attributeID).Scan(&score)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NotFound("rating", reviewID)
		}
		return 0, fmt.Errorf("get rating score: %w", err)
	}

	return score, nil
}
