package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/reviews-service/internal/domain"
	"github.com/utafrali/reviews-service/pkg/database"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

const reviewColumns = `review_id, product_id, author_id, review_date, review_slug,
	review_title, review_summary, review_content, review_status, is_verified,
	rating_total_score, rating_attributes, author_charstcs`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// ListAll returns every review regardless of status, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_all", query)
}

// ListPublic returns every review except rejected ones, newest first.
func (r *ReviewRepository) ListPublic(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE review_status <> $1
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_public", query, domain.StatusRejected)
}

// ListByProduct returns a product's non-rejected reviews, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE product_id = $1 AND review_status <> $2
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_by_product", query, productID, domain.StatusRejected)
}

// ListApprovedByProduct returns a product's approved reviews, newest first.
func (r *ReviewRepository) ListApprovedByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE product_id = $1 AND review_status = $2
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_approved_by_product", query, productID, domain.StatusApproved)
}

// ListByAuthor returns an author's non-rejected reviews, newest first.
func (r *ReviewRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE author_id = $1 AND review_status <> $2
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_by_author", query, authorID, domain.StatusRejected)
}

// ListVerified returns non-rejected verified-purchase reviews, newest first.
func (r *ReviewRepository) ListVerified(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE is_verified = TRUE AND review_status <> $1
		ORDER BY review_date DESC`

	return r.listReviews(ctx, "review.list_verified", query, domain.StatusRejected)
}

// GetByID returns a single review by id.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM rev_content
		WHERE review_id = $1`

	ctx, done := database.TraceQuery(ctx, "review.get_by_id", query)

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.AuthorID,
		&rv.Date,
		&rv.Slug,
		&rv.Title,
		&rv.Summary,
		&rv.Content,
		&rv.Status,
		&rv.Verified,
		&rv.TotalScore,
		&rv.AttributeScores,
		&rv.AuthorTraits,
	)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

// CountByProduct counts a product's non-rejected reviews.
func (r *ReviewRepository) CountByProduct(ctx context.Context, productID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM rev_content
		WHERE product_id = $1 AND review_status <> $2`

	ctx, done := database.TraceQuery(ctx, "review.count_by_product", query)

	var count int
	err := r.pool.QueryRow(ctx, query, productID, domain.StatusRejected).Scan(&count)
	done(err)
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *ReviewRepository) listReviews(ctx context.Context, operation, query string, args ...any) ([]domain.Review, error) {
	ctx, done := database.TraceQuery(ctx, operation, query)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review

		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.AuthorID,
			&rv.Date,
			&rv.Slug,
			&rv.Title,
			&rv.Summary,
			&rv.Content,
			&rv.Status,
			&rv.Verified,
			&rv.TotalScore,
			&rv.AttributeScores,
			&rv.AuthorTraits,
		); err != nil {
			done(err)
			return nil, fmt.Errorf("scan review row: %w", err)
		}

		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		done(err)
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	done(nil)

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
