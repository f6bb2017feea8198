package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/reviews-service/internal/repository"
	"github.com/utafrali/reviews-service/pkg/database"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// ProductMetaRepository implements repository.ProductMetaRepository using
// PostgreSQL. Values are stored as text; callers own the encoding.
type ProductMetaRepository struct {
	pool database.DBTX
}

// NewProductMetaRepository creates a new PostgreSQL-backed product metadata repository.
func NewProductMetaRepository(pool database.DBTX) *ProductMetaRepository {
	return &ProductMetaRepository{pool: pool}
}

// Get returns the raw value stored under (productID, key).
func (r *ProductMetaRepository) Get(ctx context.Context, productID int64, key string) (string, error) {
	query := `
		SELECT meta_value
		FROM product_meta
		WHERE product_id = $1 AND meta_key = $2`

	ctx, done := database.TraceQuery(ctx, "product_meta.get", query)

	var value string
	err := r.pool.QueryRow(ctx, query, productID, key).Scan(&value)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("product meta", productID)
		}
		return "", fmt.Errorf("get product meta: %w", err)
	}

	return value, nil
}

// Set upserts the value stored under (productID, key).
func (r *ProductMetaRepository) Set(ctx context.Context, productID int64, key, value string) error {
	query := `
		INSERT INTO product_meta (product_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`

	ctx, done := database.TraceQuery(ctx, "product_meta.set", query)

	_, err := r.pool.Exec(ctx, query, productID, key, value)
	done(err)
	if err != nil {
		return fmt.Errorf("set product meta: %w", err)
	}

	return nil
}

// SelectedAttributeIDs returns the product's configured attribute id list in
// selection order. The list is stored as a JSON array under
// rev_product_attributes; a product with no selection yields nil.
func (r *ProductMetaRepository) SelectedAttributeIDs(ctx context.Context, productID int64) ([]int64, error) {
	raw, err := r.Get(ctx, productID, repository.MetaProductAttributes)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode product attribute list: %w", err)
	}

	return ids, nil
}

// LegacyReviewCounts returns the legacy per-product review counters keyed by
// product id. Rows holding non-numeric values are skipped.
func (r *ProductMetaRepository) LegacyReviewCounts(ctx context.Context) (map[int64]int, error) {
	query := `
		SELECT product_id, meta_value
		FROM product_meta
		WHERE meta_key = $1`

	ctx, done := database.TraceQuery(ctx, "product_meta.legacy_review_counts", query)

	rows, err := r.pool.Query(ctx, query, repository.MetaLegacyReviewCount)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("list legacy review counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			productID int64
			value     string
		)

		if err := rows.Scan(&productID, &value); err != nil {
			done(err)
			return nil, fmt.Errorf("scan legacy count row: %w", err)
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		counts[productID] = count
	}

	if err := rows.Err(); err != nil {
		done(err)
		return nil, fmt.Errorf("iterate legacy count rows: %w", err)
	}
	done(nil)

	return counts, nil
}
