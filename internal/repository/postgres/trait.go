package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/reviews-service/pkg/database"
)

// TraitRepository implements repository.TraitRepository using PostgreSQL.
type TraitRepository struct {
	pool database.DBTX
}

// NewTraitRepository creates a new PostgreSQL-backed trait repository.
func NewTraitRepository(pool database.DBTX) *TraitRepository {
	return &TraitRepository{pool: pool}
}

// ReviewIDsMatching returns the ids of a product's reviews whose author
// selected the given value for the given characteristic.
func (r *TraitRepository) ReviewIDsMatching(ctx context.Context, productID, characteristicID int64, value string) ([]int64, error) {
	query := `
		SELECT review_id
		FROM rev_authormeta
		WHERE product_id = $1 AND charstcs_id = $2 AND charstcs_value = $3`

	ctx, done := database.TraceQuery(ctx, "trait.review_ids_matching", query)

	rows, err := r.pool.Query(ctx, query, productID, characteristicID, value)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("match trait assignments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64

		if err := rows.Scan(&id); err != nil {
			done(err)
			return nil, fmt.Errorf("scan review id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		done(err)
		return nil, fmt.Errorf("iterate trait rows: %w", err)
	}
	done(nil)

	return ids, nil
}
