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

const attributeColumns = `attribute_id, attribute_slug, attribute_name, attribute_desc, rating_labels`

// AttributeRepository implements repository.AttributeRepository using PostgreSQL.
type AttributeRepository struct {
	pool database.DBTX
}

// NewAttributeRepository creates a new PostgreSQL-backed attribute repository.
func NewAttributeRepository(pool database.DBTX) *AttributeRepository {
	return &AttributeRepository{pool: pool}
}

// ListAll returns all attributes ordered by name.
func (r *AttributeRepository) ListAll(ctx context.Context) ([]domain.Attribute, error) {
	query := `
		SELECT ` + attributeColumns + `
		FROM rev_attributes
		ORDER BY attribute_name ASC`

	ctx, done := database.TraceQuery(ctx, "attribute.list_all", query)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer rows.Close()

	var attrs []domain.Attribute
	for rows.Next() {
		var a domain.Attribute

		if err := rows.Scan(&a.ID, &a.Slug, &a.Name, &a.Description, &a.Labels); err != nil {
			done(err)
			return nil, fmt.Errorf("scan attribute row: %w", err)
		}

		attrs = append(attrs, a)
	}

	if err := rows.Err(); err != nil {
		done(err)
		return nil, fmt.Errorf("iterate attribute rows: %w", err)
	}
	done(nil)

	if attrs == nil {
		attrs = []domain.Attribute{}
	}

	return attrs, nil
}

// GetByID returns a single attribute by id.
func (r *AttributeRepository) GetByID(ctx context.Context, id int64) (*domain.Attribute, error) {
	query := `
		SELECT ` + attributeColumns + `
		FROM rev_attributes
		WHERE attribute_id = $1`

	ctx, done := database.TraceQuery(ctx, "attribute.get_by_id", query)

	var a domain.Attribute
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Slug, &a.Name, &a.Description, &a.Labels)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("attribute", id)
		}
		return nil, fmt.Errorf("get attribute: %w", err)
	}

	return &a, nil
}
