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

const characteristicColumns = `charstcs_id, charstcs_slug, charstcs_name, charstcs_desc, charstcs_values`

// CharacteristicRepository implements repository.CharacteristicRepository using PostgreSQL.
type CharacteristicRepository struct {
	pool database.DBTX
}

// NewCharacteristicRepository creates a new PostgreSQL-backed characteristic repository.
func NewCharacteristicRepository(pool database.DBTX) *CharacteristicRepository {
	return &CharacteristicRepository{pool: pool}
}

// ListAll returns all characteristics ordered by name.
func (r *CharacteristicRepository) ListAll(ctx context.Context) ([]domain.Characteristic, error) {
	query := `
		SELECT ` + characteristicColumns + `
		FROM rev_charstcs
		ORDER BY charstcs_name ASC`

	return r.listCharacteristics(ctx, "characteristic.list_all", query)
}

// ListForAuthor returns the characteristics an author has answered, joined
// through rev_authormeta. Each characteristic appears once.
func (r *CharacteristicRepository) ListForAuthor(ctx context.Context, authorID int64) ([]domain.Characteristic, error) {
	query := `
		SELECT DISTINCT c.charstcs_id, c.charstcs_slug, c.charstcs_name, c.charstcs_desc, c.charstcs_values
		FROM rev_charstcs c
		JOIN rev_authormeta m ON m.charstcs_id = c.charstcs_id
		WHERE m.author_id = $1`

	return r.listCharacteristics(ctx, "characteristic.list_for_author", query, authorID)
}

// GetByID returns a single characteristic by id.
func (r *CharacteristicRepository) GetByID(ctx context.Context, id int64) (*domain.Characteristic, error) {
	query := `
		SELECT ` + characteristicColumns + `
		FROM rev_charstcs
		WHERE charstcs_id = $1`

	ctx, done := database.TraceQuery(ctx, "characteristic.get_by_id", query)

	var c domain.Characteristic
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Values)
	done(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("characteristic", id)
		}
		return nil, fmt.Errorf("get characteristic: %w", err)
	}

	return &c, nil
}

func (r *CharacteristicRepository) listCharacteristics(ctx context.Context, operation, query string, args ...any) ([]domain.Characteristic, error) {
	ctx, done := database.TraceQuery(ctx, operation, query)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("list characteristics: %w", err)
	}
	defer rows.Close()

	var chars []domain.Characteristic
	for rows.Next() {
		var c domain.Characteristic

		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Values); err != nil {
			done(err)
			return nil, fmt.Errorf("scan characteristic row: %w", err)
		}

		chars = append(chars, c)
	}

	if err := rows.Err(); err != nil {
		done(err)
		return nil, fmt.Errorf("iterate characteristic rows: %w", err)
	}
	done(nil)

	if chars == nil {
		chars = []domain.Characteristic{}
	}

	return chars, nil
}
