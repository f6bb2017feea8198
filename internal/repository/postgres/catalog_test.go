package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/reviews-service/internal/domain"
	"github.com/utafrali/reviews-service/internal/repository"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

var attributeCols = []string{
	"attribute_id", "attribute_slug", "attribute_name", "attribute_desc", "rating_labels",
}

var characteristicCols = []string{
	"charstcs_id", "charstcs_slug", "charstcs_name", "charstcs_desc", "charstcs_values",
}

func sampleAttribute(id int64, name string) domain.Attribute {
	return domain.Attribute{
		ID:          id,
		Slug:        "attr-" + name,
		Name:        name,
		Description: "How the product rates on " + name,
		Labels:      domain.RatingLabels{Min: "Poor", Max: "Excellent"},
	}
}

func attributeRow(a domain.Attribute) []any {
	return []any{a.ID, a.Slug, a.Name, a.Description, a.Labels}
}

func sampleCharacteristic(id int64, name string) domain.Characteristic {
	return domain.Characteristic{
		ID:          id,
		Slug:        "char-" + name,
		Name:        name,
		Description: "Reviewer " + name,
		Values:      map[string]string{"petite": "Petite", "average": "Average"},
	}
}

func characteristicRow(c domain.Characteristic) []any {
	return []any{c.ID, c.Slug, c.Name, c.Description, c.Values}
}

// ─── AttributeRepository ────────────────────────────────────────────────────

func TestAttributeRepository_ListAll(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	rows := pgxmock.NewRows(attributeCols).
		AddRow(attributeRow(sampleAttribute(2, "Comfort"))...).
		AddRow(attributeRow(sampleAttribute(1, "Durability"))...)

	mock.ExpectQuery("SELECT .+ FROM rev_attributes ORDER BY attribute_name").
		WillReturnRows(rows)

	attrs, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "Comfort", attrs[0].Name)
	assert.Equal(t, domain.RatingLabels{Min: "Poor", Max: "Excellent"}, attrs[0].Labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAttributeRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM rev_attributes WHERE attribute_id").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(attributeCols))

	attr, err := repo.GetByID(context.Background(), 404)

	assert.Nil(t, attr)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── CharacteristicRepository ───────────────────────────────────────────────

func TestCharacteristicRepository_ListForAuthor(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCharacteristicRepository(mock)

	rows := pgxmock.NewRows(characteristicCols).
		AddRow(characteristicRow(sampleCharacteristic(3, "Build"))...)

	mock.ExpectQuery("SELECT DISTINCT .+ FROM rev_charstcs .+ JOIN rev_authormeta").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	chars, err := repo.ListForAuthor(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Build", chars[0].Name)
	assert.Equal(t, "Petite", chars[0].Values["petite"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCharacteristicRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCharacteristicRepository(mock)

	want := sampleCharacteristic(3, "Build")
	rows := pgxmock.NewRows(characteristicCols).AddRow(characteristicRow(want)...)

	mock.ExpectQuery("SELECT .+ FROM rev_charstcs WHERE charstcs_id").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── ProductMetaRepository ──────────────────────────────────────────────────

func TestProductMetaRepository_GetSet(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductMetaRepository(mock)

	mock.ExpectExec("INSERT INTO product_meta").
		WithArgs(int64(42), repository.MetaReviewCount, "3").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Set(context.Background(), 42, repository.MetaReviewCount, "3"))

	mock.ExpectQuery("SELECT meta_value FROM product_meta").
		WithArgs(int64(42), repository.MetaReviewCount).
		WillReturnRows(pgxmock.NewRows([]string{"meta_value"}).AddRow("3"))

	value, err := repo.Get(context.Background(), 42, repository.MetaReviewCount)

	require.NoError(t, err)
	assert.Equal(t, "3", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductMetaRepository_Get_Missing(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductMetaRepository(mock)

	mock.ExpectQuery("SELECT meta_value FROM product_meta").
		WithArgs(int64(42), repository.MetaAverageRating).
		WillReturnRows(pgxmock.NewRows([]string{"meta_value"}))

	_, err := repo.Get(context.Background(), 42, repository.MetaAverageRating)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductMetaRepository_SelectedAttributeIDs(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductMetaRepository(mock)

	mock.ExpectQuery("SELECT meta_value FROM product_meta").
		WithArgs(int64(42), repository.MetaProductAttributes).
		WillReturnRows(pgxmock.NewRows([]string{"meta_value"}).AddRow("[2,1,5]"))

	ids, err := repo.SelectedAttributeIDs(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductMetaRepository_SelectedAttributeIDs_NoSelection(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductMetaRepository(mock)

	mock.ExpectQuery("SELECT meta_value FROM product_meta").
		WithArgs(int64(42), repository.MetaProductAttributes).
		WillReturnRows(pgxmock.NewRows([]string{"meta_value"}))

	ids, err := repo.SelectedAttributeIDs(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductMetaRepository_LegacyReviewCounts(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductMetaRepository(mock)

	rows := pgxmock.NewRows([]string{"product_id", "meta_value"}).
		AddRow(int64(42), "3").
		AddRow(int64(43), "not-a-number").
		AddRow(int64(44), "11")

	mock.ExpectQuery("SELECT product_id, meta_value FROM product_meta").
		WithArgs(repository.MetaLegacyReviewCount).
		WillReturnRows(rows)

	counts, err := repo.LegacyReviewCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{42: 3, 44: 11}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
