package repository

import (
	"context"

	"github.com/utafrali/reviews-service/internal/domain"
)

// ReviewRepository defines the read operations over stored reviews plus the
// scalar count used by the aggregation layer. List results are newest first.
type ReviewRepository interface {
	// ListAll returns every review regardless of status (admin view).
	ListAll(ctx context.Context) ([]domain.Review, error)

	// ListPublic returns every review except rejected ones.
	ListPublic(ctx context.Context) ([]domain.Review, error)

	// ListByProduct returns a product's reviews, excluding rejected ones.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)

	// ListApprovedByProduct returns a product's approved reviews only.
	ListApprovedByProduct(ctx context.Context, productID int64) ([]domain.Review, error)

	// ListByAuthor returns an author's reviews, excluding rejected ones.
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Review, error)

	// ListVerified returns verified-purchase reviews, excluding rejected ones.
	ListVerified(ctx context.Context) ([]domain.Review, error)

	// GetByID returns a single review or a not-found error.
	GetByID(ctx context.Context, id int64) (*domain.Review, error)

	// CountByProduct counts a product's reviews, excluding rejected ones.
	CountByProduct(ctx context.Context, productID int64) (int, error)
}

// AttributeRepository reads the attribute catalog.
type AttributeRepository interface {
	// ListAll returns all attributes ordered by name.
	ListAll(ctx context.Context) ([]domain.Attribute, error)

	// GetByID returns a single attribute or a not-found error.
	GetByID(ctx context.Context, id int64) (*domain.Attribute, error)
}

// CharacteristicRepository reads the characteristic catalog.
type CharacteristicRepository interface {
	// ListAll returns all characteristics ordered by name.
	ListAll(ctx context.Context) ([]domain.Characteristic, error)

	// ListForAuthor returns the characteristics an author has answered,
	// joined through their trait assignments.
	ListForAuthor(ctx context.Context, authorID int64) ([]domain.Characteristic, error)

	// GetByID returns a single characteristic or a not-found error.
	GetByID(ctx context.Context, id int64) (*domain.Characteristic, error)
}

// TraitRepository reads author trait assignments, the join records backing
// review sorting.
type TraitRepository interface {
	// ReviewIDsMatching returns the ids of a product's reviews whose author
	// selected the given value for the given characteristic.
	ReviewIDsMatching(ctx context.Context, productID, characteristicID int64, value string) ([]int64, error)
}

// RatingRepository reads individual per-attribute rating rows.
type RatingRepository interface {
	// GetScore returns the score one review gave one attribute, or a
	// not-found error when no such rating row exists.
	GetScore(ctx context.Context, reviewID, attributeID int64) (int, error)
}

// ProductMetaRepository is the key/value metadata store on products. The
// aggregation layer persists counters through it and the attribute catalog
// reads each product's selected attribute list from it.
type ProductMetaRepository interface {
	// Get returns the raw value stored under (productID, key), or a
	// not-found error when the key is absent.
	Get(ctx context.Context, productID int64, key string) (string, error)

	// Set upserts the value stored under (productID, key).
	Set(ctx context.Context, productID int64, key, value string) error

	// SelectedAttributeIDs returns the product's configured attribute id
	// list, in selection order. A product with no selection yields nil.
	SelectedAttributeIDs(ctx context.Context, productID int64) ([]int64, error)

	// LegacyReviewCounts returns the legacy per-product review counters,
	// keyed by product id.
	LegacyReviewCounts(ctx context.Context) (map[int64]int, error)
}
