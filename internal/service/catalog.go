package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/utafrali/reviews-service/internal/cache"
	"github.com/utafrali/reviews-service/internal/domain"
	"github.com/utafrali/reviews-service/internal/repository"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// CatalogConfig carries the cache and mode knobs for the catalog service.
type CatalogConfig struct {
	// TTL is the expiry applied to every cached catalog row set.
	TTL time.Duration

	// Bypass forces delete-then-recompute on every read (debug mode).
	Bypass bool

	// GlobalAttributes makes every product share the full attribute catalog
	// instead of its own selection.
	GlobalAttributes bool
}

// CatalogService serves the attribute and characteristic reference data
// behind the review read path.
type CatalogService struct {
	attributes      repository.AttributeRepository
	characteristics repository.CharacteristicRepository
	meta            repository.ProductMetaRepository
	store           cache.Store
	cfg             CatalogConfig
	logger          *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	attributes repository.AttributeRepository,
	characteristics repository.CharacteristicRepository,
	meta repository.ProductMetaRepository,
	store cache.Store,
	cfg CatalogConfig,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		attributes:      attributes,
		characteristics: characteristics,
		meta:            meta,
		store:           store,
		cfg:             cfg,
		logger:          logger,
	}
}

// AllAttributes returns the full attribute catalog in the requested shape.
func (s *CatalogService) AllAttributes(ctx context.Context, q Query) (*Result, error) {
	attrs, err := s.cachedAttributes(ctx, cache.KeyAllAttributes(), s.attributes.ListAll)
	if err != nil {
		return nil, err
	}

	return projectAttributes(attrs, q)
}

// AttributesForProduct returns the attributes selected for a product, in
// selection order. With GlobalAttributes enabled the product id is ignored
// entirely and the full catalog is returned.
func (s *CatalogService) AttributesForProduct(ctx context.Context, productID int64, q Query) (*Result, error) {
	if s.cfg.GlobalAttributes {
		return s.AllAttributes(ctx, q)
	}

	if productID <= 0 {
		return nil, apperrors.MissingParameter("product ID")
	}

	attrs, err := s.cachedAttributes(ctx, cache.KeyAttributesForProduct(productID), func(ctx context.Context) ([]domain.Attribute, error) {
		return s.selectedAttributes(ctx, productID)
	})
	if err != nil {
		return nil, err
	}

	return projectAttributes(attrs, q)
}

// selectedAttributes resolves a product's configured attribute id list into
// rows, one lookup per id. Selections referencing deleted attributes are
// dropped.
func (s *CatalogService) selectedAttributes(ctx context.Context, productID int64) ([]domain.Attribute, error) {
	ids, err := s.meta.SelectedAttributeIDs(ctx, productID)
	if err != nil {
		return nil, err
	}

	attrs := make([]domain.Attribute, 0, len(ids))
	for _, id := range ids {
		attr, err := s.SingleAttribute(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		attrs = append(attrs, *attr)
	}

	return attrs, nil
}

// SingleAttribute returns one attribute by id.
func (s *CatalogService) SingleAttribute(ctx context.Context, id int64) (*domain.Attribute, error) {
	if id <= 0 {
		return nil, apperrors.MissingParameter("attribute ID")
	}

	attr, _, err := cache.GetOrCompute(ctx, s.store, cache.KeySingleAttribute(id), s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) (domain.Attribute, bool, error) {
			a, err := s.attributes.GetByID(ctx, id)
			if err != nil {
				return domain.Attribute{}, false, err
			}
			return *a, true, nil
		})
	if err != nil {
		return nil, err
	}

	return &attr, nil
}

// AllCharacteristics returns the full characteristic catalog in the
// requested shape.
func (s *CatalogService) AllCharacteristics(ctx context.Context, q Query) (*Result, error) {
	chars, err := s.cachedCharacteristics(ctx, cache.KeyAllCharacteristics(), s.characteristics.ListAll)
	if err != nil {
		return nil, err
	}

	return projectCharacteristics(chars, q)
}

// CharacteristicsForAuthor returns the characteristics an author has
// answered, in the requested shape.
func (s *CatalogService) CharacteristicsForAuthor(ctx context.Context, authorID int64, q Query) (*Result, error) {
	if authorID <= 0 {
		return nil, apperrors.MissingParameter("author ID")
	}

	chars, err := s.cachedCharacteristics(ctx, cache.KeyCharacteristicsForAuthor(authorID), func(ctx context.Context) ([]domain.Characteristic, error) {
		return s.characteristics.ListForAuthor(ctx, authorID)
	})
	if err != nil {
		return nil, err
	}

	return projectCharacteristics(chars, q)
}

// SingleCharacteristic returns one characteristic by id.
func (s *CatalogService) SingleCharacteristic(ctx context.Context, id int64) (*domain.Characteristic, error) {
	if id <= 0 {
		return nil, apperrors.MissingParameter("characteristic ID")
	}

	char, _, err := cache.GetOrCompute(ctx, s.store, cache.KeySingleCharacteristic(id), s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) (domain.Characteristic, bool, error) {
			c, err := s.characteristics.GetByID(ctx, id)
			if err != nil {
				return domain.Characteristic{}, false, err
			}
			return *c, true, nil
		})
	if err != nil {
		return nil, err
	}

	return &char, nil
}

func (s *CatalogService) cachedAttributes(ctx context.Context, key string, fetch func(ctx context.Context) ([]domain.Attribute, error)) ([]domain.Attribute, error) {
	attrs, _, err := cache.GetOrCompute(ctx, s.store, key, s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) ([]domain.Attribute, bool, error) {
			rows, err := fetch(ctx)
			if err != nil {
				return nil, false, err
			}
			return rows, len(rows) > 0, nil
		})
	return attrs, err
}

func (s *CatalogService) cachedCharacteristics(ctx context.Context, key string, fetch func(ctx context.Context) ([]domain.Characteristic, error)) ([]domain.Characteristic, error) {
	chars, _, err := cache.GetOrCompute(ctx, s.store, key, s.cfg.TTL, s.cfg.Bypass,
		func(ctx context.Context) ([]domain.Characteristic, bool, error) {
			rows, err := fetch(ctx)
			if err != nil {
				return nil, false, err
			}
			return rows, len(rows) > 0, nil
		})
	return chars, err
}

// Catalog rows are already compact, with their serialized sub-values
// decoded, so the display shape is the object shape.
func projectAttributes(attrs []domain.Attribute, q Query) (*Result, error) {
	return project(attrs, attributeManifest,
		func(a domain.Attribute) int64 { return a.ID },
		q.Projection, q.Order,
		func() (any, error) { return attrs, nil })
}

func projectCharacteristics(chars []domain.Characteristic, q Query) (*Result, error) {
	return project(chars, characteristicManifest,
		func(c domain.Characteristic) int64 { return c.ID },
		q.Projection, q.Order,
		func() (any, error) { return chars, nil })
}
