package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/reviews-service/internal/cache"
	"github.com/utafrali/reviews-service/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// memStore is an in-memory cache.Store. Tests count backing-store calls
// against it to assert the cache-aside properties.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *memStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

var _ cache.Store = (*memStore)(nil)

// --- repository mocks ---

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListPublic(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListApprovedByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Review, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListVerified(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) CountByProduct(ctx context.Context, productID int64) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

type mockTraitRepo struct {
	mock.Mock
}

func (m *mockTraitRepo) ReviewIDsMatching(ctx context.Context, productID, characteristicID int64, value string) ([]int64, error) {
	args := m.Called(ctx, productID, characteristicID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) GetScore(ctx context.Context, reviewID, attributeID int64) (int, error) {
	args := m.Called(ctx, reviewID, attributeID)
	return args.Int(0), args.Error(1)
}

type mockMetaRepo struct {
	mock.Mock
}

func (m *mockMetaRepo) Get(ctx context.Context, productID int64, key string) (string, error) {
	args := m.Called(ctx, productID, key)
	return args.String(0), args.Error(1)
}

func (m *mockMetaRepo) Set(ctx context.Context, productID int64, key, value string) error {
	args := m.Called(ctx, productID, key, value)
	return args.Error(0)
}

func (m *mockMetaRepo) SelectedAttributeIDs(ctx context.Context, productID int64) ([]int64, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMetaRepo) LegacyReviewCounts(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

type mockAttributeRepo struct {
	mock.Mock
}

func (m *mockAttributeRepo) ListAll(ctx context.Context) ([]domain.Attribute, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Attribute), args.Error(1)
}

func (m *mockAttributeRepo) GetByID(ctx context.Context, id int64) (*domain.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attribute), args.Error(1)
}

type mockCharacteristicRepo struct {
	mock.Mock
}

func (m *mockCharacteristicRepo) ListAll(ctx context.Context) ([]domain.Characteristic, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Characteristic), args.Error(1)
}

func (m *mockCharacteristicRepo) ListForAuthor(ctx context.Context, authorID int64) ([]domain.Characteristic, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.Characteristic), args.Error(1)
}

func (m *mockCharacteristicRepo) GetByID(ctx context.Context, id int64) (*domain.Characteristic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Characteristic), args.Error(1)
}

// --- fixture builders ---

func newTestCatalog(attrs *mockAttributeRepo, chars *mockCharacteristicRepo, meta *mockMetaRepo, store cache.Store, global bool) *CatalogService {
	return NewCatalogService(attrs, chars, meta, store,
		CatalogConfig{TTL: time.Hour, GlobalAttributes: global}, newTestLogger())
}

func newTestReviews(reviews *mockReviewRepo, traits *mockTraitRepo, ratings *mockRatingRepo, meta *mockMetaRepo, catalog *CatalogService, store cache.Store) *ReviewService {
	return NewReviewService(reviews, traits, ratings, meta, catalog, store,
		ReviewConfig{TTL: time.Hour}, newTestLogger())
}
