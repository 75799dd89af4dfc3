package service

import (
	"context"
	"fmt"

	"dinehub/internal/model"
	"dinehub/internal/repository"

	"github.com/rs/zerolog"
)

// DefaultTopSellersLimit is used when the caller does not specify one.
const DefaultTopSellersLimit = 5

// analyticsService implements AnalyticsService on top of the order
// ledger, with an optional cache in front of the aggregation.
type analyticsService struct {
	orderRepo repository.OrderRepository
	cache     TopSellersCache // nil when caching is disabled
	logger    zerolog.Logger
}

// NewAnalyticsService creates a new analytics service. cache may be nil.
func NewAnalyticsService(orderRepo repository.OrderRepository, cache TopSellersCache, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		orderRepo: orderRepo,
		cache:     cache,
		logger:    logger.With().Str("service", "analytics").Logger(),
	}
}

// TopSellers returns the best-selling menu items across the whole order
// history, cancelled orders included. The ranking is recomputed from
// the ledger on demand; a cache hit short-circuits the aggregation.
func (s *analyticsService) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	if limit < 1 {
		limit = DefaultTopSellersLimit
	}

	if s.cache != nil {
		if sellers, ok := s.cache.Get(ctx, limit); ok {
			s.logger.Debug().Int("limit", limit).Msg("top sellers served from cache")
			return sellers, nil
		}
	}

	sellers, err := s.orderRepo.TopSellers(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to aggregate top sellers")
		return nil, fmt.Errorf("failed to aggregate top sellers: %w", err)
	}
	if sellers == nil {
		sellers = []model.TopSeller{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, limit, sellers)
	}

	return sellers, nil
}
