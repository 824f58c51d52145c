package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/cache"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
)

// DonorSearcher is the slice of the user repository the search service needs.
type DonorSearcher interface {
	SearchDonors(ctx context.Context, bloodGroup, district, upazila string) ([]models.User, error)
}

// donorSearchTTL keeps search results warm without letting role or status
// changes go stale for long.
const donorSearchTTL = 30 * time.Second

// SearchService answers the public donor search, with a short-lived cache in
// front of the store.
type SearchService struct {
	users DonorSearcher
}

func NewSearchService(users DonorSearcher) *SearchService {
	return &SearchService{users: users}
}

// Donors returns active donors matching the given filters. Empty filters
// match everything.
func (s *SearchService) Donors(ctx context.Context, bloodGroup, district, upazila string) ([]models.User, error) {
	key := fmt.Sprintf("donor-search:%s:%s:%s", bloodGroup, district, upazila)

	var cached []models.User
	if cache.Get(key, &cached) {
		metrics.CacheHits.WithLabelValues("donor-search").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("donor-search").Inc()

	donors, err := s.users.SearchDonors(ctx, bloodGroup, district, upazila)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(key, donors, donorSearchTTL)
	return donors, nil
}
