package analytics

import (
	"context"
	"fmt"

	"lookup-tracker/db"
	"lookup-tracker/models"
)

const (
	topCountriesLimit = 10
	recentEventsLimit = 20
)

// AnalyticsService assembles the aggregate view from the store's query
// operations. It adds no computation of its own; a store failure is a hard
// failure here because there is nothing meaningful to show without it.
type AnalyticsService struct {
	repo db.SearchRepository
}

func NewAnalyticsService(repo db.SearchRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

func (s *AnalyticsService) Snapshot(ctx context.Context) (*models.AggregateSnapshot, error) {
	phoneCounts, err := s.repo.CountByCountry(ctx, models.SearchKindPhone, topCountriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate phone searches: %w", err)
	}

	ipCounts, err := s.repo.CountByCountry(ctx, models.SearchKindIP, topCountriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ip searches: %w", err)
	}

	totalPhone, err := s.repo.CountByKind(ctx, models.SearchKindPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to count phone searches: %w", err)
	}

	totalIP, err := s.repo.CountByKind(ctx, models.SearchKindIP)
	if err != nil {
		return nil, fmt.Errorf("failed to count ip searches: %w", err)
	}

	recent, err := s.repo.FindRecent(ctx, recentEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}

	return &models.AggregateSnapshot{
		PhoneCountryCounts: phoneCounts,
		IPCountryCounts:    ipCounts,
		TotalPhoneCount:    totalPhone,
		TotalIPCount:       totalIP,
		RecentEvents:       recent,
	}, nil
}
