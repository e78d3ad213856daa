package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/models"
	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
)

const (
	statsCacheKey    = "academy:stats"
	statsRecentLimit = 10
	statsDefaultTTL  = 30 * time.Second
)

type enrollmentAggregator interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.EnrollmentStatus) (int, error)
	Revenue(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.EnrollmentRecord, error)
}

type contactAggregator interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ContactStatus) (int, error)
	Recent(ctx context.Context, limit int) ([]models.ContactRecord, error)
}

// StatsService computes the combined collection aggregates, with a
// short-lived redis cache in front so dashboard polling does not hammer
// the database.
type StatsService struct {
	enrollments enrollmentAggregator
	contacts    contactAggregator
	cache       *redis.Client
	ttl         time.Duration
	logger      *zap.Logger
}

// NewStatsService constructs StatsService. The cache client may be nil,
// in which case every call computes fresh aggregates.
func NewStatsService(enrollments enrollmentAggregator, contacts contactAggregator, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsService {
	if ttl <= 0 {
		ttl = statsDefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{enrollments: enrollments, contacts: contacts, cache: cache, ttl: ttl, logger: logger}
}

// Stats returns the aggregate snapshot for both collections.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to fetch statistics")
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*models.Stats, error) {
	totalEnrollments, err := s.enrollments.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeEnrollments, err := s.enrollments.CountByStatus(ctx, models.EnrollmentStatusActive)
	if err != nil {
		return nil, err
	}
	revenue, err := s.enrollments.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	recentEnrollments, err := s.enrollments.Recent(ctx, statsRecentLimit)
	if err != nil {
		return nil, err
	}
	totalContacts, err := s.contacts.Count(ctx)
	if err != nil {
		return nil, err
	}
	newContacts, err := s.contacts.CountByStatus(ctx, models.ContactStatusNew)
	if err != nil {
		return nil, err
	}
	recentContacts, err := s.contacts.Recent(ctx, statsRecentLimit)
	if err != nil {
		return nil, err
	}

	if recentEnrollments == nil {
		recentEnrollments = []models.EnrollmentRecord{}
	}
	if recentContacts == nil {
		recentContacts = []models.ContactRecord{}
	}

	return &models.Stats{
		Enrollments: models.EnrollmentStats{
			Total:   totalEnrollments,
			Active:  activeEnrollments,
			Revenue: revenue,
			Recent:  recentEnrollments,
		},
		Contacts: models.ContactStats{
			Total:  totalContacts,
			New:    newContacts,
			Recent: recentContacts,
		},
	}, nil
}

func (s *StatsService) fromCache(ctx context.Context) *models.Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats models.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *models.Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
