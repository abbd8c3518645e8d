package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/scheduler"
)

// AnalyticsService derives dashboard statistics from event snapshots read
// through the repository. Snapshots are cached briefly per query because
// dashboards poll far more often than bookings change.
type AnalyticsService struct {
	events   EventRepository
	now      func() time.Time
	location *time.Location
	hours    scheduler.OperatingHours
	cache    *analyticsCache
	logger   *slog.Logger
}

// AnalyticsServiceOption customises optional analytics dependencies.
type AnalyticsServiceOption func(*AnalyticsService)

// WithSnapshotTTL overrides how long computed snapshots remain cached.
func WithSnapshotTTL(ttl time.Duration) AnalyticsServiceOption {
	return func(s *AnalyticsService) {
		if ttl > 0 {
			s.cache = newAnalyticsCache(ttl, 64, s.now)
		}
	}
}

// NewAnalyticsService wires dependencies for analytics queries.
func NewAnalyticsService(events EventRepository, now func() time.Time, location *time.Location, hours scheduler.OperatingHours, logger *slog.Logger, opts ...AnalyticsServiceOption) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if hours.Close < hours.Open {
		hours = scheduler.DefaultOperatingHours()
	}
	s := &AnalyticsService{
		events:   events,
		now:      now,
		location: location,
		hours:    hours,
		cache:    newAnalyticsCache(30*time.Second, 64, now),
		logger:   defaultLogger(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot computes (or returns a cached) analytics view over the events
// matching the params.
func (s *AnalyticsService) Snapshot(ctx context.Context, params AnalyticsParams) (scheduler.Analytics, error) {
	if s == nil || s.events == nil {
		return scheduler.Analytics{}, fmt.Errorf("event repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "AnalyticsService", "Snapshot", "trainer_id", params.TrainerID)

	key := s.cacheKey(params)
	if snapshot, ok := s.cache.Get(key); ok {
		return snapshot, nil
	}

	filter := EventRepositoryFilter{TrainerID: params.TrainerID}
	if params.Period != ListPeriodNone {
		reference := params.PeriodReference
		if reference.IsZero() {
			reference = s.now()
		}
		start, end := periodRange(params.Period, reference, s.location)
		filter.StartsAfter = &start
		filter.StartsBefore = &end
	}

	events, err := s.events.ListEvents(ctx, filter)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load analytics snapshot", "error", err)
		return scheduler.Analytics{}, mapEventRepoError(err)
	}

	snapshot := scheduler.ComputeAnalytics(toSchedulerEvents(events), s.now(), s.location, s.hours)
	s.cache.Put(key, snapshot)

	return snapshot, nil
}

// InvalidateCache drops cached snapshots. Wire this to mutation paths when
// dashboards must reflect writes immediately.
func (s *AnalyticsService) InvalidateCache() {
	if s == nil {
		return
	}
	s.cache.Invalidate()
}

func (s *AnalyticsService) cacheKey(params AnalyticsParams) string {
	parts := []string{params.TrainerID, string(params.Period)}
	if !params.PeriodReference.IsZero() {
		parts = append(parts, params.PeriodReference.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, "|")
}
