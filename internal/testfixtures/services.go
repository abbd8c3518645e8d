package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/scheduler"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Location    *time.Location
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Location:    time.UTC,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	if factory.Location == nil {
		factory.Location = time.UTC
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithLocation overrides the business time zone used by the factory.
func WithLocation(location *time.Location) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Location = location
	}
}

// EventServiceDeps captures dependencies for constructing an event service.
type EventServiceDeps struct {
	Events      application.EventRepository
	Trainers    application.TrainerDirectory
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEventService builds an event service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewEventService(deps EventServiceDeps) *application.EventService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEventService(
		deps.Events,
		deps.Trainers,
		idGen,
		now,
		f.Location,
		application.WithEventLogger(deps.Logger),
	)
}

// TrainerServiceDeps captures dependencies for constructing a trainer service.
type TrainerServiceDeps struct {
	Trainers    application.TrainerRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewTrainerService builds a trainer service using the supplied dependencies.
func (f *ServiceFactory) NewTrainerService(deps TrainerServiceDeps) *application.TrainerService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewTrainerServiceWithLogger(
		deps.Trainers,
		idGen,
		now,
		deps.Logger,
	)
}

// AnalyticsServiceDeps captures dependencies for constructing an analytics service.
type AnalyticsServiceDeps struct {
	Events application.EventRepository
	Now    func() time.Time
	Hours  scheduler.OperatingHours
	Logger *slog.Logger
}

// NewAnalyticsService builds an analytics service using the supplied dependencies.
func (f *ServiceFactory) NewAnalyticsService(deps AnalyticsServiceDeps) *application.AnalyticsService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	hours := deps.Hours
	if hours.Open == 0 && hours.Close == 0 {
		hours = scheduler.DefaultOperatingHours()
	}
	return application.NewAnalyticsService(
		deps.Events,
		now,
		f.Location,
		hours,
		deps.Logger,
	)
}
