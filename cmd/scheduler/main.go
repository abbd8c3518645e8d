package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/config"
	"github.com/example/club-scheduler/internal/diagnostics"
	httptransport "github.com/example/club-scheduler/internal/http"
	"github.com/example/club-scheduler/internal/persistence"
	"github.com/example/club-scheduler/internal/persistence/memory"
	"github.com/example/club-scheduler/internal/persistence/sqlite"
	"github.com/example/club-scheduler/internal/scheduler"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var (
		eventStore   persistence.EventRepository
		trainerStore persistence.TrainerRepository
		closeStore   func() error
	)
	if cfg.SQLiteDSN == "memory" {
		store := memory.NewStore()
		eventStore, trainerStore = store, store
		closeStore = store.Close
		logger.Warn("running with in-memory storage; bookings are lost on shutdown")
	} else {
		storage, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			logger.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		if err := storage.Migrate(context.Background()); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			_ = storage.Close()
			os.Exit(1)
		}
		eventStore, trainerStore = storage.Events, storage.Trainers
		closeStore = storage.Close
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	now := time.Now

	eventRepo := newEventRepositoryAdapter(eventStore)
	trainerRepo := newTrainerRepositoryAdapter(trainerStore)
	trainerDirectory := newTrainerDirectoryAdapter(trainerStore)
	recorder := diagnostics.NewSlogRecorder(logger)

	analyticsService := application.NewAnalyticsService(eventRepo, now, cfg.BusinessTimezone,
		scheduler.OperatingHours{Open: cfg.OpeningHour, Close: cfg.ClosingHour},
		logger,
		application.WithSnapshotTTL(cfg.AnalyticsTTL),
	)
	eventService := application.NewEventService(eventRepo, trainerDirectory, idGenerator, now, cfg.BusinessTimezone,
		application.WithEventLogger(logger),
		application.WithEventRecorder(recorder),
		application.WithEventMutationNotifier(analyticsService.InvalidateCache),
	)
	trainerService := application.NewTrainerServiceWithLogger(trainerRepo, idGenerator, now, logger)

	eventHandler := httptransport.NewEventHandler(eventService, logger)
	trainerHandler := httptransport.NewTrainerHandler(trainerService, logger)
	analyticsHandler := httptransport.NewAnalyticsHandler(analyticsService, logger)

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Events:    eventHandler,
		Trainers:  trainerHandler,
		Analytics: analyticsHandler,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.PrincipalFromHeaders(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type eventRepositoryAdapter struct {
	repo persistence.EventRepository
}

func newEventRepositoryAdapter(repo persistence.EventRepository) *eventRepositoryAdapter {
	return &eventRepositoryAdapter{repo: repo}
}

func (a *eventRepositoryAdapter) CreateEvent(ctx context.Context, event application.Event) (application.Event, error) {
	if err := a.repo.CreateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.Event{}, err
	}
	return a.GetEvent(ctx, event.ID)
}

func (a *eventRepositoryAdapter) GetEvent(ctx context.Context, id string) (application.Event, error) {
	stored, err := a.repo.GetEvent(ctx, id)
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) UpdateEvent(ctx context.Context, event application.Event) (application.Event, error) {
	if err := a.repo.UpdateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.Event{}, err
	}
	return a.GetEvent(ctx, event.ID)
}

func (a *eventRepositoryAdapter) DeleteEvent(ctx context.Context, id string) error {
	return a.repo.DeleteEvent(ctx, id)
}

func (a *eventRepositoryAdapter) ListEvents(ctx context.Context, filter application.EventRepositoryFilter) ([]application.Event, error) {
	stored, err := a.repo.ListEvents(ctx, toPersistenceEventFilter(filter))
	if err != nil {
		return nil, err
	}
	events := make([]application.Event, 0, len(stored))
	for _, event := range stored {
		events = append(events, toApplicationEvent(event))
	}
	return events, nil
}

type trainerRepositoryAdapter struct {
	repo persistence.TrainerRepository
}

func newTrainerRepositoryAdapter(repo persistence.TrainerRepository) *trainerRepositoryAdapter {
	return &trainerRepositoryAdapter{repo: repo}
}

func (a *trainerRepositoryAdapter) CreateTrainer(ctx context.Context, trainer application.Trainer) (application.Trainer, error) {
	if err := a.repo.CreateTrainer(ctx, toPersistenceTrainer(trainer)); err != nil {
		return application.Trainer{}, err
	}
	return a.GetTrainer(ctx, trainer.ID)
}

func (a *trainerRepositoryAdapter) GetTrainer(ctx context.Context, id string) (application.Trainer, error) {
	stored, err := a.repo.GetTrainer(ctx, id)
	if err != nil {
		return application.Trainer{}, err
	}
	return toApplicationTrainer(stored), nil
}

func (a *trainerRepositoryAdapter) UpdateTrainer(ctx context.Context, trainer application.Trainer) (application.Trainer, error) {
	if err := a.repo.UpdateTrainer(ctx, toPersistenceTrainer(trainer)); err != nil {
		return application.Trainer{}, err
	}
	return a.GetTrainer(ctx, trainer.ID)
}

func (a *trainerRepositoryAdapter) DeleteTrainer(ctx context.Context, id string) error {
	return a.repo.DeleteTrainer(ctx, id)
}

func (a *trainerRepositoryAdapter) ListTrainers(ctx context.Context) ([]application.Trainer, error) {
	stored, err := a.repo.ListTrainers(ctx)
	if err != nil {
		return nil, err
	}
	trainers := make([]application.Trainer, 0, len(stored))
	for _, trainer := range stored {
		trainers = append(trainers, toApplicationTrainer(trainer))
	}
	return trainers, nil
}

type trainerDirectoryAdapter struct {
	repo persistence.TrainerRepository
}

func newTrainerDirectoryAdapter(repo persistence.TrainerRepository) *trainerDirectoryAdapter {
	return &trainerDirectoryAdapter{repo: repo}
}

func (a *trainerDirectoryAdapter) FindTrainer(ctx context.Context, id string) (application.Trainer, error) {
	stored, err := a.repo.GetTrainer(ctx, id)
	if err != nil {
		return application.Trainer{}, err
	}
	return toApplicationTrainer(stored), nil
}

func toPersistenceEvent(event application.Event) persistence.Event {
	return persistence.Event{
		ID:          event.ID,
		Title:       event.Title,
		Type:        string(event.Type),
		Start:       event.Start,
		End:         event.End,
		TrainerID:   event.TrainerID,
		TrainerName: event.TrainerName,
		ClientID:    cloneString(event.ClientID),
		ClientName:  cloneString(event.ClientName),
		Status:      string(event.Status),
		Location:    cloneString(event.Location),
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
		CompletedAt: cloneTime(event.CompletedAt),
	}
}

func toApplicationEvent(event persistence.Event) application.Event {
	return application.Event{
		ID:          event.ID,
		Title:       event.Title,
		Type:        scheduler.EventType(event.Type),
		Start:       event.Start,
		End:         event.End,
		TrainerID:   event.TrainerID,
		TrainerName: event.TrainerName,
		ClientID:    cloneString(event.ClientID),
		ClientName:  cloneString(event.ClientName),
		Status:      scheduler.Status(event.Status),
		Location:    cloneString(event.Location),
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
		CompletedAt: cloneTime(event.CompletedAt),
	}
}

func toPersistenceEventFilter(filter application.EventRepositoryFilter) persistence.EventFilter {
	converted := persistence.EventFilter{
		TrainerID:    filter.TrainerID,
		StartsAfter:  cloneTime(filter.StartsAfter),
		StartsBefore: cloneTime(filter.StartsBefore),
	}
	for _, status := range filter.Statuses {
		converted.Statuses = append(converted.Statuses, string(status))
	}
	for _, eventType := range filter.Types {
		converted.Types = append(converted.Types, string(eventType))
	}
	return converted
}

func toPersistenceTrainer(trainer application.Trainer) persistence.Trainer {
	return persistence.Trainer{
		ID:        trainer.ID,
		Name:      trainer.Name,
		Specialty: cloneString(trainer.Specialty),
		Active:    trainer.Active,
		CreatedAt: trainer.CreatedAt,
		UpdatedAt: trainer.UpdatedAt,
	}
}

func toApplicationTrainer(trainer persistence.Trainer) application.Trainer {
	return application.Trainer{
		ID:        trainer.ID,
		Name:      trainer.Name,
		Specialty: cloneString(trainer.Specialty),
		Active:    trainer.Active,
		CreatedAt: trainer.CreatedAt,
		UpdatedAt: trainer.UpdatedAt,
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
