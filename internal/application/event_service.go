package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/diagnostics"
	"github.com/example/club-scheduler/internal/persistence"
	"github.com/example/club-scheduler/internal/recurrence"
	"github.com/example/club-scheduler/internal/scheduler"
)

// EventRepository captures the persistence interactions needed by the service.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, filter EventRepositoryFilter) ([]Event, error)
}

// EventRepositoryFilter narrows queries issued to the event repository.
type EventRepositoryFilter struct {
	TrainerID    string
	Statuses     []scheduler.Status
	Types        []scheduler.EventType
	StartsAfter  *time.Time
	StartsBefore *time.Time
}

// TrainerDirectory exposes trainer lookup operations.
type TrainerDirectory interface {
	FindTrainer(ctx context.Context, id string) (Trainer, error)
}

// EventService orchestrates validation, conflict detection, and persistence
// for booking slots. Conflict checks run over a snapshot read through the
// repository; the read-then-write sequence is not atomic against a
// concurrently mutating store (see DESIGN.md for the extension points).
type EventService struct {
	events      EventRepository
	trainers    TrainerDirectory
	recorder    diagnostics.Recorder
	idGenerator func() string
	now         func() time.Time
	location    *time.Location
	logger      *slog.Logger
	onMutation  func()
}

// EventServiceOption customises optional service dependencies.
type EventServiceOption func(*EventService)

// WithEventLogger attaches a base logger to the service.
func WithEventLogger(logger *slog.Logger) EventServiceOption {
	return func(s *EventService) { s.logger = logger }
}

// WithEventRecorder attaches a diagnostics recorder to the service.
func WithEventRecorder(recorder diagnostics.Recorder) EventServiceOption {
	return func(s *EventService) { s.recorder = recorder }
}

// WithEventMutationNotifier registers a hook invoked after every successful
// event mutation. Used to drop derived read models, such as cached analytics
// snapshots, the moment the underlying events change.
func WithEventMutationNotifier(notify func()) EventServiceOption {
	return func(s *EventService) { s.onMutation = notify }
}

// NewEventService wires dependencies for event operations. The location fixes
// the business time zone used for all day-boundary computations.
func NewEventService(events EventRepository, trainers TrainerDirectory, idGenerator func() string, now func() time.Time, location *time.Location, opts ...EventServiceOption) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	s := &EventService{
		events:      events,
		trainers:    trainers,
		recorder:    diagnostics.Noop{},
		idGenerator: idGenerator,
		now:         now,
		location:    location,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = defaultLogger(s.logger)
	if s.recorder == nil {
		s.recorder = diagnostics.Noop{}
	}
	return s
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

func (s *EventService) notifyMutation() {
	if s.onMutation != nil {
		s.onMutation()
	}
}

// CreateEvent validates the request, rejects conflicting slots, and persists
// a new event in the scheduled status.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateEvent",
		"principal_id", params.Principal.UserID,
		"trainer_id", params.Input.TrainerID,
	)
	defer func() {
		s.recorder.OperationCompleted("create_event", err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		s.notifyMutation()
		logger.With("event_id", event.ID).InfoContext(ctx, "event created")
	}()

	now := s.now()

	vErr := &ValidationError{}
	validateEventCore(params.Input, vErr)
	validateInterval(params.Input.Start, params.Input.End, now, false, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var trainer Trainer
	trainer, err = s.ensureTrainer(ctx, params.Input.TrainerID)
	if err != nil {
		return
	}

	if err = s.checkConflicts(ctx, params.Input.TrainerID, params.Input.Start, params.Input.End, ""); err != nil {
		return
	}

	event = Event{
		ID:          s.idGenerator(),
		Title:       strings.TrimSpace(params.Input.Title),
		Type:        params.Input.Type,
		Start:       params.Input.Start,
		End:         params.Input.End,
		TrainerID:   trainer.ID,
		TrainerName: trainer.Name,
		ClientID:    normalizeOptionalString(params.Input.ClientID),
		ClientName:  normalizeOptionalString(params.Input.ClientName),
		Status:      scheduler.StatusScheduled,
		Location:    normalizeOptionalString(params.Input.Location),
		CreatedBy:   params.Principal.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var persisted Event
	persisted, err = s.events.CreateEvent(ctx, event)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	event = persisted
	return
}

// CreateRecurringEvents expands a repeating slot template into individual
// bookings. Each generated slot runs through the same conflict pipeline as a
// single booking; occupied slots fail the batch unless SkipConflicts is set,
// in which case they are silently dropped. Bookings are persisted one by one,
// so a repository failure partway through leaves earlier slots in place.
func (s *EventService) CreateRecurringEvents(ctx context.Context, params CreateRecurringEventsParams) (events []Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRecurringEvents",
		"principal_id", params.Principal.UserID,
		"trainer_id", params.Input.TrainerID,
		"pattern", string(params.Pattern),
	)
	defer func() {
		s.recorder.OperationCompleted("create_recurring_events", err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create recurring events", "error", err, "error_kind", ErrorKind(err))
			return
		}
		s.notifyMutation()
		logger.With("event_count", len(events)).InfoContext(ctx, "recurring events created")
	}()

	now := s.now()

	vErr := &ValidationError{}
	validateEventCore(params.Input, vErr)
	validateInterval(params.Input.Start, params.Input.End, now, false, vErr)
	freq := recurrence.FrequencyUnspecified
	switch params.Pattern {
	case RecurrenceDaily:
		freq = recurrence.FrequencyDaily
	case RecurrenceWeekly:
		freq = recurrence.FrequencyWeekly
		if len(params.Weekdays) == 0 {
			vErr.add("weekdays", "weekly recurrence requires at least one weekday")
		}
	default:
		vErr.add("pattern", "unknown recurrence pattern")
	}
	if params.Until.IsZero() || !params.Until.After(params.Input.Start) {
		vErr.add("until", "until must be after start")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var trainer Trainer
	trainer, err = s.ensureTrainer(ctx, params.Input.TrainerID)
	if err != nil {
		return
	}

	until := params.Until
	series := recurrence.Series{
		ID:        s.idGenerator(),
		Frequency: freq,
		Weekdays:  params.Weekdays,
		StartsOn:  params.Input.Start,
		EndsOn:    &until,
	}

	slots, expandErr := recurrence.NewEngine(s.location).Expand(series, params.Input.Start, params.Input.End, recurrence.ExpandOptions{})
	if expandErr != nil {
		expanded := &ValidationError{}
		switch {
		case errors.Is(expandErr, recurrence.ErrInvalidDuration):
			expanded.add("time", "end must be after start")
		case errors.Is(expandErr, recurrence.ErrInvalidWindow):
			expanded.add("until", "until must be after start")
		default:
			expanded.add("pattern", "unknown recurrence pattern")
		}
		err = expanded
		return
	}

	created := make([]Event, 0, len(slots))
	for _, slot := range slots {
		if conflictErr := s.checkConflicts(ctx, trainer.ID, slot.Start, slot.End, ""); conflictErr != nil {
			var conflict *ConflictError
			if params.SkipConflicts && errors.As(conflictErr, &conflict) {
				continue
			}
			err = conflictErr
			return
		}

		event := Event{
			ID:          s.idGenerator(),
			Title:       strings.TrimSpace(params.Input.Title),
			Type:        params.Input.Type,
			Start:       slot.Start,
			End:         slot.End,
			TrainerID:   trainer.ID,
			TrainerName: trainer.Name,
			ClientID:    normalizeOptionalString(params.Input.ClientID),
			ClientName:  normalizeOptionalString(params.Input.ClientName),
			Status:      scheduler.StatusScheduled,
			Location:    normalizeOptionalString(params.Input.Location),
			CreatedBy:   params.Principal.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		persisted, createErr := s.events.CreateEvent(ctx, event)
		if createErr != nil {
			err = mapEventRepoError(createErr)
			return
		}
		created = append(created, persisted)
	}

	events = created
	return
}

// UpdateEvent applies validation and authorization before updating an event.
// Interval and trainer changes re-run the full conflict pipeline, excluding
// the event itself from the candidate set.
func (s *EventService) UpdateEvent(ctx context.Context, params UpdateEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEvent",
		"principal_id", params.Principal.UserID,
		"event_id", params.EventID,
	)
	defer func() {
		s.recorder.OperationCompleted("update_event", err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		s.notifyMutation()
		logger.InfoContext(ctx, "event updated")
	}()

	var existing Event
	existing, err = s.events.GetEvent(ctx, params.EventID)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	if existing.CreatedBy != params.Principal.UserID && !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	intervalChanged := !params.Input.Start.Equal(existing.Start) || !params.Input.End.Equal(existing.End)
	trainerChanged := params.Input.TrainerID != existing.TrainerID

	if existing.Status.IsTerminal() && (intervalChanged || trainerChanged) {
		err = ErrEventFinalized
		return
	}

	allowPast := params.AllowPast && params.Principal.IsAdmin
	if params.AllowPast && !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	now := s.now()

	vErr := &ValidationError{}
	validateEventCore(params.Input, vErr)
	if intervalChanged || trainerChanged {
		validateInterval(params.Input.Start, params.Input.End, now, allowPast, vErr)
	} else if !params.Input.End.After(params.Input.Start) {
		vErr.add("time", "end must be after start")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	trainer := Trainer{ID: existing.TrainerID, Name: existing.TrainerName}
	if trainerChanged {
		trainer, err = s.ensureTrainer(ctx, params.Input.TrainerID)
		if err != nil {
			return
		}
	}

	if intervalChanged || trainerChanged {
		if err = s.checkConflicts(ctx, trainer.ID, params.Input.Start, params.Input.End, existing.ID); err != nil {
			return
		}
	}

	updated := existing
	updated.Title = strings.TrimSpace(params.Input.Title)
	updated.Type = params.Input.Type
	updated.Start = params.Input.Start
	updated.End = params.Input.End
	updated.TrainerID = trainer.ID
	updated.TrainerName = trainer.Name
	updated.ClientID = normalizeOptionalString(params.Input.ClientID)
	updated.ClientName = normalizeOptionalString(params.Input.ClientName)
	updated.Location = normalizeOptionalString(params.Input.Location)
	updated.UpdatedAt = now

	event, err = s.events.UpdateEvent(ctx, updated)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	return
}

// DeleteEvent removes an event outright. Hard deletion is reserved for
// administrators; regular staff cancel instead.
func (s *EventService) DeleteEvent(ctx context.Context, principal Principal, eventID string) (err error) {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEvent",
		"principal_id", principal.UserID,
		"event_id", eventID,
	)
	defer func() {
		s.recorder.OperationCompleted("delete_event", err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		s.notifyMutation()
		logger.InfoContext(ctx, "event deleted")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	if _, err = s.events.GetEvent(ctx, eventID); err != nil {
		err = mapEventRepoError(err)
		return
	}

	if err = s.events.DeleteEvent(ctx, eventID); err != nil {
		err = mapEventRepoError(err)
		return
	}

	return
}

// ChangeEventStatus advances an event through its lifecycle. The interval is
// untouched, so no conflict re-check runs. Administrators may set Override to
// correct a terminal status outside the normal machine.
func (s *EventService) ChangeEventStatus(ctx context.Context, params ChangeEventStatusParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ChangeEventStatus",
		"principal_id", params.Principal.UserID,
		"event_id", params.EventID,
		"status", string(params.Status),
	)
	defer func() {
		s.recorder.OperationCompleted("change_event_status", err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to change event status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		s.notifyMutation()
		logger.InfoContext(ctx, "event status changed")
	}()

	if !params.Status.IsValid() {
		vErr := &ValidationError{}
		vErr.add("status", "unknown status")
		err = vErr
		return
	}

	var existing Event
	existing, err = s.events.GetEvent(ctx, params.EventID)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	if existing.CreatedBy != params.Principal.UserID && !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	now := s.now()

	if params.Override {
		if !params.Principal.IsAdmin {
			err = ErrUnauthorized
			return
		}
	} else {
		if !scheduler.CanTransition(existing.Status, params.Status) {
			err = ErrInvalidTransition
			return
		}
		// Cancellation only releases a slot that has not run out yet.
		if params.Status == scheduler.StatusCancelled && !now.Before(existing.End) {
			err = ErrInvalidTransition
			return
		}
	}

	updated := existing
	updated.Status = params.Status
	updated.UpdatedAt = now
	switch params.Status {
	case scheduler.StatusCompleted, scheduler.StatusNoShow:
		completedAt := now
		updated.CompletedAt = &completedAt
	default:
		updated.CompletedAt = nil
	}

	event, err = s.events.UpdateEvent(ctx, updated)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	return
}

// GetEvent returns a single event by ID. Reads are open to every
// authenticated principal, so none is taken.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (Event, error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return Event{}, mapEventRepoError(err)
	}
	return event, nil
}

// ListEvents enumerates events matching the requested filters, ordered by
// start time then ID.
func (s *EventService) ListEvents(ctx context.Context, params ListEventsParams) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	filter := s.buildListFilter(params)

	events, err := s.events.ListEvents(ctx, filter)
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start.Equal(ordered[j].Start) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Start.Before(ordered[j].Start)
	})

	if params.UpcomingOnly {
		snapshot := toSchedulerEvents(ordered)
		upcoming := scheduler.Upcoming(snapshot, s.now(), params.Limit)
		return pickByID(ordered, upcoming), nil
	}

	if params.Limit > 0 && len(ordered) > params.Limit {
		ordered = ordered[:params.Limit]
	}

	return ordered, nil
}

// ListOverdueEvents surfaces confirmed events that already ended so staff can
// close them out as completed or no-show.
func (s *EventService) ListOverdueEvents(ctx context.Context) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	events, err := s.events.ListEvents(ctx, EventRepositoryFilter{Statuses: []scheduler.Status{scheduler.StatusConfirmed}})
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	overdue := scheduler.Overdue(toSchedulerEvents(events), s.now())
	return pickByID(events, overdue), nil
}

// CheckAvailability reports the events that would collide with the proposed
// slot. An empty result means the slot is free at the time of the check.
func (s *EventService) CheckAvailability(ctx context.Context, params AvailabilityParams) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(params.TrainerID) == "" {
		vErr.add("trainer_id", "trainer is required")
	}
	if !params.End.After(params.Start) {
		vErr.add("time", "end must be after start")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	events, err := s.events.ListEvents(ctx, EventRepositoryFilter{TrainerID: params.TrainerID})
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	result := scheduler.CheckConflict(toSchedulerEvents(events), params.TrainerID, params.Start, params.End, params.ExcludeEventID)
	return pickByID(events, result.Conflicts), nil
}

func (s *EventService) ensureTrainer(ctx context.Context, trainerID string) (Trainer, error) {
	if s.trainers == nil {
		return Trainer{ID: trainerID}, nil
	}

	trainer, err := s.trainers.FindTrainer(ctx, trainerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
			vErr := &ValidationError{}
			vErr.add("trainer_id", "trainer does not exist")
			return Trainer{}, vErr
		}
		return Trainer{}, err
	}
	if !trainer.Active {
		vErr := &ValidationError{}
		vErr.add("trainer_id", "trainer is not active")
		return Trainer{}, vErr
	}
	return trainer, nil
}

func (s *EventService) checkConflicts(ctx context.Context, trainerID string, start, end time.Time, excludeID string) error {
	events, err := s.events.ListEvents(ctx, EventRepositoryFilter{TrainerID: trainerID})
	if err != nil {
		return mapEventRepoError(err)
	}

	result := scheduler.CheckConflict(toSchedulerEvents(events), trainerID, start, end, excludeID)
	if !result.HasConflict() {
		return nil
	}

	s.recorder.ConflictDetected(trainerID, len(result.Conflicts))
	return &ConflictError{Conflicts: pickByID(events, result.Conflicts)}
}

func (s *EventService) buildListFilter(params ListEventsParams) EventRepositoryFilter {
	filter := EventRepositoryFilter{
		TrainerID:    params.TrainerID,
		StartsAfter:  params.StartsAfter,
		StartsBefore: params.StartsBefore,
	}
	if params.Status != "" {
		filter.Statuses = []scheduler.Status{params.Status}
	}
	if params.Type != "" {
		filter.Types = []scheduler.EventType{params.Type}
	}

	if params.Period != ListPeriodNone {
		reference := params.PeriodReference
		if reference.IsZero() {
			reference = s.now()
		}
		start, end := periodRange(params.Period, reference, s.location)
		if filter.StartsAfter == nil {
			filter.StartsAfter = &start
		}
		if filter.StartsBefore == nil {
			filter.StartsBefore = &end
		}
	}

	return filter
}

func periodRange(period ListPeriod, reference time.Time, loc *time.Location) (time.Time, time.Time) {
	switch period {
	case ListPeriodDay:
		start := startOfDay(reference, loc)
		return start, start.AddDate(0, 0, 1)
	case ListPeriodWeek:
		start := startOfWeek(reference, loc)
		return start, start.AddDate(0, 0, 7)
	case ListPeriodMonth:
		start := startOfMonth(reference, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func startOfWeek(t time.Time, loc *time.Location) time.Time {
	start := startOfDay(t, loc)
	weekday := int(start.Weekday())
	// Adjust so Monday is start of week. In Go, Monday == 1, Sunday == 0.
	offset := (weekday + 6) % 7
	return start.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time, loc *time.Location) time.Time {
	start := startOfDay(t, loc)
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
}

func validateEventCore(input EventInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Type == "" {
		vErr.add("type", "type is required")
	} else if !input.Type.IsValid() {
		vErr.add("type", "unknown event type")
	}
	if strings.TrimSpace(input.TrainerID) == "" {
		vErr.add("trainer_id", "trainer is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	}
}

func validateInterval(start, end, now time.Time, allowPast bool, vErr *ValidationError) {
	if start.IsZero() || end.IsZero() {
		return
	}
	switch err := scheduler.ValidateInterval(start, end, now); {
	case errors.Is(err, scheduler.ErrInvalidInterval):
		vErr.add("time", "end must be after start")
	case errors.Is(err, scheduler.ErrPastScheduling):
		if !allowPast {
			vErr.add("start", "start must not be in the past")
		}
	}
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toSchedulerEvents(events []Event) []scheduler.Event {
	out := make([]scheduler.Event, 0, len(events))
	for _, event := range events {
		out = append(out, toSchedulerEvent(event))
	}
	return out
}

func toSchedulerEvent(event Event) scheduler.Event {
	out := scheduler.Event{
		ID:          event.ID,
		Title:       event.Title,
		Type:        event.Type,
		Start:       event.Start,
		End:         event.End,
		TrainerID:   event.TrainerID,
		TrainerName: event.TrainerName,
		Status:      event.Status,
	}
	if event.ClientID != nil {
		out.ClientID = *event.ClientID
	}
	if event.ClientName != nil {
		out.ClientName = *event.ClientName
	}
	if event.Location != nil {
		out.Location = *event.Location
	}
	return out
}

// pickByID projects core results back onto the richer application records,
// preserving the order produced by the core.
func pickByID(events []Event, selected []scheduler.Event) []Event {
	if len(selected) == 0 {
		return nil
	}
	byID := make(map[string]Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}
	out := make([]Event, 0, len(selected))
	for _, pick := range selected {
		if event, ok := byID[pick.ID]; ok {
			out = append(out, event)
		}
	}
	return out
}

func mapEventRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("time", "end must be after start")
		return vErr
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("trainer_id", "trainer does not exist")
		return vErr
	}
	return err
}
