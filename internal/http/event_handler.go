package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/scheduler"
)

type eventService interface {
	CreateEvent(ctx context.Context, params application.CreateEventParams) (application.Event, error)
	CreateRecurringEvents(ctx context.Context, params application.CreateRecurringEventsParams) ([]application.Event, error)
	UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.Event, error)
	DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error
	ChangeEventStatus(ctx context.Context, params application.ChangeEventStatusParams) (application.Event, error)
	GetEvent(ctx context.Context, eventID string) (application.Event, error)
	ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
	ListOverdueEvents(ctx context.Context) ([]application.Event, error)
	CheckAvailability(ctx context.Context, params application.AvailabilityParams) ([]application.Event, error)
}

type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	event, err := h.service.CreateEvent(r.Context(), application.CreateEventParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "event creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("event_id", event.ID).InfoContext(r.Context(), "event created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req recurringEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateRecurring", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode recurring event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateRecurring", "principal_id", principal.UserID, "pattern", req.Pattern)

	events, err := h.service.CreateRecurringEvents(r.Context(), application.CreateRecurringEventsParams{
		Principal:     principal,
		Input:         req.toInput(),
		Pattern:       application.RecurrencePattern(strings.TrimSpace(req.Pattern)),
		Weekdays:      parseWeekdays(req.Weekdays),
		Until:         parseTime(req.Until),
		SkipConflicts: req.SkipConflicts,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "recurring event creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("event_count", len(events)).InfoContext(r.Context(), "recurring events created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, listEventsResponse{Events: toEventDTOs(events)})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing event id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "event_id", eventID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "event_id", eventID)

	event, err := h.service.UpdateEvent(r.Context(), application.UpdateEventParams{
		Principal: principal,
		EventID:   eventID,
		Input:     req.toInput(),
		AllowPast: req.AllowPast,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "event update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing event id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "event_id", eventID)
	if err := h.service.DeleteEvent(r.Context(), principal, eventID); err != nil {
		logger.ErrorContext(r.Context(), "event delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ChangeStatus", "principal_id", principal.UserID, "event_id", eventID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ChangeStatus", "principal_id", principal.UserID, "event_id", eventID, "status", req.Status)

	event, err := h.service.ChangeEventStatus(r.Context(), application.ChangeEventStatusParams{
		Principal: principal,
		EventID:   eventID,
		Status:    scheduler.Status(strings.TrimSpace(req.Status)),
		Override:  req.Override,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "status change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event status changed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	params := buildListParams(r.URL.Query(), principal)

	events, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

func (h *EventHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	events, err := h.service.ListOverdueEvents(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

func (h *EventHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	values := r.URL.Query()
	params := application.AvailabilityParams{
		TrainerID:      strings.TrimSpace(values.Get("trainer_id")),
		Start:          parseTime(values.Get("start")),
		End:            parseTime(values.Get("end")),
		ExcludeEventID: strings.TrimSpace(values.Get("exclude_event_id")),
	}

	conflicts, err := h.service.CheckAvailability(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		Available: len(conflicts) == 0,
		Conflicts: toEventDTOs(conflicts),
	})
}

type eventRequest struct {
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	TrainerID  string  `json:"trainer_id"`
	ClientID   *string `json:"client_id"`
	ClientName *string `json:"client_name"`
	Location   *string `json:"location"`
	AllowPast  bool    `json:"allow_past"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Title:      strings.TrimSpace(r.Title),
		Type:       scheduler.EventType(strings.TrimSpace(r.Type)),
		Start:      parseTime(r.Start),
		End:        parseTime(r.End),
		TrainerID:  strings.TrimSpace(r.TrainerID),
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Location:   r.Location,
	}
}

type recurringEventRequest struct {
	eventRequest
	Pattern       string   `json:"pattern"`
	Weekdays      []string `json:"weekdays"`
	Until         string   `json:"until"`
	SkipConflicts bool     `json:"skip_conflicts"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekdays maps weekday names onto time.Weekday values. Unknown names
// are dropped; the service rejects weekly series that end up with no days.
func parseWeekdays(names []string) []time.Weekday {
	if len(names) == 0 {
		return nil
	}
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		if day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			out = append(out, day)
		}
	}
	return out
}

type statusRequest struct {
	Status   string `json:"status"`
	Override bool   `json:"override"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

type eventResponse struct {
	Event eventDTO `json:"event"`
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type availabilityResponse struct {
	Available bool       `json:"available"`
	Conflicts []eventDTO `json:"conflicts,omitempty"`
}

type eventDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	TrainerID   string  `json:"trainer_id"`
	TrainerName string  `json:"trainer_name,omitempty"`
	ClientID    *string `json:"client_id,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	Status      string  `json:"status"`
	Location    *string `json:"location,omitempty"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

func toEventDTO(event application.Event) eventDTO {
	dto := eventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Type:        string(event.Type),
		Start:       event.Start.UTC().Format(time.RFC3339Nano),
		End:         event.End.UTC().Format(time.RFC3339Nano),
		TrainerID:   event.TrainerID,
		TrainerName: event.TrainerName,
		ClientID:    event.ClientID,
		ClientName:  event.ClientName,
		Status:      string(event.Status),
		Location:    event.Location,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   event.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if event.CompletedAt != nil {
		completed := event.CompletedAt.UTC().Format(time.RFC3339Nano)
		dto.CompletedAt = &completed
	}
	return dto
}

func toEventDTOs(events []application.Event) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

func buildListParams(values url.Values, principal application.Principal) application.ListEventsParams {
	params := application.ListEventsParams{
		Principal: principal,
		TrainerID: strings.TrimSpace(values.Get("trainer_id")),
		Status:    scheduler.Status(strings.TrimSpace(values.Get("status"))),
		Type:      scheduler.EventType(strings.TrimSpace(values.Get("type"))),
	}

	if after := strings.TrimSpace(values.Get("starts_after")); after != "" {
		if ts := parseTime(after); !ts.IsZero() {
			params.StartsAfter = &ts
		}
	}

	if before := strings.TrimSpace(values.Get("starts_before")); before != "" {
		if ts := parseTime(before); !ts.IsZero() {
			params.StartsBefore = &ts
		}
	}

	if day := strings.TrimSpace(values.Get("day")); day != "" {
		if ts, err := time.Parse("2006-01-02", day); err == nil {
			params.Period = application.ListPeriodDay
			params.PeriodReference = ts
		}
	} else if week := strings.TrimSpace(values.Get("week")); week != "" {
		if ts, err := time.Parse("2006-01-02", week); err == nil {
			params.Period = application.ListPeriodWeek
			params.PeriodReference = ts
		}
	} else if month := strings.TrimSpace(values.Get("month")); month != "" {
		if ts, err := time.Parse("2006-01", month); err == nil {
			params.Period = application.ListPeriodMonth
			params.PeriodReference = ts
		}
	}

	if upcoming := strings.TrimSpace(values.Get("upcoming")); upcoming != "" {
		if flag, err := strconv.ParseBool(upcoming); err == nil {
			params.UpcomingOnly = flag
		}
	}

	if limit := strings.TrimSpace(values.Get("limit")); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			params.Limit = n
		}
	}

	return params
}
