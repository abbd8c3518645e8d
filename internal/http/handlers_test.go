package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/scheduler"
	"github.com/example/club-scheduler/internal/testfixtures"
)

type eventServiceStub struct {
	createFunc          func(ctx context.Context, params application.CreateEventParams) (application.Event, error)
	createRecurringFunc func(ctx context.Context, params application.CreateRecurringEventsParams) ([]application.Event, error)
	updateFunc          func(ctx context.Context, params application.UpdateEventParams) (application.Event, error)
	deleteFunc          func(ctx context.Context, principal application.Principal, eventID string) error
	changeStatusFunc    func(ctx context.Context, params application.ChangeEventStatusParams) (application.Event, error)
	getFunc             func(ctx context.Context, eventID string) (application.Event, error)
	listFunc            func(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
	listOverdueFunc     func(ctx context.Context) ([]application.Event, error)
	availabilityFunc    func(ctx context.Context, params application.AvailabilityParams) ([]application.Event, error)
}

func (s *eventServiceStub) CreateEvent(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
	return s.createFunc(ctx, params)
}

func (s *eventServiceStub) CreateRecurringEvents(ctx context.Context, params application.CreateRecurringEventsParams) ([]application.Event, error) {
	return s.createRecurringFunc(ctx, params)
}

func (s *eventServiceStub) UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.Event, error) {
	return s.updateFunc(ctx, params)
}

func (s *eventServiceStub) DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error {
	return s.deleteFunc(ctx, principal, eventID)
}

func (s *eventServiceStub) ChangeEventStatus(ctx context.Context, params application.ChangeEventStatusParams) (application.Event, error) {
	return s.changeStatusFunc(ctx, params)
}

func (s *eventServiceStub) GetEvent(ctx context.Context, eventID string) (application.Event, error) {
	return s.getFunc(ctx, eventID)
}

func (s *eventServiceStub) ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error) {
	return s.listFunc(ctx, params)
}

func (s *eventServiceStub) ListOverdueEvents(ctx context.Context) ([]application.Event, error) {
	return s.listOverdueFunc(ctx)
}

func (s *eventServiceStub) CheckAvailability(ctx context.Context, params application.AvailabilityParams) ([]application.Event, error) {
	return s.availabilityFunc(ctx, params)
}

type trainerServiceStub struct {
	createFunc func(ctx context.Context, params application.CreateTrainerParams) (application.Trainer, error)
	updateFunc func(ctx context.Context, params application.UpdateTrainerParams) (application.Trainer, error)
	deleteFunc func(ctx context.Context, principal application.Principal, trainerID string) error
	getFunc    func(ctx context.Context, principal application.Principal, trainerID string) (application.Trainer, error)
	listFunc   func(ctx context.Context, principal application.Principal) ([]application.Trainer, error)
}

func (s *trainerServiceStub) CreateTrainer(ctx context.Context, params application.CreateTrainerParams) (application.Trainer, error) {
	return s.createFunc(ctx, params)
}

func (s *trainerServiceStub) UpdateTrainer(ctx context.Context, params application.UpdateTrainerParams) (application.Trainer, error) {
	return s.updateFunc(ctx, params)
}

func (s *trainerServiceStub) DeleteTrainer(ctx context.Context, principal application.Principal, trainerID string) error {
	return s.deleteFunc(ctx, principal, trainerID)
}

func (s *trainerServiceStub) GetTrainer(ctx context.Context, principal application.Principal, trainerID string) (application.Trainer, error) {
	return s.getFunc(ctx, principal, trainerID)
}

func (s *trainerServiceStub) ListTrainers(ctx context.Context, principal application.Principal) ([]application.Trainer, error) {
	return s.listFunc(ctx, principal)
}

type analyticsServiceStub struct {
	snapshotFunc func(ctx context.Context, params application.AnalyticsParams) (scheduler.Analytics, error)
}

func (s *analyticsServiceStub) Snapshot(ctx context.Context, params application.AnalyticsParams) (scheduler.Analytics, error) {
	return s.snapshotFunc(ctx, params)
}

var handlerClock = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func sampleEvent(id string) application.Event {
	return testfixtures.NewEventFixture(
		testfixtures.WithEventID(id),
		testfixtures.WithEventTitle("Strength session"),
		testfixtures.WithEventTrainer("t1", "Aiko Tanaka"),
		testfixtures.WithEventInterval(handlerClock.Add(time.Hour), handlerClock.Add(2*time.Hour)),
		testfixtures.WithEventCreator("user-1"),
		testfixtures.WithEventTimestamps(handlerClock, handlerClock),
	).Application()
}

func routerFor(events eventService, trainers trainerService, analytics analyticsService) http.Handler {
	cfg := RouterConfig{}
	if events != nil {
		cfg.Events = NewEventHandler(events, nil)
	}
	if trainers != nil {
		cfg.Trainers = NewTrainerHandler(trainers, nil)
	}
	if analytics != nil {
		cfg.Analytics = NewAnalyticsHandler(analytics, nil)
	}
	return NewRouter(cfg)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string, principal *application.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if principal != nil {
		req = req.WithContext(ContextWithPrincipal(req.Context(), *principal))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestEventHandlers(t *testing.T) {
	t.Parallel()

	principal := application.Principal{UserID: "user-1"}

	t.Run("create returns 201 with the event payload", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			createFunc: func(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
				assert.Equal(t, "user-1", params.Principal.UserID)
				assert.Equal(t, scheduler.EventTypeTraining, params.Input.Type)
				return sampleEvent("evt-1"), nil
			},
		}

		body := `{"title":"Strength session","type":"training","start":"2024-06-01T10:00:00Z","end":"2024-06-01T11:00:00Z","trainer_id":"t1"}`
		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPost, "/events", body, &principal)

		require.Equal(t, http.StatusCreated, recorder.Code)
		payload := decodeBody(t, recorder)
		event, ok := payload["event"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "evt-1", event["id"])
		assert.Equal(t, "scheduled", event["status"])
	})

	t.Run("create surfaces booking conflicts as 409", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			createFunc: func(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
				return application.Event{}, &application.ConflictError{Conflicts: []application.Event{sampleEvent("busy")}}
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPost, "/events", `{"title":"x"}`, &principal)

		require.Equal(t, http.StatusConflict, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, "TRAINER_BUSY", payload["error_code"])
		conflicts, ok := payload["conflicts"].([]any)
		require.True(t, ok)
		require.Len(t, conflicts, 1)
	})

	t.Run("create maps validation errors to 422", func(t *testing.T) {
		t.Parallel()

		vErr := &application.ValidationError{FieldErrors: map[string]string{"title": "title is required"}}
		stub := &eventServiceStub{
			createFunc: func(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
				return application.Event{}, vErr
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPost, "/events", `{}`, &principal)

		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		payload := decodeBody(t, recorder)
		errs, ok := payload["errors"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "title is required", errs["title"])
	})

	t.Run("create rejects malformed bodies with 400", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			createFunc: func(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
				t.Fatal("service must not be reached for malformed bodies")
				return application.Event{}, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPost, "/events", `{"title":`, &principal)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("recurring create expands the request and returns the batch", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			createRecurringFunc: func(ctx context.Context, params application.CreateRecurringEventsParams) ([]application.Event, error) {
				assert.Equal(t, "user-1", params.Principal.UserID)
				assert.Equal(t, application.RecurrenceWeekly, params.Pattern)
				assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, params.Weekdays)
				assert.True(t, params.SkipConflicts)
				assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), params.Until)
				return []application.Event{sampleEvent("evt-1"), sampleEvent("evt-2")}, nil
			},
		}

		body := `{"title":"Morning class","type":"group-class","start":"2024-06-03T09:00:00Z","end":"2024-06-03T10:00:00Z","trainer_id":"t1","pattern":"weekly","weekdays":["Monday","wednesday"],"until":"2024-06-30T00:00:00Z","skip_conflicts":true}`
		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPost, "/events/recurring", body, &principal)

		require.Equal(t, http.StatusCreated, recorder.Code)
		payload := decodeBody(t, recorder)
		events, ok := payload["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 2)
	})

	t.Run("recurring create rejects non-POST methods", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			createRecurringFunc: func(ctx context.Context, params application.CreateRecurringEventsParams) ([]application.Event, error) {
				t.Fatal("service must not be reached")
				return nil, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events/recurring", "", &principal)

		require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.Equal(t, http.MethodPost, recorder.Header().Get("Allow"))
	})

	t.Run("get serves events without a caller identity", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			getFunc: func(ctx context.Context, eventID string) (application.Event, error) {
				assert.Equal(t, "evt-1", eventID)
				return sampleEvent("evt-1"), nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events/evt-1", "", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		event, ok := payload["event"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "evt-1", event["id"])
	})

	t.Run("get maps missing events to 404", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			getFunc: func(ctx context.Context, eventID string) (application.Event, error) {
				return application.Event{}, application.ErrNotFound
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events/ghost", "", &principal)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("update maps unauthorized to 403", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			updateFunc: func(ctx context.Context, params application.UpdateEventParams) (application.Event, error) {
				return application.Event{}, application.ErrUnauthorized
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPut, "/events/evt-1", `{}`, &principal)

		require.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("status change resolves the event id and status", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			changeStatusFunc: func(ctx context.Context, params application.ChangeEventStatusParams) (application.Event, error) {
				assert.Equal(t, "evt-1", params.EventID)
				assert.Equal(t, scheduler.StatusConfirmed, params.Status)
				event := sampleEvent("evt-1")
				event.Status = scheduler.StatusConfirmed
				return event, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPut, "/events/evt-1/status", `{"status":"confirmed"}`, &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		event, ok := payload["event"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "confirmed", event["status"])
	})

	t.Run("status change maps invalid transitions to 409", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			changeStatusFunc: func(ctx context.Context, params application.ChangeEventStatusParams) (application.Event, error) {
				return application.Event{}, application.ErrInvalidTransition
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPut, "/events/evt-1/status", `{"status":"completed"}`, &principal)

		require.Equal(t, http.StatusConflict, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, "INVALID_TRANSITION", payload["error_code"])
	})

	t.Run("list converts day query parameter to a period filter", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			listFunc: func(ctx context.Context, params application.ListEventsParams) ([]application.Event, error) {
				assert.Equal(t, application.ListPeriodDay, params.Period)
				assert.Equal(t, 2024, params.PeriodReference.Year())
				return []application.Event{sampleEvent("evt-1")}, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events?day=2024-06-01", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		events, ok := payload["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 1)
	})

	t.Run("list forwards trainer, upcoming, and limit parameters", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			listFunc: func(ctx context.Context, params application.ListEventsParams) ([]application.Event, error) {
				assert.Equal(t, "t1", params.TrainerID)
				assert.True(t, params.UpcomingOnly)
				assert.Equal(t, 5, params.Limit)
				return nil, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events?trainer_id=t1&upcoming=true&limit=5", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("list forwards start-time bounds", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			listFunc: func(ctx context.Context, params application.ListEventsParams) ([]application.Event, error) {
				require.NotNil(t, params.StartsAfter)
				require.NotNil(t, params.StartsBefore)
				assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), *params.StartsAfter)
				assert.Equal(t, time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC), *params.StartsBefore)
				return nil, nil
			},
		}

		target := "/events?starts_after=2024-06-01T00:00:00Z&starts_before=2024-06-08T00:00:00Z"
		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, target, "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("overdue route is not treated as an event id", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			listOverdueFunc: func(ctx context.Context) ([]application.Event, error) {
				return []application.Event{sampleEvent("stale")}, nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, "/events/overdue", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		events, ok := payload["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 1)
	})

	t.Run("availability reports free and busy slots", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			availabilityFunc: func(ctx context.Context, params application.AvailabilityParams) ([]application.Event, error) {
				assert.Equal(t, "t1", params.TrainerID)
				assert.Equal(t, "evt-9", params.ExcludeEventID)
				return []application.Event{sampleEvent("busy")}, nil
			},
		}

		target := "/availability?trainer_id=t1&start=2024-06-01T10:00:00Z&end=2024-06-01T11:00:00Z&exclude_event_id=evt-9"
		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodGet, target, "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, false, payload["available"])
	})

	t.Run("delete returns 204 on success", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{
			deleteFunc: func(ctx context.Context, principal application.Principal, eventID string) error {
				assert.Equal(t, "evt-1", eventID)
				return nil
			},
		}

		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodDelete, "/events/evt-1", "", &principal)

		require.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.Bytes())
	})

	t.Run("unknown methods return 405 with Allow header", func(t *testing.T) {
		t.Parallel()

		stub := &eventServiceStub{}
		recorder := doRequest(t, routerFor(stub, nil, nil), http.MethodPatch, "/events", "", &principal)

		require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Allow"), http.MethodPost)
	})
}

func TestTrainerHandlers(t *testing.T) {
	t.Parallel()

	principal := application.Principal{UserID: "user-1"}
	admin := application.Principal{UserID: "admin", IsAdmin: true}

	t.Run("list is available to non-admins", func(t *testing.T) {
		t.Parallel()

		stub := &trainerServiceStub{
			listFunc: func(ctx context.Context, principal application.Principal) ([]application.Trainer, error) {
				trainer := testfixtures.NewTrainerFixture(
					testfixtures.WithTrainerID("t1"),
					testfixtures.WithTrainerName("Aiko Tanaka"),
				)
				return []application.Trainer{trainer.Application()}, nil
			},
		}

		recorder := doRequest(t, routerFor(nil, stub, nil), http.MethodGet, "/trainers", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		trainers, ok := payload["trainers"].([]any)
		require.True(t, ok)
		require.Len(t, trainers, 1)
	})

	t.Run("mutations surface authorization failures as 403", func(t *testing.T) {
		t.Parallel()

		stub := &trainerServiceStub{
			createFunc: func(ctx context.Context, params application.CreateTrainerParams) (application.Trainer, error) {
				return application.Trainer{}, application.ErrUnauthorized
			},
		}

		recorder := doRequest(t, routerFor(nil, stub, nil), http.MethodPost, "/trainers", `{"name":"Aiko"}`, &principal)

		require.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("create returns 201 for admins", func(t *testing.T) {
		t.Parallel()

		stub := &trainerServiceStub{
			createFunc: func(ctx context.Context, params application.CreateTrainerParams) (application.Trainer, error) {
				assert.True(t, params.Principal.IsAdmin)
				return application.Trainer{ID: "t1", Name: params.Input.Name, Active: true}, nil
			},
		}

		recorder := doRequest(t, routerFor(nil, stub, nil), http.MethodPost, "/trainers", `{"name":"Aiko Tanaka","active":true}`, &admin)

		require.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("delete with bookings returns the validation payload", func(t *testing.T) {
		t.Parallel()

		stub := &trainerServiceStub{
			deleteFunc: func(ctx context.Context, principal application.Principal, trainerID string) error {
				return &application.ValidationError{FieldErrors: map[string]string{"trainer_id": "trainer still has bookings; deactivate instead"}}
			},
		}

		recorder := doRequest(t, routerFor(nil, stub, nil), http.MethodDelete, "/trainers/t1", "", &admin)

		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestAnalyticsHandler(t *testing.T) {
	t.Parallel()

	principal := application.Principal{UserID: "user-1"}

	t.Run("serializes the snapshot", func(t *testing.T) {
		t.Parallel()

		stub := &analyticsServiceStub{
			snapshotFunc: func(ctx context.Context, params application.AnalyticsParams) (scheduler.Analytics, error) {
				return scheduler.Analytics{
					Total:         3,
					UpcomingCount: 2,
					ByType:        map[scheduler.EventType]int{scheduler.EventTypeTraining: 3},
					ByStatus:      map[scheduler.Status]int{scheduler.StatusScheduled: 3},
					ByTrainer:     []scheduler.TrainerLoad{{TrainerID: "t1", TrainerName: "Aiko", EventCount: 3}},
					BusyHours:     []scheduler.HourBucket{{Hour: 9, Count: 2}},
				}, nil
			},
		}

		recorder := doRequest(t, routerFor(nil, nil, stub), http.MethodGet, "/analytics", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeBody(t, recorder)
		assert.Equal(t, float64(3), payload["total"])
		byType, ok := payload["by_type"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(3), byType["training"])
	})

	t.Run("forwards the trainer filter", func(t *testing.T) {
		t.Parallel()

		stub := &analyticsServiceStub{
			snapshotFunc: func(ctx context.Context, params application.AnalyticsParams) (scheduler.Analytics, error) {
				assert.Equal(t, "t1", params.TrainerID)
				assert.Equal(t, application.ListPeriodMonth, params.Period)
				return scheduler.Analytics{}, nil
			},
		}

		recorder := doRequest(t, routerFor(nil, nil, stub), http.MethodGet, "/analytics?trainer_id=t1&month=2024-06", "", &principal)

		require.Equal(t, http.StatusOK, recorder.Code)
	})
}
