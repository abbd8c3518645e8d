package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/application"
	"github.com/example/club-scheduler/internal/scheduler"
)

type analyticsService interface {
	Snapshot(ctx context.Context, params application.AnalyticsParams) (scheduler.Analytics, error)
}

type AnalyticsHandler struct {
	service   analyticsService
	responder responder
	logger    *slog.Logger
}

func NewAnalyticsHandler(service analyticsService, logger *slog.Logger) *AnalyticsHandler {
	base := defaultLogger(logger)
	return &AnalyticsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	values := r.URL.Query()
	params := application.AnalyticsParams{
		TrainerID: strings.TrimSpace(values.Get("trainer_id")),
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

	snapshot, err := h.service.Snapshot(r.Context(), params)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "AnalyticsHandler", "Get").ErrorContext(r.Context(), "analytics snapshot failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAnalyticsDTO(snapshot))
}

type analyticsDTO struct {
	Total                  int              `json:"total"`
	TodayCount             int              `json:"today_count"`
	UpcomingCount          int              `json:"upcoming_count"`
	CompletedCount         int              `json:"completed_count"`
	CancelledCount         int              `json:"cancelled_count"`
	ByType                 map[string]int   `json:"by_type"`
	ByStatus               map[string]int   `json:"by_status"`
	ByTrainer              []trainerLoadDTO `json:"by_trainer"`
	BusyHours              []hourBucketDTO  `json:"busy_hours"`
	AverageDurationMinutes float64          `json:"average_duration_minutes"`
}

type trainerLoadDTO struct {
	TrainerID   string `json:"trainer_id"`
	TrainerName string `json:"trainer_name,omitempty"`
	EventCount  int    `json:"event_count"`
}

type hourBucketDTO struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

func toAnalyticsDTO(snapshot scheduler.Analytics) analyticsDTO {
	dto := analyticsDTO{
		Total:                  snapshot.Total,
		TodayCount:             snapshot.TodayCount,
		UpcomingCount:          snapshot.UpcomingCount,
		CompletedCount:         snapshot.CompletedCount,
		CancelledCount:         snapshot.CancelledCount,
		ByType:                 make(map[string]int, len(snapshot.ByType)),
		ByStatus:               make(map[string]int, len(snapshot.ByStatus)),
		AverageDurationMinutes: snapshot.AverageDurationMinutes,
	}
	for eventType, count := range snapshot.ByType {
		dto.ByType[string(eventType)] = count
	}
	for status, count := range snapshot.ByStatus {
		dto.ByStatus[string(status)] = count
	}
	for _, load := range snapshot.ByTrainer {
		dto.ByTrainer = append(dto.ByTrainer, trainerLoadDTO{
			TrainerID:   load.TrainerID,
			TrainerName: load.TrainerName,
			EventCount:  load.EventCount,
		})
	}
	for _, bucket := range snapshot.BusyHours {
		dto.BusyHours = append(dto.BusyHours, hourBucketDTO{Hour: bucket.Hour, Count: bucket.Count})
	}
	return dto
}
