package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/club-scheduler/internal/application"
)

type trainerService interface {
	CreateTrainer(ctx context.Context, params application.CreateTrainerParams) (application.Trainer, error)
	UpdateTrainer(ctx context.Context, params application.UpdateTrainerParams) (application.Trainer, error)
	DeleteTrainer(ctx context.Context, principal application.Principal, trainerID string) error
	GetTrainer(ctx context.Context, principal application.Principal, trainerID string) (application.Trainer, error)
	ListTrainers(ctx context.Context, principal application.Principal) ([]application.Trainer, error)
}

type TrainerHandler struct {
	service   trainerService
	responder responder
	logger    *slog.Logger
}

func NewTrainerHandler(service trainerService, logger *slog.Logger) *TrainerHandler {
	base := defaultLogger(logger)
	return &TrainerHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TrainerHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TrainerHandler", operation, attrs...)
}

func (h *TrainerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req trainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode trainer request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	trainer, err := h.service.CreateTrainer(r.Context(), application.CreateTrainerParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "trainer creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("trainer_id", trainer.ID).InfoContext(r.Context(), "trainer created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, trainerResponse{Trainer: toTrainerDTO(trainer)})
}

func (h *TrainerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	trainerID, ok := TrainerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(trainerID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing trainer id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req trainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "trainer_id", trainerID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode trainer update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "trainer_id", trainerID)

	trainer, err := h.service.UpdateTrainer(r.Context(), application.UpdateTrainerParams{
		Principal: principal,
		TrainerID: trainerID,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "trainer update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "trainer updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, trainerResponse{Trainer: toTrainerDTO(trainer)})
}

func (h *TrainerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	trainerID, ok := TrainerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(trainerID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing trainer id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "trainer_id", trainerID)
	if err := h.service.DeleteTrainer(r.Context(), principal, trainerID); err != nil {
		logger.ErrorContext(r.Context(), "trainer delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "trainer deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *TrainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	trainerID, ok := TrainerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(trainerID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	trainer, err := h.service.GetTrainer(r.Context(), principal, trainerID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, trainerResponse{Trainer: toTrainerDTO(trainer)})
}

func (h *TrainerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		h.log(r.Context(), "List", "error_kind", "unauthorized").ErrorContext(r.Context(), "missing authenticated principal")
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingIdentityInfo)
		return
	}
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	trainers, err := h.service.ListTrainers(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "trainer list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(trainers)).InfoContext(r.Context(), "trainers listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTrainersResponse{Trainers: toTrainerDTOs(trainers)})
}

type trainerRequest struct {
	Name      string  `json:"name"`
	Specialty *string `json:"specialty"`
	Active    bool    `json:"active"`
}

func (r trainerRequest) toInput() application.TrainerInput {
	var specialty *string
	if r.Specialty != nil {
		trimmed := strings.TrimSpace(*r.Specialty)
		specialty = &trimmed
	}
	return application.TrainerInput{
		Name:      strings.TrimSpace(r.Name),
		Specialty: specialty,
		Active:    r.Active,
	}
}

type trainerResponse struct {
	Trainer trainerDTO `json:"trainer"`
}

type listTrainersResponse struct {
	Trainers []trainerDTO `json:"trainers"`
}

type trainerDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty,omitempty"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toTrainerDTO(trainer application.Trainer) trainerDTO {
	return trainerDTO{
		ID:        trainer.ID,
		Name:      trainer.Name,
		Specialty: trainer.Specialty,
		Active:    trainer.Active,
		CreatedAt: trainer.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: trainer.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toTrainerDTOs(trainers []application.Trainer) []trainerDTO {
	if len(trainers) == 0 {
		return nil
	}
	out := make([]trainerDTO, 0, len(trainers))
	for _, trainer := range trainers {
		out = append(out, toTrainerDTO(trainer))
	}
	return out
}
