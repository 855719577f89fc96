package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/dto"
	eventservice "github.com/haishi2/csc309-a3-sub000/internal/service/eventservice"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/utils"
)

type Service interface {
	AwardPoints(ctx context.Context, eventID, awarderID, amount int, utorid string) ([]int, error)
	Create(ctx context.Context, managerID int, event *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, eventID int) (*domain.Event, error)
	AddGuest(ctx context.Context, eventID int, utorid string, now time.Time) error
	AddOrganizer(ctx context.Context, managerID, eventID int, utorid string) error
}

type EventHandler struct {
	eventService Service
}

func New(eventService Service) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// AwardPoints godoc
//
//	@Summary	Award event points to one guest or all guests
//	@Tags		Events
//	@Security	BearerAuth
//	@Router		/api/events/{eventId}/transactions [post]
func (h *EventHandler) AwardPoints(w http.ResponseWriter, r *http.Request) {
	awarderID := r.Context().Value(auth.UserIDKey).(int)
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req dto.EventAwardRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txnIDs, err := h.eventService.AwardPoints(r.Context(), eventID, awarderID, req.Amount, req.Utorid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.EventAwardResponseDTO{TransactionIDs: txnIDs})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.EventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid start time")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid end time")
		return
	}

	event := &domain.Event{
		Name:        req.Name,
		Location:    req.Location,
		StartTime:   startTime,
		EndTime:     endTime,
		Capacity:    req.Capacity,
		TotalPoints: req.TotalPoints,
	}
	created, err := h.eventService.Create(r.Context(), managerID, event)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toEventDTO(created))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.eventService.Get(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toEventDTO(event))
}

func (h *EventHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req dto.EventGuestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.eventService.AddGuest(r.Context(), eventID, req.Utorid, time.Now()); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{Message: "guest added"})
}

func (h *EventHandler) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	managerID := r.Context().Value(auth.UserIDKey).(int)
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req dto.EventGuestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.eventService.AddOrganizer(r.Context(), managerID, eventID, req.Utorid); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{Message: "organizer added"})
}

func toEventDTO(e *domain.Event) dto.EventResponseDTO {
	return dto.EventResponseDTO{
		ID:            e.ID,
		Name:          e.Name,
		Location:      e.Location,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Capacity:      e.Capacity,
		TotalPoints:   e.TotalPoints,
		PointsRemain:  e.PointsRemain,
		PointsAwarded: e.PointsAwarded,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventservice.ErrEventNotFound),
		errors.Is(err, eventservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, eventservice.ErrPermissionDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, eventservice.ErrEventEnded),
		errors.Is(err, eventservice.ErrEventFull):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, eventservice.ErrNotGuest),
		errors.Is(err, eventservice.ErrNoGuests),
		errors.Is(err, eventservice.ErrInvalidAmount),
		errors.Is(err, eventservice.ErrInvalidEvent),
		errors.Is(err, eventservice.ErrInsufficientEventBudget):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
