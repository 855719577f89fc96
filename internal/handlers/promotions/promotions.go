package promotions

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
	promotionservice "github.com/haishi2/csc309-a3-sub000/internal/service/promotionservice"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, managerID int, p *domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, managerID, promotionID int, now time.Time) error
	ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error)
}

type PromotionHandler struct {
	promotionService Service
}

func New(promotionService Service) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PromotionRequestDTO
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

	promotion := &domain.Promotion{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.PromotionType(req.Type),
		StartTime:   startTime,
		EndTime:     endTime,
		MinSpend:    req.MinSpend,
		Rate:        req.Rate,
		Points:      req.Points,
	}
	created, err := h.promotionService.Create(r.Context(), managerID, promotion)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toPromotionDTO(created))
}

func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	managerID := r.Context().Value(auth.UserIDKey).(int)
	promotionID, err := strconv.Atoi(chi.URLParam(r, "promotionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid promotion id")
		return
	}

	if err := h.promotionService.Delete(r.Context(), managerID, promotionID, time.Now()); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

func (h *PromotionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.ListActive(r.Context(), time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PromotionResponseDTO, len(promotions))
	for i := range promotions {
		response[i] = toPromotionDTO(&promotions[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toPromotionDTO(p *domain.Promotion) dto.PromotionResponseDTO {
	return dto.PromotionResponseDTO{
		ID:        p.ID,
		Name:      p.Name,
		Type:      string(p.Type),
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		MinSpend:  p.MinSpend,
		Rate:      p.Rate,
		Points:    p.Points,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, promotionservice.ErrPromotionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, promotionservice.ErrPermissionDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, promotionservice.ErrPromotionStarted):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, promotionservice.ErrInvalidPromotion):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
