package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/dto"
	"github.com/haishi2/csc309-a3-sub000/internal/service/promotionservice"
	transactionservice "github.com/haishi2/csc309-a3-sub000/internal/service/transactionservice"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/utils"
)

type Service interface {
	CreatePurchase(ctx context.Context, cashierID int, utorid string, spent float64, promotionIDs []int, remark string) (*transactionservice.PurchaseResult, error)
	CreateAdjustment(ctx context.Context, managerID int, utorid string, relatedTxnID int, delta int, remark string) (*domain.Transaction, error)
	CreateRedemption(ctx context.Context, userID int, amount int, remark string) (*domain.Transaction, error)
	ProcessRedemption(ctx context.Context, cashierID int, transactionID int) (*domain.Transaction, error)
	CreateTransfer(ctx context.Context, senderID int, receiverID int, amount int, remark string) (*transactionservice.TransferResult, error)
	SetSuspicious(ctx context.Context, transactionID int, suspicious bool) (*transactionservice.SuspiciousResult, error)
	Get(ctx context.Context, transactionID int) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	transactionService Service
}

func New(transactionService Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreatePurchase godoc
//
//	@Summary	Ring up a purchase for a customer
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Router		/api/transactions [post]
func (h *TransactionHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	cashierID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.transactionService.CreatePurchase(r.Context(), cashierID, req.Utorid, req.Spent, req.PromotionIDs, req.Remark)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.PurchaseResponseDTO{
		TransactionID:       result.TransactionID,
		Earned:              result.Earned,
		Status:              string(result.Status),
		AppliedPromotionIDs: result.AppliedPromotionIDs,
	})
}

// CreateAdjustment godoc
//
//	@Summary	Create a manager adjustment against an existing transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Router		/api/transactions/adjustments [post]
func (h *TransactionHandler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	managerID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.AdjustmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.transactionService.CreateAdjustment(r.Context(), managerID, req.Utorid, req.RelatedID, req.Amount, req.Remark)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toTransactionDTO(txn))
}

func (h *TransactionHandler) CreateRedemption(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.RedemptionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.transactionService.CreateRedemption(r.Context(), userID, req.Amount, req.Remark)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toTransactionDTO(txn))
}

func (h *TransactionHandler) ProcessRedemption(w http.ResponseWriter, r *http.Request) {
	cashierID := r.Context().Value(auth.UserIDKey).(int)
	transactionID, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.transactionService.ProcessRedemption(r.Context(), cashierID, transactionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTO(txn))
}

func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	senderID := r.Context().Value(auth.UserIDKey).(int)
	receiverID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.transactionService.CreateTransfer(r.Context(), senderID, receiverID, req.Amount, req.Remark)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.TransferResponseDTO{
		TransferID:    result.TransferID,
		SenderTxnID:   result.SenderTxnID,
		ReceiverTxnID: result.ReceiverTxnID,
		Amount:        result.Amount,
	})
}

// SetSuspicious flips a transaction's hold state and reports the owner's
// reconciled balance.
func (h *TransactionHandler) SetSuspicious(w http.ResponseWriter, r *http.Request) {
	transactionID, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req dto.SuspiciousRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.transactionService.SetSuspicious(r.Context(), transactionID, req.Suspicious)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SuspiciousResponseDTO{
		TransactionID: result.TransactionID,
		Held:          result.Held,
		NewBalance:    result.NewBalance,
	})
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	transactionID, err := strconv.Atoi(chi.URLParam(r, "transactionId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.transactionService.Get(r.Context(), transactionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTO(txn))
}

func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	txns, err := h.transactionService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(txns))
	for i := range txns {
		response[i] = toTransactionDTO(&txns[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toTransactionDTO(t *domain.Transaction) dto.TransactionResponseDTO {
	return dto.TransactionResponseDTO{
		ID:                t.ID,
		UserID:            t.UserID,
		Type:              string(t.Type),
		Points:            t.Points,
		Spent:             t.Spent,
		Status:            string(t.Status),
		NeedsVerification: t.NeedsVerification,
		RelatedID:         t.RelatedID,
		ProcessedBy:       t.ProcessedBy,
		Remark:            t.Remark,
		CreatedAt:         t.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var invalidPromos *promotionservice.InvalidPromotionsError
	switch {
	case errors.As(err, &invalidPromos):
		utils.RespondWithError(w, http.StatusBadRequest, invalidPromos.Error())
	case errors.Is(err, transactionservice.ErrUserNotFound),
		errors.Is(err, transactionservice.ErrTransactionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, transactionservice.ErrPermissionDenied),
		errors.Is(err, transactionservice.ErrUnverifiedUser):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, transactionservice.ErrAlreadyProcessed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, transactionservice.ErrInsufficientBalance),
		errors.Is(err, transactionservice.ErrInvalidSpent),
		errors.Is(err, transactionservice.ErrInvalidAmount),
		errors.Is(err, transactionservice.ErrInvalidAdjustment),
		errors.Is(err, transactionservice.ErrWrongTransactionType),
		errors.Is(err, transactionservice.ErrSelfTransfer),
		errors.Is(err, promotionservice.ErrPromotionAlreadyUsed),
		errors.Is(err, promotionservice.ErrMinSpendNotMet):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
