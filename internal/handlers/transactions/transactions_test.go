package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/dto"
	transactionservice "github.com/haishi2/csc309-a3-sub000/internal/service/transactionservice"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
)

func NewMock(t *testing.T) (*TransactionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

// authedRequest builds a request carrying the caller's user id and any chi
// URL params, the way the router middleware would.
func authedRequest(method, url, body string, userID int, params map[string]string) *http.Request {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	r := httptest.NewRequest(method, url, reader)
	ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func TestCreatePurchaseHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.PurchaseResponseDTO
	}{
		{
			name: "Successful purchase",
			body: `{"utorid":"clive123","spent":25.00,"promotionIds":[10]}`,
			prepareMock: func() {
				service.EXPECT().
					CreatePurchase(gomock.Any(), 5, "clive123", 25.00, []int{10}, "").
					Return(&transactionservice.PurchaseResult{
						TransactionID:       42,
						Earned:              350,
						Status:              domain.StatusApproved,
						AppliedPromotionIDs: []int{10},
					}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: dto.PurchaseResponseDTO{
				TransactionID:       42,
				Earned:              350,
				Status:              "APPROVED",
				AppliedPromotionIDs: []int{10},
			},
		},
		{
			name:          "Invalid request body",
			body:          `{"spent":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name: "Customer not found",
			body: `{"utorid":"nobody99","spent":25.00}`,
			prepareMock: func() {
				service.EXPECT().
					CreatePurchase(gomock.Any(), 5, "nobody99", 25.00, nil, "").
					Return(nil, transactionservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: transactionservice.ErrUserNotFound.Error(),
		},
		{
			name: "Zero spend",
			body: `{"utorid":"clive123","spent":0}`,
			prepareMock: func() {
				service.EXPECT().
					CreatePurchase(gomock.Any(), 5, "clive123", 0.0, nil, "").
					Return(nil, transactionservice.ErrInvalidSpent)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: transactionservice.ErrInvalidSpent.Error(),
		},
		{
			name: "Internal server error",
			body: `{"utorid":"clive123","spent":25.00}`,
			prepareMock: func() {
				service.EXPECT().
					CreatePurchase(gomock.Any(), 5, "clive123", 25.00, nil, "").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPost, "/api/transactions", tt.body, 5, nil)
			w := httptest.NewRecorder()

			handler.CreatePurchase(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.PurchaseResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestCreateAdjustmentHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful adjustment",
			body: `{"utorid":"clive123","amount":-40,"relatedId":42,"remark":"void promo"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateAdjustment(gomock.Any(), 9, "clive123", 42, -40, "void promo").
					Return(&domain.Transaction{ID: 60, UserID: 1, Type: domain.TypeAdjustment, Points: -40, Status: domain.StatusApproved}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Related transaction missing",
			body: `{"utorid":"clive123","amount":-40,"relatedId":99}`,
			prepareMock: func() {
				service.EXPECT().
					CreateAdjustment(gomock.Any(), 9, "clive123", 99, -40, "").
					Return(nil, transactionservice.ErrTransactionNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: transactionservice.ErrTransactionNotFound.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{"amount":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPost, "/api/transactions/adjustments", tt.body, 9, nil)
			w := httptest.NewRecorder()

			handler.CreateAdjustment(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestCreateRedemptionHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Redemption goes pending",
			body: `{"amount":50,"remark":"coffee"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateRedemption(gomock.Any(), 1, 50, "coffee").
					Return(&domain.Transaction{ID: 61, UserID: 1, Type: domain.TypeRedemption, Points: -50, Status: domain.StatusPending}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Insufficient balance",
			body: `{"amount":5000}`,
			prepareMock: func() {
				service.EXPECT().
					CreateRedemption(gomock.Any(), 1, 5000, "").
					Return(nil, transactionservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: transactionservice.ErrInsufficientBalance.Error(),
		},
		{
			name: "Unverified user",
			body: `{"amount":50}`,
			prepareMock: func() {
				service.EXPECT().
					CreateRedemption(gomock.Any(), 1, 50, "").
					Return(nil, transactionservice.ErrUnverifiedUser)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: transactionservice.ErrUnverifiedUser.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPost, "/api/users/me/transactions", tt.body, 1, nil)
			w := httptest.NewRecorder()

			handler.CreateRedemption(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestProcessRedemptionHandler(t *testing.T) {
	handler, service := NewMock(t)
	processedBy := 5

	tests := []struct {
		name          string
		transactionID string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:          "Successful processing",
			transactionID: "61",
			prepareMock: func() {
				service.EXPECT().
					ProcessRedemption(gomock.Any(), 5, 61).
					Return(&domain.Transaction{ID: 61, UserID: 1, Type: domain.TypeRedemption, Points: -50, Status: domain.StatusApproved, ProcessedBy: &processedBy}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Already processed",
			transactionID: "61",
			prepareMock: func() {
				service.EXPECT().
					ProcessRedemption(gomock.Any(), 5, 61).
					Return(nil, transactionservice.ErrAlreadyProcessed)
			},
			expectedCode:  http.StatusConflict,
			expectedError: transactionservice.ErrAlreadyProcessed.Error(),
		},
		{
			name:          "Invalid transaction id",
			transactionID: "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid transaction id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPatch, "/api/transactions/"+tt.transactionID+"/processed", "", 5,
				map[string]string{"transactionId": tt.transactionID})
			w := httptest.NewRecorder()

			handler.ProcessRedemption(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestCreateTransferHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		receiverID    string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.TransferResponseDTO
	}{
		{
			name:       "Successful transfer",
			receiverID: "2",
			body:       `{"amount":30,"remark":"lunch"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateTransfer(gomock.Any(), 1, 2, 30, "lunch").
					Return(&transactionservice.TransferResult{
						TransferID:    7,
						SenderTxnID:   70,
						ReceiverTxnID: 71,
						Amount:        30,
					}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: dto.TransferResponseDTO{
				TransferID:    7,
				SenderTxnID:   70,
				ReceiverTxnID: 71,
				Amount:        30,
			},
		},
		{
			name:       "Self transfer",
			receiverID: "1",
			body:       `{"amount":30}`,
			prepareMock: func() {
				service.EXPECT().
					CreateTransfer(gomock.Any(), 1, 1, 30, "").
					Return(nil, transactionservice.ErrSelfTransfer)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: transactionservice.ErrSelfTransfer.Error(),
		},
		{
			name:          "Invalid user id",
			receiverID:    "abc",
			body:          `{"amount":30}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid user id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPost, "/api/users/"+tt.receiverID+"/transactions", tt.body, 1,
				map[string]string{"userId": tt.receiverID})
			w := httptest.NewRecorder()

			handler.CreateTransfer(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.TransferResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestSetSuspiciousHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		transactionID string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.SuspiciousResponseDTO
	}{
		{
			name:          "Hold applied",
			transactionID: "42",
			body:          `{"suspicious":true}`,
			prepareMock: func() {
				service.EXPECT().
					SetSuspicious(gomock.Any(), 42, true).
					Return(&transactionservice.SuspiciousResult{TransactionID: 42, Held: true, NewBalance: 20}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.SuspiciousResponseDTO{TransactionID: 42, Held: true, NewBalance: 20},
		},
		{
			name:          "Transaction not found",
			transactionID: "99",
			body:          `{"suspicious":true}`,
			prepareMock: func() {
				service.EXPECT().
					SetSuspicious(gomock.Any(), 99, true).
					Return(nil, transactionservice.ErrTransactionNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: transactionservice.ErrTransactionNotFound.Error(),
		},
		{
			name:          "Invalid transaction id",
			transactionID: "abc",
			body:          `{"suspicious":true}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid transaction id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPatch, "/api/transactions/"+tt.transactionID+"/suspicious", tt.body, 9,
				map[string]string{"transactionId": tt.transactionID})
			w := httptest.NewRecorder()

			handler.SetSuspicious(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.SuspiciousResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		transactionID string
		prepareMock   func()
		expectedCode  int
	}{
		{
			name:          "Successful retrieval",
			transactionID: "42",
			prepareMock: func() {
				service.EXPECT().
					Get(gomock.Any(), 42).
					Return(&domain.Transaction{ID: 42, UserID: 1, Type: domain.TypePurchase, Points: 100, Status: domain.StatusApproved}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Not found",
			transactionID: "99",
			prepareMock: func() {
				service.EXPECT().
					Get(gomock.Any(), 99).
					Return(nil, transactionservice.ErrTransactionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodGet, "/api/transactions/"+tt.transactionID, "", 9,
				map[string]string{"transactionId": tt.transactionID})
			w := httptest.NewRecorder()

			handler.Get(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListMineHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					ListByUser(gomock.Any(), 1).
					Return([]domain.Transaction{
						{ID: 43, UserID: 1, Type: domain.TypeRedemption, Points: -50, Status: domain.StatusPending},
						{ID: 42, UserID: 1, Type: domain.TypePurchase, Points: 100, Status: domain.StatusApproved},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					ListByUser(gomock.Any(), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodGet, "/api/users/me/transactions", "", 1, nil)
			w := httptest.NewRecorder()

			handler.ListMine(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
				assert.Equal(t, 43, body[0].ID)
			}
		})
	}
}
