package promotionservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockPromotionRepo, *MockUserRepo) {
	ctrl := gomock.NewController(t)
	promotionRepo := NewMockPromotionRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	service := New(promotionRepo, userRepo)
	defer ctrl.Finish()
	return service, promotionRepo, userRepo
}

func activePromotion(id int, promoType domain.PromotionType, now time.Time) domain.Promotion {
	return domain.Promotion{
		ID:        id,
		Name:      "promo",
		Type:      promoType,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}
}

func TestEvaluate(t *testing.T) {
	service, promotionRepo, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name          string
		userID        int
		spent         float64
		promotionIDs  []int
		prepareMock   func()
		expected      *Evaluation
		expectedError error
	}{
		{
			name:         "No promotions requested",
			userID:       1,
			spent:        25.0,
			promotionIDs: nil,
			expected:     &Evaluation{},
		},
		{
			name:         "Automatic rate promotion",
			userID:       1,
			spent:        25.0,
			promotionIDs: []int{10},
			prepareMock: func() {
				p := activePromotion(10, domain.PromotionAutomatic, now)
				p.Rate = 0.1
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{10}).Return(map[int]domain.Promotion{10: p}, nil)
			},
			// 25.00 * 100 cents * 0.1 = 250 bonus points.
			expected: &Evaluation{Bonus: 250, AppliedIDs: []int{10}},
		},
		{
			name:         "One-time flat bonus",
			userID:       1,
			spent:        10.0,
			promotionIDs: []int{11},
			prepareMock: func() {
				p := activePromotion(11, domain.PromotionOneTime, now)
				p.Points = 50
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{11}).Return(map[int]domain.Promotion{11: p}, nil)
				promotionRepo.EXPECT().FindUse(gomock.Any(), 1, 11).Return(nil, nil)
			},
			expected: &Evaluation{Bonus: 50, AppliedIDs: []int{11}, OneTimeIDs: []int{11}},
		},
		{
			name:         "Rate and flat bonus combined",
			userID:       1,
			spent:        20.0,
			promotionIDs: []int{10, 11},
			prepareMock: func() {
				rate := activePromotion(10, domain.PromotionAutomatic, now)
				rate.Rate = 0.05
				flat := activePromotion(11, domain.PromotionOneTime, now)
				flat.Points = 40
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{10, 11}).Return(map[int]domain.Promotion{10: rate, 11: flat}, nil)
				promotionRepo.EXPECT().FindUse(gomock.Any(), 1, 11).Return(nil, nil)
			},
			// 2000 cents * 0.05 = 100, plus the flat 40.
			expected: &Evaluation{Bonus: 140, AppliedIDs: []int{10, 11}, OneTimeIDs: []int{11}},
		},
		{
			name:         "Unknown promotion rejects the set",
			userID:       1,
			spent:        25.0,
			promotionIDs: []int{10, 99},
			prepareMock: func() {
				p := activePromotion(10, domain.PromotionAutomatic, now)
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{10, 99}).Return(map[int]domain.Promotion{10: p}, nil)
			},
			expectedError: &InvalidPromotionsError{IDs: []int{99}},
		},
		{
			name:         "Expired promotion rejects the set",
			userID:       1,
			spent:        25.0,
			promotionIDs: []int{12},
			prepareMock: func() {
				p := domain.Promotion{
					ID:        12,
					Type:      domain.PromotionAutomatic,
					StartTime: now.Add(-2 * time.Hour),
					EndTime:   now.Add(-time.Hour),
				}
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{12}).Return(map[int]domain.Promotion{12: p}, nil)
			},
			expectedError: &InvalidPromotionsError{IDs: []int{12}},
		},
		{
			name:         "Duplicate promotion id rejected",
			userID:       1,
			spent:        25.0,
			promotionIDs: []int{10, 10},
			prepareMock: func() {
				p := activePromotion(10, domain.PromotionAutomatic, now)
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{10, 10}).Return(map[int]domain.Promotion{10: p}, nil)
			},
			expectedError: &InvalidPromotionsError{IDs: []int{10}},
		},
		{
			name:         "One-time promotion already used",
			userID:       1,
			spent:        10.0,
			promotionIDs: []int{11},
			prepareMock: func() {
				p := activePromotion(11, domain.PromotionOneTime, now)
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{11}).Return(map[int]domain.Promotion{11: p}, nil)
				promotionRepo.EXPECT().FindUse(gomock.Any(), 1, 11).Return(&domain.PromotionUse{UserID: 1, PromotionID: 11}, nil)
			},
			expectedError: ErrPromotionAlreadyUsed,
		},
		{
			name:         "Minimum spend not met",
			userID:       1,
			spent:        5.0,
			promotionIDs: []int{13},
			prepareMock: func() {
				p := activePromotion(13, domain.PromotionAutomatic, now)
				p.MinSpend = 10.0
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{13}).Return(map[int]domain.Promotion{13: p}, nil)
			},
			expectedError: ErrMinSpendNotMet,
		},
		{
			name:         "Error fetching promotions",
			userID:       1,
			spent:        25.0,
			promotionIDs: []int{10},
			prepareMock: func() {
				promotionRepo.EXPECT().FindByIDs(gomock.Any(), []int{10}).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			eval, err := service.Evaluate(context.Background(), tt.userID, tt.spent, tt.promotionIDs, now)
			if tt.expectedError != nil {
				assert.Error(t, err)
				var invalid *InvalidPromotionsError
				if errors.As(tt.expectedError, &invalid) {
					var got *InvalidPromotionsError
					assert.True(t, errors.As(err, &got))
					assert.Equal(t, invalid.IDs, got.IDs)
				} else {
					assert.ErrorContains(t, err, tt.expectedError.Error())
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, eval)
			}
		})
	}
}

func TestRecordUses(t *testing.T) {
	service, promotionRepo, _ := NewMock(t)

	promotionRepo.EXPECT().RecordUse(gomock.Any(), &domain.PromotionUse{
		UserID:        1,
		PromotionID:   11,
		TransactionID: 42,
	}).Return(nil)

	err := service.RecordUses(context.Background(), 1, 42, []int{11})
	assert.NoError(t, err)
}

func TestRecordUsesError(t *testing.T) {
	service, promotionRepo, _ := NewMock(t)

	promotionRepo.EXPECT().RecordUse(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))

	err := service.RecordUses(context.Background(), 1, 42, []int{11})
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	service, promotionRepo, userRepo := NewMock(t)
	now := time.Now()

	valid := &domain.Promotion{
		Name:      "welcome",
		Type:      domain.PromotionAutomatic,
		StartTime: now,
		EndTime:   now.Add(24 * time.Hour),
		Rate:      0.02,
	}

	tests := []struct {
		name          string
		managerID     int
		promotion     *domain.Promotion
		prepareMock   func()
		expectedError error
	}{
		{
			name:      "Successful creation",
			managerID: 1,
			promotion: valid,
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
				promotionRepo.EXPECT().Save(gomock.Any(), valid).Return(valid, nil)
			},
		},
		{
			name:      "Cashier cannot create",
			managerID: 2,
			promotion: valid,
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 2).Return(&domain.User{ID: 2, Role: domain.RoleCashier}, nil)
			},
			expectedError: ErrPermissionDenied,
		},
		{
			name:      "Unknown promotion type",
			managerID: 1,
			promotion: &domain.Promotion{Type: "WEEKLY", StartTime: now, EndTime: now.Add(time.Hour)},
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
			},
			expectedError: ErrInvalidPromotion,
		},
		{
			name:      "Window ends before it starts",
			managerID: 1,
			promotion: &domain.Promotion{Type: domain.PromotionAutomatic, StartTime: now, EndTime: now.Add(-time.Hour)},
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
			},
			expectedError: ErrInvalidPromotion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			_, err := service.Create(context.Background(), tt.managerID, tt.promotion)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	service, promotionRepo, userRepo := NewMock(t)
	now := time.Now()

	tests := []struct {
		name          string
		promotionID   int
		prepareMock   func()
		expectedError error
	}{
		{
			name:        "Delete before start",
			promotionID: 10,
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
				promotionRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Promotion{ID: 10, StartTime: now.Add(time.Hour)}, nil)
				promotionRepo.EXPECT().Delete(gomock.Any(), 10).Return(nil)
			},
		},
		{
			name:        "Started promotion cannot be deleted",
			promotionID: 11,
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
				promotionRepo.EXPECT().FindByID(gomock.Any(), 11).Return(&domain.Promotion{ID: 11, StartTime: now.Add(-time.Hour)}, nil)
			},
			expectedError: ErrPromotionStarted,
		},
		{
			name:        "Promotion not found",
			promotionID: 12,
			prepareMock: func() {
				userRepo.EXPECT().GetByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleManager}, nil)
				promotionRepo.EXPECT().FindByID(gomock.Any(), 12).Return(nil, nil)
			},
			expectedError: ErrPromotionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.Delete(context.Background(), 1, tt.promotionID, now)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListActive(t *testing.T) {
	service, promotionRepo, _ := NewMock(t)
	now := time.Now()

	expected := []domain.Promotion{activePromotion(10, domain.PromotionAutomatic, now)}
	promotionRepo.EXPECT().FindActive(gomock.Any(), now).Return(expected, nil)

	promotions, err := service.ListActive(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, expected, promotions)
}
