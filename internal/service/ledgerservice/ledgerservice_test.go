package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	service := New(userRepo)
	defer ctrl.Finish()
	return service, userRepo
}

func TestCredit(t *testing.T) {
	service, userRepo := NewMock(t)
	tests := []struct {
		name            string
		userID          int
		points          int
		prepareMock     func()
		expectedBalance int
		expectedError   error
	}{
		{
			name:   "Successful credit",
			userID: 1,
			points: 100,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 50}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, 100).Return(150, nil)
			},
			expectedBalance: 150,
			expectedError:   nil,
		},
		{
			name:          "Non-positive amount",
			userID:        1,
			points:        0,
			expectedError: ErrInvalidAmount,
		},
		{
			name:   "User not found",
			userID: 2,
			points: 100,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 2).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:   "Error locking user",
			userID: 1,
			points: 100,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			balance, err := service.Credit(context.Background(), tt.userID, tt.points)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
		})
	}
}

func TestDebit(t *testing.T) {
	service, userRepo := NewMock(t)
	tests := []struct {
		name            string
		userID          int
		points          int
		prepareMock     func()
		expectedBalance int
		expectedError   error
	}{
		{
			name:   "Successful debit",
			userID: 1,
			points: 30,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 100}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, -30).Return(70, nil)
			},
			expectedBalance: 70,
			expectedError:   nil,
		},
		{
			name:   "Insufficient balance",
			userID: 1,
			points: 50,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 30}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:   "Debit exactly the balance",
			userID: 1,
			points: 100,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 100}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, -100).Return(0, nil)
			},
			expectedBalance: 0,
			expectedError:   nil,
		},
		{
			name:          "Non-positive amount",
			userID:        1,
			points:        -10,
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			balance, err := service.Debit(context.Background(), tt.userID, tt.points)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
		})
	}
}

func TestAdjust(t *testing.T) {
	service, userRepo := NewMock(t)
	tests := []struct {
		name            string
		userID          int
		delta           int
		prepareMock     func()
		expectedBalance int
		expectedError   error
	}{
		{
			name:   "Positive adjustment",
			userID: 1,
			delta:  25,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 10}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, 25).Return(35, nil)
			},
			expectedBalance: 35,
			expectedError:   nil,
		},
		{
			name:   "Negative adjustment within balance",
			userID: 1,
			delta:  -10,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 40}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, -10).Return(30, nil)
			},
			expectedBalance: 30,
			expectedError:   nil,
		},
		{
			name:   "Adjustment past zero rejected",
			userID: 1,
			delta:  -50,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 40}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:          "Zero delta",
			userID:        1,
			delta:         0,
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			balance, err := service.Adjust(context.Background(), tt.userID, tt.delta)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
		})
	}
}

func TestReleaseHold(t *testing.T) {
	service, userRepo := NewMock(t)

	userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 20}, nil)
	userRepo.EXPECT().AddPoints(gomock.Any(), 1, 80).Return(100, nil)

	balance, err := service.ReleaseHold(context.Background(), 1, 80)
	assert.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestReverseHold(t *testing.T) {
	service, userRepo := NewMock(t)
	tests := []struct {
		name            string
		points          int
		prepareMock     func()
		expectedBalance int
	}{
		{
			name:   "Reversal within balance",
			points: 80,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 100}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, -80).Return(20, nil)
			},
			expectedBalance: 20,
		},
		{
			// The points were already spent, so reversal is allowed to
			// leave the balance negative.
			name:   "Reversal past zero allowed",
			points: 80,
			prepareMock: func() {
				userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 50}, nil)
				userRepo.EXPECT().AddPoints(gomock.Any(), 1, -80).Return(-30, nil)
			},
			expectedBalance: -30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			balance, err := service.ReverseHold(context.Background(), 1, tt.points)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
		})
	}
}

func TestHoldRoundTrip(t *testing.T) {
	service, userRepo := NewMock(t)

	// Holding and clearing the same transaction must cancel out.
	userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 100}, nil)
	userRepo.EXPECT().AddPoints(gomock.Any(), 1, -80).Return(20, nil)
	userRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1, Points: 20}, nil)
	userRepo.EXPECT().AddPoints(gomock.Any(), 1, 80).Return(100, nil)

	balance, err := service.ReverseHold(context.Background(), 1, 80)
	assert.NoError(t, err)
	assert.Equal(t, 20, balance)

	balance, err = service.ReleaseHold(context.Background(), 1, 80)
	assert.NoError(t, err)
	assert.Equal(t, 100, balance)
}
