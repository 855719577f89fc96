package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/keyed"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface, *keyed.Store[int]) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	resetTokens := keyed.NewStore[int](time.Hour)
	loginLimiter := keyed.NewLimiter(rate.Limit(100), 100)

	service := New(repo, hashService, jwtService, resetTokens, loginLimiter)
	defer ctrl.Finish()
	return service, repo, hashService, jwtService, resetTokens
}

func TestRegister(t *testing.T) {
	service, userRepo, passwordHasher, _, _ := NewMock(t)

	tests := []struct {
		name          string
		utorid        string
		password      string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name:     "Successful registration",
			utorid:   "doejoh12",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				userRepo.EXPECT().Save(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
					user.ID = 1
					return user, nil
				})
			},
			expectedUser: &domain.User{
				ID:           1,
				Utorid:       "doejoh12",
				Name:         "John Doe",
				Email:        "john.doe@mail.utoronto.ca",
				PasswordHash: "hashedpassword",
				Role:         domain.RoleRegular,
			},
			expectedError: nil,
		},
		{
			name:     "Utorid already taken",
			utorid:   "doejoh12",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(&domain.User{Utorid: "doejoh12"}, nil)
			},
			expectedUser:  nil,
			expectedError: ErrUserExists,
		},
		{
			name:     "Error finding user",
			utorid:   "doejoh12",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(nil, errors.New("database error"))
			},
			expectedUser:  nil,
			expectedError: errors.New("database error"),
		},
		{
			name:     "Error hashing password",
			utorid:   "doejoh12",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("", errors.New("hashing error"))
			},
			expectedUser:  nil,
			expectedError: errors.New("hashing error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			user, err := service.Register(context.Background(), tt.utorid, "John Doe", "john.doe@mail.utoronto.ca", tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, userRepo, passwordHasher, _, _ := NewMock(t)

	tests := []struct {
		name          string
		utorid        string
		password      string
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Successful authentication",
			utorid:   "doejoh12",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(&domain.User{ID: 1, Utorid: "doejoh12", PasswordHash: "hashedpassword"}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(true)
			},
			expectedError: nil,
		},
		{
			name:     "Unknown utorid",
			utorid:   "nobody99",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "nobody99").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Wrong password",
			utorid:   "doejoh12",
			password: "wrongpassword",
			prepareMock: func() {
				userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(&domain.User{ID: 1, Utorid: "doejoh12", PasswordHash: "hashedpassword"}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "wrongpassword").Return(false)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			user, err := service.Authenticate(context.Background(), tt.utorid, tt.password, "10.0.0.1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.utorid, user.Utorid)
			}
		})
	}
}

func TestAuthenticateRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	// One attempt per hour with a burst of one.
	service := New(userRepo, hashService, jwtService, keyed.NewStore[int](time.Hour), keyed.NewLimiter(rate.Every(time.Hour), 1))
	defer ctrl.Finish()

	userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(nil, nil)

	_, err := service.Authenticate(context.Background(), "doejoh12", "pw", "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Authenticate(context.Background(), "doejoh12", "pw", "10.0.0.1")
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService, _ := NewMock(t)

	jwtService.EXPECT().GenerateJWT(1, domain.RoleCashier, gomock.Any()).Return("signed-token", nil)

	token, err := service.GenerateToken(1, domain.RoleCashier)
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestPasswordReset(t *testing.T) {
	service, userRepo, passwordHasher, _, resetTokens := NewMock(t)

	userRepo.EXPECT().GetByUtorid(context.Background(), "doejoh12").Return(&domain.User{ID: 1, Utorid: "doejoh12"}, nil)

	token, err := service.RequestPasswordReset(context.Background(), "doejoh12")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, resetTokens.Len())

	passwordHasher.EXPECT().HashPassword("newpassword").Return("newhash", nil)
	userRepo.EXPECT().SetPassword(context.Background(), 1, "newhash").Return(nil)

	err = service.ResetPassword(context.Background(), token, "newpassword")
	assert.NoError(t, err)

	// The token is single-use.
	err = service.ResetPassword(context.Background(), token, "newpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestRequestPasswordResetUnknownUtorid(t *testing.T) {
	service, userRepo, _, _, resetTokens := NewMock(t)

	userRepo.EXPECT().GetByUtorid(context.Background(), "nobody99").Return(nil, nil)

	// Unknown utorids get the same empty answer, no token issued.
	token, err := service.RequestPasswordReset(context.Background(), "nobody99")
	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, 0, resetTokens.Len())
}
