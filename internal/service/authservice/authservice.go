package authservice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/keyed"
)

type Repo interface {
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	SetPassword(ctx context.Context, userID int, passwordHash string) error
}

type Service struct {
	userRepo     Repo
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
	resetTokens  *keyed.Store[int]
	loginLimiter *keyed.Limiter
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, resetTokens *keyed.Store[int], loginLimiter *keyed.Limiter) *Service {
	return &Service{
		userRepo:     repo,
		hashService:  hashService,
		jwtService:   jwtService,
		resetTokens:  resetTokens,
		loginLimiter: loginLimiter,
	}
}

var (
	ErrUserExists         = errors.New("utorid already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyRequests    = errors.New("too many login attempts")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

func (s *Service) Register(ctx context.Context, utorid, name, email, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("utorid", utorid))
		return nil, ErrUserExists
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Utorid:       utorid,
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleRegular,
	}
	newUser, err := s.userRepo.Save(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("utorid", utorid))
	return newUser, nil
}

// Authenticate checks credentials, rate-limited per remote address.
func (s *Service) Authenticate(ctx context.Context, utorid, password, remoteAddr string) (*domain.User, error) {
	if !s.loginLimiter.Allow(remoteAddr) {
		return nil, ErrTooManyRequests
	}
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil || user == nil {
		zap.L().Info("invalid credentials", zap.String("utorid", utorid))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("utorid", utorid))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("utorid", utorid))
	return user, nil
}

func (s *Service) GenerateToken(userID int, role domain.Role) (string, error) {
	expirationTime := time.Now().Add(8 * time.Hour)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

// RequestPasswordReset issues a single-use reset token with the store's
// TTL. Delivering the token to the user is someone else's job.
func (s *Service) RequestPasswordReset(ctx context.Context, utorid string) (string, error) {
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return "", err
	}
	if user == nil {
		// Same answer as success so the endpoint doesn't leak which
		// utorids exist.
		return "", nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	s.resetTokens.Put(token, user.ID)
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok := s.resetTokens.Get(token)
	if !ok {
		return ErrInvalidResetToken
	}
	hashedPassword, err := s.hashService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetPassword(ctx, userID, hashedPassword); err != nil {
		zap.L().Error("can't reset password: ", zap.Error(err))
		return err
	}
	s.resetTokens.Delete(token)
	zap.L().Info("password reset", zap.Int("user_id", userID))
	return nil
}
