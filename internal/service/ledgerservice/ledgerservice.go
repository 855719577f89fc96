package ledgerservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
)

type UserRepo interface {
	GetForUpdate(ctx context.Context, userID int) (*domain.User, error)
	AddPoints(ctx context.Context, userID int, delta int) (int, error)
}

// Service is the points ledger. Every balance mutation in the system goes
// through it, on a row locked by the caller's ambient transaction, so two
// operations against the same user never compute from a stale balance.
type Service struct {
	userRepo UserRepo
}

func New(userRepo UserRepo) *Service {
	return &Service{
		userRepo: userRepo,
	}
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("points amount must be positive")
	ErrUserNotFound        = errors.New("user not found")
)

// Credit adds points to the user's balance and returns the new balance.
func (s *Service) Credit(ctx context.Context, userID int, points int) (int, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}
	if _, err := s.lock(ctx, userID); err != nil {
		return 0, err
	}
	return s.userRepo.AddPoints(ctx, userID, points)
}

// Debit removes points from the user's balance, failing if the balance does
// not cover the amount.
func (s *Service) Debit(ctx context.Context, userID int, points int) (int, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}
	user, err := s.lock(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Points < points {
		return 0, ErrInsufficientBalance
	}
	return s.userRepo.AddPoints(ctx, userID, -points)
}

// Adjust applies a signed delta. A debit past zero is rejected: outside the
// held-reversal path a negative balance is ledger corruption.
func (s *Service) Adjust(ctx context.Context, userID int, delta int) (int, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}
	user, err := s.lock(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Points+delta < 0 {
		return 0, ErrInsufficientBalance
	}
	return s.userRepo.AddPoints(ctx, userID, delta)
}

// ReleaseHold applies the points of a held transaction to the balance. The
// signed amount comes straight off the transaction row.
func (s *Service) ReleaseHold(ctx context.Context, userID int, points int) (int, error) {
	if _, err := s.lock(ctx, userID); err != nil {
		return 0, err
	}
	balance, err := s.userRepo.AddPoints(ctx, userID, points)
	if err != nil {
		return 0, err
	}
	if balance < 0 {
		zap.L().Error("ledger corruption: negative balance after hold release",
			zap.Int("user_id", userID), zap.Int("balance", balance))
	}
	return balance, nil
}

// ReverseHold backs the points of a transaction out of the balance when it
// is put on hold. The balance may transiently go negative here; that is the
// one documented exception to the non-negative invariant.
func (s *Service) ReverseHold(ctx context.Context, userID int, points int) (int, error) {
	if _, err := s.lock(ctx, userID); err != nil {
		return 0, err
	}
	balance, err := s.userRepo.AddPoints(ctx, userID, -points)
	if err != nil {
		return 0, err
	}
	if balance < 0 {
		zap.L().Warn("balance transiently negative after hold reversal",
			zap.Int("user_id", userID), zap.Int("balance", balance))
	}
	return balance, nil
}

func (s *Service) lock(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetForUpdate(ctx, userID)
	if err != nil {
		zap.L().Error("failed to lock user balance", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
