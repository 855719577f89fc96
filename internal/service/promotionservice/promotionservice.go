package promotionservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/metrics"
)

type PromotionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Promotion, error)
	FindByIDs(ctx context.Context, ids []int) (map[int]domain.Promotion, error)
	FindActive(ctx context.Context, now time.Time) ([]domain.Promotion, error)
	Save(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id int) error
	FindUse(ctx context.Context, userID, promotionID int) (*domain.PromotionUse, error)
	RecordUse(ctx context.Context, use *domain.PromotionUse) error
}

type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
}

type Service struct {
	promotionRepo PromotionRepo
	userRepo      UserRepo
}

func New(promotionRepo PromotionRepo, userRepo UserRepo) *Service {
	return &Service{
		promotionRepo: promotionRepo,
		userRepo:      userRepo,
	}
}

var (
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrPromotionAlreadyUsed = errors.New("promotion already used")
	ErrMinSpendNotMet       = errors.New("purchase does not meet promotion minimum spend")
	ErrPromotionStarted     = errors.New("promotion already started")
	ErrInvalidPromotion     = errors.New("invalid promotion definition")
	ErrPermissionDenied     = errors.New("permission denied")
)

// InvalidPromotionsError rejects a purchase whose requested promotion ids
// include unknown, expired or duplicated entries. Evaluation is
// all-or-nothing, so every offending id is reported at once.
type InvalidPromotionsError struct {
	IDs []int
}

func (e *InvalidPromotionsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprint(id)
	}
	return "invalid or expired promotions: " + strings.Join(parts, ", ")
}

// Evaluation is the outcome of applying promotions to one purchase.
type Evaluation struct {
	// Bonus is the extra points on top of the purchase baseline.
	Bonus int
	// AppliedIDs lists every promotion that contributed, in request order.
	AppliedIDs []int
	// OneTimeIDs is the subset whose use must be recorded with the
	// purchase transaction.
	OneTimeIDs []int
}

// Evaluate validates the requested promotions against the purchase and
// computes the total bonus. Promotions are checked in the order supplied;
// any invalid entry rejects the whole set before anything is applied.
func (s *Service) Evaluate(ctx context.Context, userID int, spent float64, promotionIDs []int, now time.Time) (*Evaluation, error) {
	if len(promotionIDs) == 0 {
		return &Evaluation{}, nil
	}

	promotions, err := s.promotionRepo.FindByIDs(ctx, promotionIDs)
	if err != nil {
		zap.L().Error("failed to fetch promotions", zap.Error(err))
		return nil, err
	}

	var offending []int
	seen := make(map[int]bool, len(promotionIDs))
	for _, id := range promotionIDs {
		p, ok := promotions[id]
		if !ok || !p.ActiveAt(now) || seen[id] {
			offending = append(offending, id)
		}
		seen[id] = true
	}
	if len(offending) > 0 {
		sort.Ints(offending)
		return nil, &InvalidPromotionsError{IDs: offending}
	}

	eval := &Evaluation{}
	for _, id := range promotionIDs {
		p := promotions[id]
		if p.MinSpend > 0 && spent < p.MinSpend {
			return nil, fmt.Errorf("%w: promotion %d", ErrMinSpendNotMet, id)
		}
		if p.Type == domain.PromotionOneTime {
			use, err := s.promotionRepo.FindUse(ctx, userID, id)
			if err != nil {
				zap.L().Error("failed to check promotion use", zap.Error(err))
				return nil, err
			}
			if use != nil {
				return nil, fmt.Errorf("%w: promotion %d", ErrPromotionAlreadyUsed, id)
			}
			eval.OneTimeIDs = append(eval.OneTimeIDs, id)
		}
		eval.Bonus += bonusPoints(spent, &p)
		eval.AppliedIDs = append(eval.AppliedIDs, id)
	}
	return eval, nil
}

// bonusPoints is the promotion formula: a rate share of the spend in cents
// plus the flat bonus. Both AUTOMATIC and ONE_TIME use it.
func bonusPoints(spent float64, p *domain.Promotion) int {
	return int(math.Round(spent*100*p.Rate)) + p.Points
}

// RecordUses writes the PromotionUse rows tying the consumed one-time
// promotions to the purchase transaction. Must run inside the purchase's
// ambient transaction so a failed purchase leaves no uses behind.
func (s *Service) RecordUses(ctx context.Context, userID, transactionID int, oneTimeIDs []int) error {
	for _, id := range oneTimeIDs {
		use := &domain.PromotionUse{
			UserID:        userID,
			PromotionID:   id,
			TransactionID: transactionID,
		}
		if err := s.promotionRepo.RecordUse(ctx, use); err != nil {
			zap.L().Error("failed to record promotion use", zap.Error(err))
			return err
		}
		metrics.PromotionUses.WithLabelValues(string(domain.PromotionOneTime)).Inc()
	}
	return nil
}

// Create registers a promotion. Manager only.
func (s *Service) Create(ctx context.Context, managerID int, p *domain.Promotion) (*domain.Promotion, error) {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil || !manager.Role.AtLeast(domain.RoleManager) {
		return nil, ErrPermissionDenied
	}
	if p.Type != domain.PromotionAutomatic && p.Type != domain.PromotionOneTime {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidPromotion, p.Type)
	}
	if !p.EndTime.After(p.StartTime) {
		return nil, fmt.Errorf("%w: window ends before it starts", ErrInvalidPromotion)
	}
	if p.Rate < 0 || p.Points < 0 || p.MinSpend < 0 {
		return nil, fmt.Errorf("%w: negative rate, points or min spend", ErrInvalidPromotion)
	}
	p.ManagerID = managerID
	return s.promotionRepo.Save(ctx, p)
}

// Delete removes a promotion, allowed only before its window opens.
func (s *Service) Delete(ctx context.Context, managerID, promotionID int, now time.Time) error {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if manager == nil || !manager.Role.AtLeast(domain.RoleManager) {
		return ErrPermissionDenied
	}
	p, err := s.promotionRepo.FindByID(ctx, promotionID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPromotionNotFound
	}
	if !now.Before(p.StartTime) {
		return ErrPromotionStarted
	}
	return s.promotionRepo.Delete(ctx, promotionID)
}

// ListActive returns the promotions usable right now.
func (s *Service) ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	promotions, err := s.promotionRepo.FindActive(ctx, now)
	if err != nil {
		zap.L().Error("failed to list active promotions", zap.Error(err))
		return nil, err
	}
	return promotions, nil
}
