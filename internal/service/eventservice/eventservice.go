package eventservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/metrics"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
)

type EventRepo interface {
	GetByID(ctx context.Context, eventID int) (*domain.Event, error)
	GetForUpdate(ctx context.Context, eventID int) (*domain.Event, error)
	SpendPoints(ctx context.Context, eventID int, amount int) error
	Save(ctx context.Context, event *domain.Event) (*domain.Event, error)
	IsGuest(ctx context.Context, eventID, userID int) (bool, error)
	IsOrganizer(ctx context.Context, eventID, userID int) (bool, error)
	ListGuestIDs(ctx context.Context, eventID int) ([]int, error)
	CountGuests(ctx context.Context, eventID int) (int, error)
	AddGuest(ctx context.Context, eventID, userID int) error
	AddOrganizer(ctx context.Context, eventID, userID int) error
}

type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
}

type TransactionRepo interface {
	Save(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
}

type Ledger interface {
	Credit(ctx context.Context, userID int, points int) (int, error)
}

// Service allocates an event's point budget to its guests. The budget only
// moves down, by exactly the amount awarded, never below zero.
type Service struct {
	eventRepo EventRepo
	userRepo  UserRepo
	txnRepo   TransactionRepo
	ledger    Ledger
	txManager pg.TXManager
}

func New(eventRepo EventRepo, userRepo UserRepo, txnRepo TransactionRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		txnRepo:   txnRepo,
		ledger:    ledger,
		txManager: txManager,
	}
}

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrNotGuest                = errors.New("user is not a guest of this event")
	ErrNoGuests                = errors.New("event has no guests")
	ErrInvalidAmount           = errors.New("points amount must be positive")
	ErrInsufficientEventBudget = errors.New("insufficient remaining event points")
	ErrEventEnded              = errors.New("event has already ended")
	ErrEventFull               = errors.New("event is full")
	ErrInvalidEvent            = errors.New("invalid event definition")
)

// AwardPoints credits amount points to one guest (utorid given) or to every
// guest (utorid empty). Only a manager or an organizer of this event may
// award. The event row stays locked for the whole allocation, so concurrent
// awards cannot overdraw the budget; an insufficient budget aborts the
// entire batch.
func (s *Service) AwardPoints(ctx context.Context, eventID, awarderID, amount int, utorid string) ([]int, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var awarder *domain.User
	var organizer bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		awarder, err = s.userRepo.GetByID(gctx, awarderID)
		return err
	})
	g.Go(func() error {
		var err error
		organizer, err = s.eventRepo.IsOrganizer(gctx, eventID, awarderID)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to resolve awarder", zap.Error(err))
		return nil, err
	}
	if awarder == nil {
		return nil, ErrUserNotFound
	}
	if !awarder.Role.AtLeast(domain.RoleManager) && !organizer {
		return nil, ErrPermissionDenied
	}

	var txnIDs []int
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		if utorid != "" {
			txnIDs, err = s.awardOne(ctx, event, awarderID, amount, utorid)
			return err
		}
		txnIDs, err = s.awardAll(ctx, event, awarderID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txnIDs, nil
}

func (s *Service) awardOne(ctx context.Context, event *domain.Event, awarderID, amount int, utorid string) ([]int, error) {
	guest, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrUserNotFound
	}
	onList, err := s.eventRepo.IsGuest(ctx, event.ID, guest.ID)
	if err != nil {
		return nil, err
	}
	if !onList {
		return nil, ErrNotGuest
	}
	if event.PointsRemain < amount {
		return nil, ErrInsufficientEventBudget
	}

	txnID, err := s.creditGuest(ctx, event.ID, guest.ID, awarderID, amount)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.SpendPoints(ctx, event.ID, amount); err != nil {
		return nil, err
	}
	return []int{txnID}, nil
}

func (s *Service) awardAll(ctx context.Context, event *domain.Event, awarderID, amount int) ([]int, error) {
	guests, err := s.eventRepo.ListGuestIDs(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if len(guests) == 0 {
		return nil, ErrNoGuests
	}
	total := amount * len(guests)
	if event.PointsRemain < total {
		return nil, ErrInsufficientEventBudget
	}

	txnIDs := make([]int, 0, len(guests))
	for _, guestID := range guests {
		txnID, err := s.creditGuest(ctx, event.ID, guestID, awarderID, amount)
		if err != nil {
			return nil, err
		}
		txnIDs = append(txnIDs, txnID)
	}
	if err := s.eventRepo.SpendPoints(ctx, event.ID, total); err != nil {
		return nil, err
	}
	zap.L().Info("bulk event award",
		zap.Int("event_id", event.ID),
		zap.Int("guests", len(guests)),
		zap.Int("total_points", total))
	return txnIDs, nil
}

func (s *Service) creditGuest(ctx context.Context, eventID, guestID, awarderID, amount int) (int, error) {
	txn := &domain.Transaction{
		UserID:      guestID,
		Type:        domain.TypeEvent,
		Points:      amount,
		Status:      domain.StatusApproved,
		RelatedID:   &eventID,
		ProcessedBy: &awarderID,
	}
	if _, err := s.txnRepo.Save(ctx, txn); err != nil {
		return 0, err
	}
	if _, err := s.ledger.Credit(ctx, guestID, amount); err != nil {
		return 0, err
	}
	metrics.RecordTransaction(string(domain.TypeEvent), string(domain.StatusApproved), amount)
	return txn.ID, nil
}

// Create registers an event with its point budget. Manager only.
func (s *Service) Create(ctx context.Context, managerID int, event *domain.Event) (*domain.Event, error) {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil || !manager.Role.AtLeast(domain.RoleManager) {
		return nil, ErrPermissionDenied
	}
	if event.TotalPoints <= 0 {
		return nil, ErrInvalidEvent
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, ErrInvalidEvent
	}
	saved, err := s.eventRepo.Save(ctx, event)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Get returns one event.
func (s *Service) Get(ctx context.Context, eventID int) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// AddGuest RSVPs a user onto the guest list. Rejected once the event has
// ended or the capacity is reached.
func (s *Service) AddGuest(ctx context.Context, eventID int, utorid string, now time.Time) error {
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}
		if event.Ended(now) {
			return ErrEventEnded
		}
		if event.Capacity != nil {
			count, err := s.eventRepo.CountGuests(ctx, eventID)
			if err != nil {
				return err
			}
			if count >= *event.Capacity {
				return ErrEventFull
			}
		}
		return s.eventRepo.AddGuest(ctx, eventID, user.ID)
	})
}

// AddOrganizer attaches an organizer to the event. Manager only.
func (s *Service) AddOrganizer(ctx context.Context, managerID, eventID int, utorid string) error {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if manager == nil || !manager.Role.AtLeast(domain.RoleManager) {
		return ErrPermissionDenied
	}
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return s.eventRepo.AddOrganizer(ctx, eventID, user.ID)
}
