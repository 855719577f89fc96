package transactionservice

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/metrics"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
	"github.com/haishi2/csc309-a3-sub000/internal/service/ledgerservice"
	"github.com/haishi2/csc309-a3-sub000/internal/service/promotionservice"
)

// PointsPerDollar is the purchase baseline: four points per dollar spent.
const PointsPerDollar = 4

type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	GetByUtorid(ctx context.Context, utorid string) (*domain.User, error)
}

type TransactionRepo interface {
	Save(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id int) (*domain.Transaction, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Transaction, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
	MarkProcessed(ctx context.Context, id int, processedBy int, status domain.TransactionStatus) error
	SetNeedsVerification(ctx context.Context, id int, needsVerification bool, status domain.TransactionStatus) error
}

type TransferRepo interface {
	Save(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error)
}

// Evaluator is the promotion side of a purchase: validate and price the
// requested promotions, then persist their uses with the transaction.
type Evaluator interface {
	Evaluate(ctx context.Context, userID int, spent float64, promotionIDs []int, now time.Time) (*promotionservice.Evaluation, error)
	RecordUses(ctx context.Context, userID, transactionID int, oneTimeIDs []int) error
}

// Ledger is the balance side. Every mutation runs on a locked user row
// inside the ambient transaction.
type Ledger interface {
	Credit(ctx context.Context, userID int, points int) (int, error)
	Debit(ctx context.Context, userID int, points int) (int, error)
	Adjust(ctx context.Context, userID int, delta int) (int, error)
	ReleaseHold(ctx context.Context, userID int, points int) (int, error)
	ReverseHold(ctx context.Context, userID int, points int) (int, error)
}

type Service struct {
	userRepo     UserRepo
	txnRepo      TransactionRepo
	transferRepo TransferRepo
	promotions   Evaluator
	ledger       Ledger
	txManager    pg.TXManager
}

func New(userRepo UserRepo, txnRepo TransactionRepo, transferRepo TransferRepo, promotions Evaluator, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:     userRepo,
		txnRepo:      txnRepo,
		transferRepo: transferRepo,
		promotions:   promotions,
		ledger:       ledger,
		txManager:    txManager,
	}
}

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrUnverifiedUser       = errors.New("user is not a verified student")
	ErrInvalidSpent         = errors.New("spent amount must be positive")
	ErrInvalidAmount        = errors.New("points amount must be positive")
	ErrInvalidAdjustment    = errors.New("adjustment amount must be non-zero")
	ErrAlreadyProcessed     = errors.New("transaction already processed")
	ErrWrongTransactionType = errors.New("wrong transaction type")
	ErrSelfTransfer         = errors.New("cannot transfer points to yourself")

	// ErrInsufficientBalance is the ledger's sentinel, re-exported so
	// callers can match it no matter which layer raised it.
	ErrInsufficientBalance = ledgerservice.ErrInsufficientBalance
)

// PurchaseResult is what a cashier gets back for a rung-up purchase.
type PurchaseResult struct {
	TransactionID       int
	Earned              int
	Status              domain.TransactionStatus
	AppliedPromotionIDs []int
}

// CreatePurchase rings up a purchase: baseline points on the spend, plus
// whatever the requested promotions add. A suspicious cashier's purchase is
// created held, its points withheld from the balance until a manager clears
// the transaction.
func (s *Service) CreatePurchase(ctx context.Context, cashierID int, utorid string, spent float64, promotionIDs []int, remark string) (res *PurchaseResult, err error) {
	defer observe("create_purchase", time.Now(), &err)

	cashier, err := s.userRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Role.AtLeast(domain.RoleCashier) {
		return nil, ErrPermissionDenied
	}
	if spent <= 0 {
		return nil, ErrInvalidSpent
	}
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	held := cashier.Suspicious
	status := domain.StatusApproved
	if held {
		status = domain.StatusPending
	}

	var txn *domain.Transaction
	var eval *promotionservice.Evaluation
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		eval, err = s.promotions.Evaluate(ctx, user.ID, spent, promotionIDs, time.Now())
		if err != nil {
			return err
		}
		earned := int(math.Round(spent*PointsPerDollar)) + eval.Bonus

		txn = &domain.Transaction{
			UserID:            user.ID,
			Type:              domain.TypePurchase,
			Points:            earned,
			Spent:             spent,
			Status:            status,
			NeedsVerification: held,
			ProcessedBy:       &cashierID,
			Remark:            remark,
		}
		if _, err := s.txnRepo.Save(ctx, txn); err != nil {
			return err
		}
		if err := s.promotions.RecordUses(ctx, user.ID, txn.ID, eval.OneTimeIDs); err != nil {
			return err
		}
		if !held {
			if _, err := s.ledger.Credit(ctx, user.ID, earned); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransaction(string(domain.TypePurchase), string(status), txn.Points)
	zap.L().Info("purchase created",
		zap.Int("transaction_id", txn.ID),
		zap.Int("earned", txn.Points),
		zap.Bool("held", held))
	return &PurchaseResult{
		TransactionID:       txn.ID,
		Earned:              txn.Points,
		Status:              status,
		AppliedPromotionIDs: eval.AppliedIDs,
	}, nil
}

// CreateAdjustment applies a manager correction against an existing
// transaction. The delta lands on the balance immediately.
func (s *Service) CreateAdjustment(ctx context.Context, managerID int, utorid string, relatedTxnID int, delta int, remark string) (txn *domain.Transaction, err error) {
	defer observe("create_adjustment", time.Now(), &err)

	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil || !manager.Role.AtLeast(domain.RoleManager) {
		return nil, ErrPermissionDenied
	}
	if delta == 0 {
		return nil, ErrInvalidAdjustment
	}
	user, err := s.userRepo.GetByUtorid(ctx, utorid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	related, err := s.txnRepo.FindByID(ctx, relatedTxnID)
	if err != nil {
		return nil, err
	}
	if related == nil {
		return nil, ErrTransactionNotFound
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn = &domain.Transaction{
			UserID:      user.ID,
			Type:        domain.TypeAdjustment,
			Points:      delta,
			Status:      domain.StatusApproved,
			RelatedID:   &relatedTxnID,
			ProcessedBy: &managerID,
			Remark:      remark,
		}
		if _, err := s.txnRepo.Save(ctx, txn); err != nil {
			return err
		}
		_, err := s.ledger.Adjust(ctx, user.ID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransaction(string(domain.TypeAdjustment), string(domain.StatusApproved), delta)
	return txn, nil
}

// CreateRedemption files a user's request to spend points. Nothing leaves
// the balance until a cashier processes the request.
func (s *Service) CreateRedemption(ctx context.Context, userID int, amount int, remark string) (txn *domain.Transaction, err error) {
	defer observe("create_redemption", time.Now(), &err)

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Verified {
		return nil, ErrUnverifiedUser
	}
	if user.Points < amount {
		return nil, ErrInsufficientBalance
	}

	txn = &domain.Transaction{
		UserID: userID,
		Type:   domain.TypeRedemption,
		Points: -amount,
		Status: domain.StatusPending,
		Remark: remark,
	}
	if _, err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, err
	}
	metrics.RecordTransaction(string(domain.TypeRedemption), string(domain.StatusPending), -amount)
	return txn, nil
}

// ProcessRedemption completes a pending redemption: the cashier is stamped
// on the row, the points come off the balance, and the transaction is
// approved. A transaction can be processed at most once.
func (s *Service) ProcessRedemption(ctx context.Context, cashierID int, transactionID int) (txn *domain.Transaction, err error) {
	defer observe("process_redemption", time.Now(), &err)

	cashier, err := s.userRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Role.AtLeast(domain.RoleCashier) {
		return nil, ErrPermissionDenied
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn, err = s.txnRepo.FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return ErrTransactionNotFound
		}
		if txn.Type != domain.TypeRedemption {
			return ErrWrongTransactionType
		}
		if txn.ProcessedBy != nil {
			return ErrAlreadyProcessed
		}
		if _, err := s.ledger.Debit(ctx, txn.UserID, -txn.Points); err != nil {
			return err
		}
		if err := s.txnRepo.MarkProcessed(ctx, transactionID, cashierID, domain.StatusApproved); err != nil {
			return err
		}
		txn.ProcessedBy = &cashierID
		txn.Status = domain.StatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(string(domain.TypeRedemption), string(domain.StatusApproved)).Inc()
	return txn, nil
}

// TransferResult names the transfer record and its two mirrored ledger
// entries.
type TransferResult struct {
	TransferID    int
	SenderTxnID   int
	ReceiverTxnID int
	Amount        int
}

// CreateTransfer moves points between two users: one transfer record, two
// mirrored transactions, two balance updates, all or nothing.
func (s *Service) CreateTransfer(ctx context.Context, senderID int, receiverID int, amount int, remark string) (res *TransferResult, err error) {
	defer observe("create_transfer", time.Now(), &err)

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}
	if !sender.Verified {
		return nil, ErrUnverifiedUser
	}
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}

	var transfer *domain.Transfer
	var senderTxn, receiverTxn *domain.Transaction
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		// Debit locks and re-reads the sender row, so a racing transfer
		// cannot spend the same points twice.
		if _, err := s.ledger.Debit(ctx, senderID, amount); err != nil {
			return err
		}
		if _, err := s.ledger.Credit(ctx, receiverID, amount); err != nil {
			return err
		}

		transfer = &domain.Transfer{SenderID: senderID, ReceiverID: receiverID, Points: amount}
		if _, err := s.transferRepo.Save(ctx, transfer); err != nil {
			return err
		}

		senderTxn = &domain.Transaction{
			UserID:    senderID,
			Type:      domain.TypeTransfer,
			Points:    -amount,
			Status:    domain.StatusApproved,
			RelatedID: &receiverID,
			Remark:    remark,
		}
		if _, err := s.txnRepo.Save(ctx, senderTxn); err != nil {
			return err
		}
		receiverTxn = &domain.Transaction{
			UserID:    receiverID,
			Type:      domain.TypeTransfer,
			Points:    amount,
			Status:    domain.StatusApproved,
			RelatedID: &senderID,
			Remark:    remark,
		}
		if _, err := s.txnRepo.Save(ctx, receiverTxn); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransaction(string(domain.TypeTransfer), string(domain.StatusApproved), amount)
	zap.L().Info("transfer completed",
		zap.Int("transfer_id", transfer.ID),
		zap.Int("sender_id", senderID),
		zap.Int("receiver_id", receiverID),
		zap.Int("amount", amount))
	return &TransferResult{
		TransferID:    transfer.ID,
		SenderTxnID:   senderTxn.ID,
		ReceiverTxnID: receiverTxn.ID,
		Amount:        amount,
	}, nil
}

// SuspiciousResult reports the transaction's new hold state and the owner's
// balance after reconciliation.
type SuspiciousResult struct {
	TransactionID int
	Held          bool
	NewBalance    int
}

// SetSuspicious drives the hold state machine. held->cleared applies the
// transaction's points to the balance; cleared->held backs them out.
// Setting the state it is already in is a no-op, so the apply/reverse pair
// runs exactly once per flip.
func (s *Service) SetSuspicious(ctx context.Context, transactionID int, suspicious bool) (res *SuspiciousResult, err error) {
	defer observe("set_suspicious", time.Now(), &err)

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn, err := s.txnRepo.FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return ErrTransactionNotFound
		}

		if txn.NeedsVerification == suspicious {
			user, err := s.userRepo.GetByID(ctx, txn.UserID)
			if err != nil {
				return err
			}
			res = &SuspiciousResult{TransactionID: transactionID, Held: suspicious, NewBalance: user.Points}
			return nil
		}

		var balance int
		var status domain.TransactionStatus
		if suspicious {
			status = domain.StatusPending
			balance, err = s.ledger.ReverseHold(ctx, txn.UserID, txn.Points)
		} else {
			status = domain.StatusApproved
			balance, err = s.ledger.ReleaseHold(ctx, txn.UserID, txn.Points)
		}
		if err != nil {
			return err
		}
		if err := s.txnRepo.SetNeedsVerification(ctx, transactionID, suspicious, status); err != nil {
			return err
		}

		zap.L().Info("transaction hold state changed",
			zap.Int("transaction_id", transactionID),
			zap.Bool("held", suspicious),
			zap.Int("new_balance", balance))
		res = &SuspiciousResult{TransactionID: transactionID, Held: suspicious, NewBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns one transaction.
func (s *Service) Get(ctx context.Context, transactionID int) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// ListByUser returns the user's transactions, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

func observe(op string, start time.Time, err *error) {
	status := "success"
	if *err != nil {
		status = "failure"
	}
	metrics.ObserveOperation(op, status, time.Since(start).Seconds())
}
