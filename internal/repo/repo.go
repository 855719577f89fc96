package repo

import (
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
	eventrepo "github.com/haishi2/csc309-a3-sub000/internal/repo/event-repo"
	promotionrepo "github.com/haishi2/csc309-a3-sub000/internal/repo/promotion-repo"
	transactionrepo "github.com/haishi2/csc309-a3-sub000/internal/repo/transaction-repo"
	transferrepo "github.com/haishi2/csc309-a3-sub000/internal/repo/transfer-repo"
	userrepo "github.com/haishi2/csc309-a3-sub000/internal/repo/user-repo"
)

// Repositories carries the concrete repos. Services consume them through
// their own narrow interfaces.
type Repositories struct {
	UserRepo        *userrepo.Repository
	TransactionRepo *transactionrepo.Repository
	PromotionRepo   *promotionrepo.Repository
	EventRepo       *eventrepo.Repository
	TransferRepo    *transferrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		PromotionRepo:   promotionrepo.New(conn),
		EventRepo:       eventrepo.New(conn),
		TransferRepo:    transferrepo.New(conn),
	}
}
