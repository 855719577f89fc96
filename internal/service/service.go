package service

import (
	"golang.org/x/time/rate"

	"github.com/haishi2/csc309-a3-sub000/internal/config"
	authhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/auth"
	eventhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/events"
	promotionhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/promotions"
	transactionhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/transactions"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
	"github.com/haishi2/csc309-a3-sub000/internal/repo"
	authservice "github.com/haishi2/csc309-a3-sub000/internal/service/authservice"
	eventservice "github.com/haishi2/csc309-a3-sub000/internal/service/eventservice"
	ledgerservice "github.com/haishi2/csc309-a3-sub000/internal/service/ledgerservice"
	promotionservice "github.com/haishi2/csc309-a3-sub000/internal/service/promotionservice"
	transactionservice "github.com/haishi2/csc309-a3-sub000/internal/service/transactionservice"
	pkgauth "github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/keyed"
)

type Services struct {
	AuthService        authhandlers.Service
	TransactionService transactionhandlers.Service
	EventService       eventhandlers.Service
	PromotionService   promotionhandlers.Service

	// ResetTokens is exposed so the application can run its janitor.
	ResetTokens *keyed.Store[int]
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager) *Services {
	ledger := ledgerservice.New(repo.UserRepo)
	promotionService := promotionservice.New(repo.PromotionRepo, repo.UserRepo)
	transactionService := transactionservice.New(
		repo.UserRepo, repo.TransactionRepo, repo.TransferRepo,
		promotionService, ledger, txManager,
	)
	eventService := eventservice.New(
		repo.EventRepo, repo.UserRepo, repo.TransactionRepo, ledger, txManager,
	)

	resetTokens := keyed.NewStore[int](cfg.ResetTokenTTL)
	loginLimiter := keyed.NewLimiter(rate.Limit(cfg.LoginRatePerSec), cfg.LoginBurst)
	authService := authservice.New(
		repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{},
		resetTokens, loginLimiter,
	)

	return &Services{
		AuthService:        authService,
		TransactionService: transactionService,
		EventService:       eventService,
		PromotionService:   promotionService,
		ResetTokens:        resetTokens,
	}
}
