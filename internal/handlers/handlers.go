package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	authhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/auth"
	eventhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/events"
	promotionhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/promotions"
	transactionhandlers "github.com/haishi2/csc309-a3-sub000/internal/handlers/transactions"
	"github.com/haishi2/csc309-a3-sub000/internal/service"
	"github.com/haishi2/csc309-a3-sub000/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	RequestReset(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	CreatePurchase(w http.ResponseWriter, r *http.Request)
	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	CreateRedemption(w http.ResponseWriter, r *http.Request)
	ProcessRedemption(w http.ResponseWriter, r *http.Request)
	CreateTransfer(w http.ResponseWriter, r *http.Request)
	SetSuspicious(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type EventHandler interface {
	AwardPoints(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AddGuest(w http.ResponseWriter, r *http.Request)
	AddOrganizer(w http.ResponseWriter, r *http.Request)
}

type PromotionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	TransactionHandler TransactionHandler
	EventHandler       EventHandler
	PromotionHandler   PromotionHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		TransactionHandler: transactionhandlers.New(s.TransactionService),
		EventHandler:       eventhandlers.New(s.EventService),
		PromotionHandler:   promotionhandlers.New(s.PromotionService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/tokens", h.AuthHandler.Login)
			r.Post("/resets", h.AuthHandler.RequestReset)
			r.Post("/resets/{token}", h.AuthHandler.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/transactions", h.TransactionHandler.ListMine)
				r.Post("/transactions", h.TransactionHandler.CreateRedemption)
			})
			r.Post("/users/{userId}/transactions", h.TransactionHandler.CreateTransfer)

			r.Get("/promotions", h.PromotionHandler.ListActive)

			r.Route("/events/{eventId}", func(r chi.Router) {
				r.Get("/", h.EventHandler.Get)
				r.Post("/guests", h.EventHandler.AddGuest)
				// organizer-or-manager is checked in the service,
				// since it depends on the specific event
				r.Post("/transactions", h.EventHandler.AwardPoints)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleCashier))
				r.Post("/transactions", h.TransactionHandler.CreatePurchase)
				r.Patch("/transactions/{transactionId}/processed", h.TransactionHandler.ProcessRedemption)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleManager))
				r.Get("/transactions/{transactionId}", h.TransactionHandler.Get)
				r.Post("/transactions/adjustments", h.TransactionHandler.CreateAdjustment)
				r.Patch("/transactions/{transactionId}/suspicious", h.TransactionHandler.SetSuspicious)
				r.Post("/promotions", h.PromotionHandler.Create)
				r.Delete("/promotions/{promotionId}", h.PromotionHandler.Delete)
				r.Post("/events", h.EventHandler.Create)
				r.Post("/events/{eventId}/organizers", h.EventHandler.AddOrganizer)
			})
		})
	})

	return r
}
