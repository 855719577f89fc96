package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/dto"
	authservice "github.com/haishi2/csc309-a3-sub000/internal/service/authservice"
	pkgauth "github.com/haishi2/csc309-a3-sub000/pkg/auth"
	"github.com/haishi2/csc309-a3-sub000/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, utorid, name, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, utorid, password, remoteAddr string) (*domain.User, error)
	GenerateToken(userID int, role domain.Role) (string, error)
	RequestPasswordReset(ctx context.Context, utorid string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a new account under a utorid
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"User already exists"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.authService.Register(r.Context(), req.Utorid, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrUserExists) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, pkgauth.ErrPasswordTooShort) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	token, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusCreated, dto.TokenResponseDTO{Token: token})
}

// Login godoc
//
//	@Summary	Authenticate a user and issue a JWT
//	@Tags		Auth
//	@Router		/api/auth/tokens [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.authService.Authenticate(r.Context(), req.Utorid, req.Password, r.RemoteAddr)
	if err != nil {
		if errors.Is(err, authservice.ErrTooManyRequests) {
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{Token: token})
}

// RequestReset issues a password-reset token. The response is identical
// whether or not the utorid exists; delivery happens out of band.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := h.authService.RequestPasswordReset(r.Context(), req.Utorid); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, utils.Response{Message: "reset requested"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req dto.ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.authService.ResetPassword(r.Context(), token, req.Password); err != nil {
		if errors.Is(err, authservice.ErrInvalidResetToken) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, pkgauth.ErrPasswordTooShort) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "password updated"})
}
