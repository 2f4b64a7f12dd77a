package handler

import (
	"encoding/json"
	"errors"
	"go-recruit-api/common"
	"go-recruit-api/model"
	"go-recruit-api/service"
	"net/http"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns an access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "User credentials"
// @Success      200  {object}  model.TokenPair
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Invalid email or password"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	user, pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not process login", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":   user,
		"tokens": pair,
	})
	return nil
}

// Refresh godoc
// @Summary      Refresh the token pair
// @Description  Exchanges a valid refresh token for a new access/refresh pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body model.RefreshRequest true "Refresh token"
// @Success      200  {object}  model.TokenPair
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Malformed, expired, revoked, or wrong-kind token"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token has expired", err)
		case errors.Is(err, common.ErrTokenRevoked):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token has been revoked", err)
		case errors.Is(err, common.ErrWrongTokenKind):
			return common.NewAppError(http.StatusUnauthorized, "An access token cannot be used to refresh", err)
		case errors.Is(err, common.ErrTokenMalformed):
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh tokens", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented access and refresh tokens and closes the user's live channels.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        token body model.LogoutRequest true "Refresh token to revoke"
// @Success      204
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LogoutRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	claims, ok := r.Context().Value(ClaimsKey).(*model.AppClaims)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid claims in token", nil)
	}
	rawToken, _ := r.Context().Value(RawTokenKey).(string)

	if err := h.service.Logout(r.Context(), claims, rawToken, req.RefreshToken); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not process logout", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
