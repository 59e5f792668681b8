package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gymloop/accounts/internal/accounts/service"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/validate"
	"github.com/gymloop/accounts/pkg/httpx"
	"github.com/gymloop/accounts/pkg/slogx"
)

// AuthHandler handles the public signup and signin endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
	Store       store.Store
}

// HandleSignUp handles POST /v1/auth/signup
//
//	@Summary		Sign up
//	@Description	Registers a new USER account with its profile and returns a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		validate.SignUpInput	true	"Signup request"
//	@Success		201		{object}	AuthResponse			"access_token and profile"
//	@Failure		400		{object}	httpx.Error				"statusCode, message"
//	@Failure		429		{object}	httpx.Error				"statusCode, message"
//	@Router			/v1/auth/signup [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.SignUp(ctx, h.Store.Users(), in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	result, err := h.AuthService.SignUp(ctx, service.SignUpParams{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Password:  in.Password,
	})
	if err != nil {
		writeStoreError(w, log, err, "User not found")
		return
	}

	log.Info("user signed up", "username", in.Username)
	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{
		AccessToken: result.AccessToken,
		Profile:     toProfileResponse(result.Profile),
	})
}

// HandleSignIn handles POST /v1/auth/signin
//
//	@Summary		Sign in
//	@Description	Verifies a credential and returns a session token with the user's profile.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		validate.SignInInput	true	"Signin request"
//	@Success		200		{object}	AuthResponse			"access_token and profile"
//	@Failure		400		{object}	httpx.Error				"statusCode, message"
//	@Failure		401		{object}	httpx.Error				"statusCode, message"
//	@Failure		429		{object}	httpx.Error				"statusCode, message"
//	@Router			/v1/auth/signin [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in validate.SignInInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if v := validate.SignIn(ctx, h.Store.Users(), in); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	result, err := h.AuthService.SignIn(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeStoreError(w, log, err, "Profile not found")
		return
	}

	log.Info("user signed in", "username", in.Username)
	httpx.WriteJSON(w, http.StatusOK, AuthResponse{
		AccessToken: result.AccessToken,
		Profile:     toProfileResponse(result.Profile),
	})
}
