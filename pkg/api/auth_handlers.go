package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/marketbay/marketbay/pkg/accounts"
	"github.com/marketbay/marketbay/pkg/httputil"
	"github.com/marketbay/marketbay/pkg/middleware"
)

// registerResponse is the 201 payload for /auth/register
type registerResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    accounts.UserInfo `json:"user"`
}

// loginResponse is the 200 payload for /auth/login
type loginResponse struct {
	Token   string            `json:"token"`
	Message string            `json:"message"`
	User    accounts.UserInfo `json:"user"`
}

// profileResponse is the 200 payload for /auth/profile
type profileResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    accounts.ProfileInfo `json:"data"`
}

// register handles POST /auth/register
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req accounts.RegisterRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, err := s.accounts.Register(r.Context(), req)
	if err != nil {
		s.writeRegisterError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, registerResponse{
		Success: true,
		Message: "User registered successfully",
		User:    *user,
	})
}

func (s *Server) writeRegisterError(w http.ResponseWriter, err error) {
	var verr *accounts.ValidationError
	var werr *accounts.WeakPasswordError

	switch {
	case errors.As(err, &verr):
		httputil.WriteFieldErrors(w, http.StatusBadRequest, "Invalid registration data", verr.Fields)
	case errors.As(err, &werr):
		httputil.WriteFieldErrors(w, http.StatusBadRequest, "Password does not meet security requirements",
			map[string]string{"password": strings.Join(werr.Violations, "; ")})
	case errors.Is(err, accounts.ErrDuplicateDocument):
		httputil.WriteErrorMessage(w, http.StatusConflict, "Document already exists")
	case errors.Is(err, accounts.ErrDuplicateEmail):
		httputil.WriteErrorMessage(w, http.StatusConflict, "Email is already registered")
	default:
		s.log.WithError(err).Error("registration failed")
		httputil.WriteInternalError(w)
	}
}

// login handles POST /auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req accounts.LoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	token, user, err := s.accounts.Login(r.Context(), req)
	if err != nil {
		s.writeLoginError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Token:   token,
		Message: "Login successful",
		User:    *user,
	})
}

func (s *Server) writeLoginError(w http.ResponseWriter, err error) {
	var verr *accounts.ValidationError

	switch {
	case errors.As(err, &verr):
		httputil.WriteFieldErrors(w, http.StatusBadRequest, "document and password are required", verr.Fields)
	case errors.Is(err, accounts.ErrInvalidCredentials):
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, accounts.ErrAccountDeactivated):
		httputil.WriteErrorMessage(w, http.StatusForbidden, "Account is deactivated")
	default:
		s.log.WithError(err).Error("login failed")
		httputil.WriteInternalError(w)
	}
}

// profile handles GET /auth/profile. The authentication guard has already
// attached the verified claims.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	data, err := s.accounts.Profile(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, accounts.ErrIdentityNotFound) {
			httputil.WriteErrorMessage(w, http.StatusNotFound, "User or role not found")
			return
		}
		s.log.WithError(err).Error("profile retrieval failed")
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profileResponse{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    *data,
	})
}

// updateProfile handles PUT /auth/profile
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	var req accounts.UpdateProfileRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	data, err := s.accounts.UpdateProfile(r.Context(), claims.AccountID, req)
	if err != nil {
		var verr *accounts.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteFieldErrors(w, http.StatusBadRequest, "Invalid profile data", verr.Fields)
		case errors.Is(err, accounts.ErrDuplicateEmail):
			httputil.WriteErrorMessage(w, http.StatusConflict, "Email is already registered")
		case errors.Is(err, accounts.ErrIdentityNotFound):
			httputil.WriteErrorMessage(w, http.StatusNotFound, "User or role not found")
		default:
			s.log.WithError(err).Error("profile update failed")
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profileResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    *data,
	})
}
