package controllers

import (
	"net/http"

	"github.com/rs/zerolog"

	"userbase/app/dto"
	"userbase/app/middleware"
	"userbase/app/services"
	"userbase/app/session"
	"userbase/app/validate"
)

type AuthController struct {
	Auth   *services.AuthService
	Cookie session.Config
	Logger zerolog.Logger
}

func NewAuthController(auth *services.AuthService, cookie session.Config, logger zerolog.Logger) *AuthController {
	return &AuthController{Auth: auth, Cookie: cookie, Logger: logger}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.AuthResponse{Message: "invalid request body"})
		return
	}
	if errs := validate.Register(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.AuthResponse{Message: "validation failed", Errors: errs})
		return
	}

	user, token, err := c.Auth.Register(r.Context(), req)
	if err != nil {
		status, msg := statusFor(err)
		logInternal(c.Logger, r, err, status)
		writeJSON(w, status, dto.AuthResponse{Message: msg})
		return
	}

	session.Write(w, token, c.Cookie)
	writeJSON(w, http.StatusCreated, dto.AuthResponse{Success: true, Message: "user registered", User: user})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.AuthResponse{Message: "invalid request body"})
		return
	}
	if errs := validate.Login(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.AuthResponse{Message: "validation failed", Errors: errs})
		return
	}

	user, token, err := c.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := statusFor(err)
		logInternal(c.Logger, r, err, status)
		writeJSON(w, status, dto.AuthResponse{Message: msg})
		return
	}

	session.Write(w, token, c.Cookie)
	writeJSON(w, http.StatusOK, dto.AuthResponse{Success: true, Message: "login successful", User: user})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, c.Cookie)
	writeJSON(w, http.StatusOK, dto.AuthResponse{Success: true, Message: "logged out"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, dto.AuthResponse{Message: "authentication required"})
		return
	}
	user, err := c.Auth.Me(r.Context(), claims.Email)
	if err != nil {
		status, msg := statusFor(err)
		logInternal(c.Logger, r, err, status)
		writeJSON(w, status, dto.AuthResponse{Message: msg})
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{Success: true, Message: "authenticated", User: user})
}
