// internal/app/features/auth/handler.go

// Package auth implements the account endpoints: signup with email OTP
// confirmation, credential login, and refresh-token exchange.
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	pendingstore "github.com/potluckhq/potluck/internal/app/store/pending"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	sysauth "github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/mailer"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/app/system/token"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type Handler struct {
	Log      *zap.Logger
	ErrLog   *httpapi.ErrorLogger
	Users    *userstore.Store
	Pending  *pendingstore.Store
	Tokens   *token.Manager
	Mail     mailer.Sender
	SiteName string
}

func NewHandler(logger *zap.Logger, users *userstore.Store, pending *pendingstore.Store, tokens *token.Manager, mail mailer.Sender, siteName string) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   httpapi.NewErrorLogger(logger),
		Users:    users,
		Pending:  pending,
		Tokens:   tokens,
		Mail:     mail,
		SiteName: siteName,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	EmailSent bool `json:"emailSent"`
}

// ServeSignup handles POST /api/v1/auth/signup.
//
// A repeat signup for the same email replaces the pending record and
// sends a fresh code, so an earlier failed mail delivery never strands
// the registration. EmailSent reports delivery; the pending record is
// kept either way.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}

	email := normalize.Email(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		h.ErrLog.BadRequest(w, r, "A valid email address is required.", err)
		return
	}
	if len(req.Password) < minPasswordLen {
		h.ErrLog.BadRequest(w, r, "Password must be at least 8 characters.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Already-confirmed accounts cannot re-register.
	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		h.ErrLog.Conflict(w, r, "An account with this email already exists.")
		return
	} else if !errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.Internal(w, r, "signup: look up account", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "signup: hash password", err)
		return
	}

	code, err := h.Pending.Upsert(ctx, req.Name, email, string(hash))
	if err != nil {
		h.ErrLog.Internal(w, r, "signup: persist pending registration", err)
		return
	}

	msg := mailer.BuildOTPEmail(mailer.OTPEmailData{SiteName: h.SiteName, Code: code})
	msg.To = email

	mailCtx, mailCancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer mailCancel()

	sent := true
	if err := h.Mail.Send(mailCtx, msg); err != nil {
		// The pending record stays; a repeat signup re-sends.
		h.Log.Error("signup: send otp mail failed", zap.String("email", email), zap.Error(err))
		sent = false
	}

	httpapi.WriteJSON(w, http.StatusOK, signupResponse{EmailSent: sent})
}

type confirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type confirmResponse struct {
	AccountCreated bool `json:"accountCreated"`
}

// ServeConfirm handles POST /api/v1/auth/confirmAccount.
//
// The code comparison and the pending-record removal are a single
// atomic operation in the store, so two concurrent confirms for the
// same email cannot both create an account.
func (h *Handler) ServeConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		h.ErrLog.BadRequest(w, r, "Confirmation code is required.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Pending.ConfirmAndDelete(ctx, req.Email, strings.TrimSpace(req.Code))
	switch {
	case errors.Is(err, pendingstore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "No pending registration for this email.")
		return
	case errors.Is(err, pendingstore.ErrInvalidCode):
		httpapi.WriteError(w, r, http.StatusBadRequest, httpapi.CodeInvalidOTP, "Invalid confirmation code.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "confirm: consume pending registration", err)
		return
	}

	_, err = h.Users.Create(ctx, models.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         models.RoleUser,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.ErrLog.Conflict(w, r, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "confirm: create account", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, confirmResponse{AccountCreated: true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ServeLogin handles POST /api/v1/auth/login. Unknown emails and wrong
// passwords get the same response so the endpoint cannot be used to
// probe which addresses have accounts.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	const badCreds = "Invalid email or password."

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		httpapi.WriteError(w, r, http.StatusUnauthorized, httpapi.CodeInvalidCredential, badCreds)
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "login: look up account", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpapi.WriteError(w, r, http.StatusUnauthorized, httpapi.CodeInvalidCredential, badCreds)
		return
	}

	access, err := h.Tokens.IssueAccess(user.Email, user.Role)
	if err != nil {
		h.ErrLog.Internal(w, r, "login: issue access token", err)
		return
	}
	refresh, err := h.Tokens.IssueRefresh(user.Email)
	if err != nil {
		h.ErrLog.Internal(w, r, "login: issue refresh token", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, tokenPairResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// ServeRefresh handles POST /api/v1/auth/refresh. The refresh token
// arrives as a bearer token. Every failure is an explicit 401 with a
// structured body; nothing is silently dropped.
func (h *Handler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	raw := sysauth.BearerToken(r)
	if raw == "" {
		h.ErrLog.Unauthorized(w, r, "A refresh token is required.")
		return
	}

	claims, err := h.Tokens.Parse(raw)
	if err != nil {
		h.ErrLog.Unauthorized(w, r, "Invalid or expired refresh token.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, userstore.ErrNotFound) {
		// The account behind the token is gone; 401, not 500.
		h.ErrLog.Unauthorized(w, r, "Invalid or expired refresh token.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "refresh: look up account", err)
		return
	}

	access, err := h.Tokens.IssueAccess(user.Email, user.Role)
	if err != nil {
		h.ErrLog.Internal(w, r, "refresh: issue access token", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  access,
		RefreshToken: raw,
	})
}
