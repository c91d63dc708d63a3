package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
)

const loginFailed = "Usuário ou senha inválidos"

// AuthHandler serves the login screen and signs users in and out
type AuthHandler struct {
	pages
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, renderer *views.Renderer, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		pages: pages{views: renderer, sessions: sessions, logger: logger},
		auth:  auth,
	}
}

type loginData struct {
	Login string
	Error string
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Current(r); err == nil {
		redirect(w, r, "/mesas")
		return
	}
	h.showLogin(w, r, http.StatusOK, loginData{})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	login := strings.TrimSpace(r.PostFormValue("usuario"))

	resp, err := h.auth.Login(r.Context(), login, r.PostFormValue("senha"))
	if err != nil {
		data := loginData{Login: login, Error: loginFailed}
		var inputErr *service.InputError
		switch {
		case errors.As(err, &inputErr):
			data.Error = inputErr.Message
		default:
			h.logger.Info("login rejected", "login", login, "error", err)
			data.Error = backend.MessageOf(err, loginFailed)
		}
		h.showLogin(w, r, http.StatusUnauthorized, data)
		return
	}

	s, err := h.sessions.Start(w, r, login, *resp)
	if err != nil {
		h.logger.Error("failed to start session", "error", err)
		h.showLogin(w, r, http.StatusInternalServerError, loginData{Login: login, Error: loginFailed})
		return
	}

	h.logger.Info("user signed in", "login", s.Login, "role", s.Role)
	redirect(w, r, "/mesas")
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.logger.Warn("failed to clear session", "error", err)
	}
	redirect(w, r, "/login")
}

func (h *AuthHandler) showLogin(w http.ResponseWriter, r *http.Request, status int, data loginData) {
	h.write(w, status, "login", views.Page{Title: "Login", Data: data})
}
