package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
)

// pages holds what every HTML handler needs to answer a request
type pages struct {
	views    *views.Renderer
	sessions *session.Manager
	logger   *slog.Logger
}

// render writes a staff screen, consuming any pending flash messages.
func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	user, _ := session.FromContext(r.Context())
	page := views.Page{
		Title:   title,
		User:    user,
		Flashes: p.sessions.Flashes(w, r),
		Data:    data,
	}
	p.write(w, status, name, page)
}

func (p *pages) write(w http.ResponseWriter, status int, name string, page views.Page) {
	if err := p.views.Render(w, status, name, page); err != nil {
		p.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// renderError shows a standalone message with a link back.
func (p *pages) renderError(w http.ResponseWriter, r *http.Request, status int, message, back string) {
	p.render(w, r, status, "erro", message, errorData{Message: message, Back: back})
}

type errorData struct {
	Message string
	Back    string
}

func (p *pages) success(w http.ResponseWriter, r *http.Request, message, to string) {
	p.sessions.AddFlash(w, r, session.Flash{Kind: session.FlashSuccess, Message: message})
	redirect(w, r, to)
}

func (p *pages) failure(w http.ResponseWriter, r *http.Request, message, to string) {
	p.sessions.AddFlash(w, r, session.Flash{Kind: session.FlashError, Message: message})
	redirect(w, r, to)
}

// fail reports a failed action as a flash and redirects to the screen it came
// from. Validation problems show their own message, anything else fallback.
// A rejected token ends the session.
func (p *pages) fail(w http.ResponseWriter, r *http.Request, err error, fallback, to string) {
	if p.expired(w, r, err) {
		return
	}

	var inputErr *service.InputError
	if errors.As(err, &inputErr) {
		p.failure(w, r, inputErr.Message, to)
		return
	}

	p.logger.Warn("action failed", "path", r.URL.Path, "error", err)
	p.failure(w, r, fallback, to)
}

// expired signs the user out when the backend rejected their token. It
// reports whether the response has been written.
func (p *pages) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	p.logger.Info("backend rejected session token", "path", r.URL.Path)
	if derr := p.sessions.Destroy(w, r); derr != nil {
		p.logger.Warn("failed to clear session", "error", derr)
	}
	redirect(w, r, "/login")
	return true
}

// redirect answers a form post with 303 so the browser follows up with a GET.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
