package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bar-comandas/web/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0.00"},
		{"12.5", "R$ 12.50"},
		{"1234.567", "R$ 1234.57"},
		{"-3", "R$ -3.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in)), "in=%s", tt.in)
	}
}

func TestNew_ParsesEveryScreen(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{"login", "mesas", "comanda", "cardapio", "cliente", "admin", "erro"} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = r.Render(w, http.StatusNotFound, "erro", Page{
		Title:   "Oops",
		Flashes: []session.Flash{{Kind: session.FlashError, Message: "<b>falhou</b>"}},
		Data:    struct{ Message, Back string }{"Comanda não encontrada", "/mesas"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Oops · Sistema de Bar</title>")
	assert.Contains(t, body, `<div class="alert error" role="alert">&lt;b&gt;falhou&lt;/b&gt;</div>`)
	assert.Contains(t, body, "Comanda não encontrada")
	assert.NotContains(t, body, `http-equiv="refresh"`)
}

func TestRender_Failures(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	assert.Error(t, r.Render(w, http.StatusOK, "nope", Page{}))

	// A template error leaves the response untouched
	w = httptest.NewRecorder()
	assert.Error(t, r.Render(w, http.StatusOK, "comanda", Page{Data: 42}))
	assert.Equal(t, 0, w.Body.Len())
	assert.False(t, strings.Contains(w.Header().Get("Content-Type"), "html"))
}
