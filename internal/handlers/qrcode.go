package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/bar-comandas/web/internal/service"
	"github.com/go-chi/chi/v5"
)

// NewQRCodeProxy forwards GET /qrcode/mesa/{tabId} to the API so pages can
// embed the customer QR image from this origin.
func NewQRCodeProxy(target *url.URL, logger *slog.Logger) http.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Host = target.Host
		req.Header.Del("Cookie")
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		logger.Error("qr code proxy failed", "path", req.URL.Path, "target", target.String(), "error", err)
		writeJSONError(w, http.StatusBadGateway, msgBackendDown, logger)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.ParseTabID(chi.URLParam(r, "tabId")); err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidTab, logger)
			return
		}
		proxy.ServeHTTP(w, r)
	}
}
