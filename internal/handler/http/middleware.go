package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/storefront/internal/notify"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CollectNotifications attaches a notify.Collector to every request so that
// notices raised by the stores can be returned in the response envelope.
func CollectNotifications(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := notify.WithCollector(r.Context(), notify.NewCollector())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeData writes data in the standard envelope together with any
// notifications collected while handling r.
func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	resp := httputil.Response{Data: data}
	if c := notify.CollectorFromContext(r.Context()); c != nil {
		if notices := c.Notices(); len(notices) > 0 {
			resp.Notifications = notices
		}
	}
	httputil.WriteJSON(w, status, resp)
}

// writeRequestError answers a failed decode or validation: field errors get
// VALIDATION_ERROR, anything else goes through httputil.WriteError.
func writeRequestError(w http.ResponseWriter, r *http.Request, err error, l *slog.Logger) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, err, l)
}
