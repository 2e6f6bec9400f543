package middleware

import (
	"net/http"
	"strings"

	"cinema-chat/pkg/utils"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID reuses the caller's X-Request-Id or mints a new one
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, rid)

		ctx := utils.SetRequestIDContext(r.Context(), rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
