package middleware

import (
	"net/http"

	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
)

// Recover turns a handler panic into the chat error reply
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					rid, _ := utils.GetRequestIDFromContext(r.Context())
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("request_id", rid),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{
						"reply": "Sorry, something went wrong. Please try again later.",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
