package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/race50/race50-service-go/log"
	"github.com/race50/race50-service-go/pkg/model"
	userRepos "github.com/race50/race50-service-go/pkg/repository/user"
)

type contextKey string

const userContextKey contextKey = "user"

// apiKeyAuth resolves the bearer token to a user. The surrounding
// platform issues the keys; this service only looks them up.
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := bearerToken(r)
		if apiKey == "" {
			s.writeError(w, http.StatusUnauthorized, "missing api key", nil)
			return
		}
		usr, err := userRepos.LoadByAPIKey(r.Context(), s.pool, apiKey)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid api key", nil)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, usr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUser(r *http.Request) *model.DbUser {
	usr, _ := r.Context().Value(userContextKey).(*model.DbUser)
	return usr
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Int("status", ww.status),
			log.Duration("duration", time.Since(start)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
