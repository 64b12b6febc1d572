package mock

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5/middleware"
)

// HeaderUserID carries the caller identity. The mock trusts it as is.
const HeaderUserID = "x-user-id"

const missingAuthDetail = "Missing or invalid authentication"

type actorKey struct{}

func withActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func actorFromContext(ctx context.Context) (string, huma.StatusError) {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id, nil
	}
	return "", newAPIError(http.StatusUnauthorized, missingAuthDetail)
}

func isPublicPath(p string) bool {
	switch strings.TrimRight(p, "/") {
	case "", "/health", "/openapi.json", "/docs":
		return true
	}
	return false
}

func newIdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if isPublicPath(req.URL.Path) {
				next.ServeHTTP(w, req)
				return
			}
			actorID := strings.TrimSpace(req.Header.Get(HeaderUserID))
			if actorID == "" {
				respondStatusError(w, newAPIError(http.StatusUnauthorized, missingAuthDetail))
				return
			}
			next.ServeHTTP(w, req.WithContext(withActor(req.Context(), actorID)))
		})
	}
}

func newRequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Printf("mock: %s %s %d %s (actor_id=%s)", req.Method, req.URL.Path, status, time.Since(start).Round(time.Microsecond), req.Header.Get(HeaderUserID))
		})
	}
}

func respondStatusError(w http.ResponseWriter, err huma.StatusError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.GetStatus())
	_ = json.NewEncoder(w).Encode(err)
}
