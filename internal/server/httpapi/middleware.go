package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/logging"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	memberKey
	tokenKey
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or assigns a fresh uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequestLogging logs method, path, status, size and duration of every request.
func WithRequestLogging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// Authenticate requires "Authorization: Token <key>" naming a live credential.
// The member and the raw key are put on the request context.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, detail := tokenFromHeader(r.Header.Get(common.AuthorizationHeaderName))
		if detail != "" {
			h.unauthorized(w, r, detail)
			return
		}

		member, err := h.members.Authenticate(r.Context(), key)
		if err != nil {
			if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
				h.unauthorized(w, r, "Invalid token.")
				return
			}
			h.writeInternal(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, member)
		ctx = context.WithValue(ctx, tokenKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromHeader extracts the key or returns the detail to report.
func tokenFromHeader(header string) (string, string) {
	parts := strings.Fields(header)
	if len(parts) == 0 || parts[0] != common.TokenScheme {
		return "", "Authentication credentials were not provided."
	}
	switch len(parts) {
	case 1:
		return "", "Invalid token header. No credentials provided."
	case 2:
		return parts[1], ""
	default:
		return "", "Invalid token header. Token string should not contain spaces."
	}
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", common.TokenScheme)
	h.writeDetail(w, r, http.StatusUnauthorized, detail)
}

// MemberFromContext returns the authenticated member, or nil.
func MemberFromContext(ctx context.Context) *models.Member {
	m, _ := ctx.Value(memberKey).(*models.Member)
	return m
}

func tokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}
