package rest

import (
	"context"
	"net/http"
	"strings"

	"supermarket-checkout/pkg/model"
)

type SessionInfo struct {
	CustomerId string
}

type TokenDb interface {
	VerifyToken(ctx context.Context, token string) (SessionInfo, error)
	Close(ctx context.Context)
}

func TokenDbFactory(_ string) (TokenDb, error) {
	return CreateFakeDummyTokenDb(), nil
}

type contextKey struct{}

var customerIdKey = contextKey{}

// withAuth rejects requests without a valid bearer token and stores the
// authenticated customer id on the request context.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sessionInfo, err := s.tokenDb.VerifyToken(r.Context(), token)
		if err != nil {
			s.logger.Warn().Err(err).Msg("invalid token")
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), customerIdKey, model.CustomerId(sessionInfo.CustomerId))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func customerIdFrom(ctx context.Context) (model.CustomerId, bool) {
	customerId, ok := ctx.Value(customerIdKey).(model.CustomerId)
	return customerId, ok
}
