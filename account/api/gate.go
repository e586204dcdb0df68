package api

import (
	"errors"
	"net/http"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/internal/logutil"
	"github.com/raymondwu22/todo-api/store"
)

// TokenHeader is the request header that carries the session token.
const TokenHeader = "x-auth"

type (
	// Realm guards handlers that require an authenticated user.
	Realm struct {
		auth *account.Authenticator
	}
)

func NewRealm(auth *account.Authenticator) *Realm {
	return &Realm{auth: auth}
}

// Protect wraps sensitive so it only runs for requests presenting a
// live token in the x-auth header. Everything else gets a 401 with an
// empty JSON object, no detail about why.
func (s *Realm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token, ok := s.resolve(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, struct{}{})
			return
		}
		sensitive.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user, token)))
	})
}

func (s *Realm) resolve(r *http.Request) (*store.User, string, bool) {
	ctx := r.Context()
	token := r.Header.Get(TokenHeader)
	if token == "" {
		return nil, "", false
	}
	user, err := s.auth.VerifyToken(ctx, token)
	switch {
	case errors.Is(err, account.ErrInvalidToken), errors.Is(err, account.ErrTokenNotRecognized):
		return nil, "", false
	case err != nil:
		log := logutil.GetOrDefault(ctx)
		log.Error().Err(err).Msg("Unexpected error while resolving token to a user")
		return nil, "", false
	}
	return user, token, true
}
