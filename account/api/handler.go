package api

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/internal/logutil"
	"github.com/raymondwu22/todo-api/store"
)

type (
	credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	publicUser struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
)

// Routes registers the user-facing account endpoints on the router.
func Routes(router *httprouter.Router, auth *account.Authenticator, realm *Realm) {
	router.Handler("POST", "/users", registerUser(auth))
	router.Handler("POST", "/users/login", login(auth))
	router.Handler("GET", "/users/me", realm.Protect(me()))
	router.Handler("DELETE", "/users/me/token", realm.Protect(logout(auth)))
}

func registerUser(auth *account.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		if !decodeBody(w, r, &body) {
			return
		}
		user, err := auth.Register(r.Context(), body.Email, body.Password)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		token, err := auth.IssueToken(r.Context(), user)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		w.Header().Set(TokenHeader, token)
		writeJSON(w, http.StatusOK, asPublicUser(user))
	})
}

func login(auth *account.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		if !decodeBody(w, r, &body) {
			return
		}
		user, err := auth.VerifyCredentials(r.Context(), body.Email, body.Password)
		if err != nil {
			// no hint about which half of the pair was wrong
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		token, err := auth.IssueToken(r.Context(), user)
		if err != nil {
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Unable to issue token after successful login")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set(TokenHeader, token)
		writeJSON(w, http.StatusOK, asPublicUser(user))
	})
}

func me() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFrom(r.Context())
		writeJSON(w, http.StatusOK, asPublicUser(user))
	})
}

func logout(auth *account.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFrom(r.Context())
		token, _ := TokenFrom(r.Context())
		if err := auth.RevokeToken(r.Context(), user, token); err != nil {
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Unable to revoke token")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func asPublicUser(u *store.User) publicUser {
	return publicUser{ID: u.ID, Email: u.Email}
}

func errorBody(err error) interface{} {
	return map[string]string{"error": err.Error()}
}

// decodeBody parses the request body into out, rejecting unknown
// fields instead of silently dropping them.
func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	buf, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf)
}
