package account

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/raymondwu22/todo-api/store"
)

// AccessAuth is the only access label issued today. Tokens carrying
// any other label never resolve to a user.
const AccessAuth = "auth"

type (
	// UserStore is the slice of the document store the authenticator
	// needs. *store.Store satisfies it, tests may swap in spies.
	UserStore interface {
		InsertUser(ctx context.Context, u *store.User) error
		FindUserByEmail(ctx context.Context, email string) (*store.User, error)
		FindUserByToken(ctx context.Context, id, access, token string) (*store.User, error)
		AppendToken(ctx context.Context, userID string, entry store.TokenEntry) error
		RemoveToken(ctx context.Context, userID, token string) error
	}

	// Authenticator owns credential checks and the full token
	// lifecycle: issue, verify, revoke. All collaborators are injected,
	// there is no package state beyond the payload validator.
	Authenticator struct {
		users UserStore
		codec *Codec
	}

	registration struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}
)

var validate = validator.New()

func NewAuthenticator(users UserStore, codec *Codec) *Authenticator {
	return &Authenticator{users: users, codec: codec}
}

// Register creates a new user with an empty token list. The email must
// look like an email and the password must have at least 6 characters
// before hashing; a duplicate email surfaces as store.DuplicateEmail.
func (a *Authenticator) Register(ctx context.Context, email, password string) (*store.User, error) {
	if err := validate.Struct(registration{Email: email, Password: password}); err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	digest, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &store.User{Email: email, PasswordHash: digest}
	if err := a.users.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyCredentials resolves an email/password pair to the matching
// user. Unknown emails and wrong passwords are deliberately
// indistinguishable to the caller.
func (a *Authenticator) VerifyCredentials(ctx context.Context, email, password string) (*store.User, error) {
	user, err := a.users.FindUserByEmail(ctx, email)
	var notFound store.NotFound
	if errors.As(err, &notFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if !checkPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a fresh token for the user and appends it to the
// user's live token list. The token is only valid once the append has
// been persisted; a store failure means no token was issued.
func (a *Authenticator) IssueToken(ctx context.Context, user *store.User) (string, error) {
	token, err := a.codec.Sign(user.ID, AccessAuth)
	if err != nil {
		return "", err
	}
	entry := store.TokenEntry{Access: AccessAuth, Token: token}
	if err := a.users.AppendToken(ctx, user.ID, entry); err != nil {
		return "", err
	}
	user.Tokens = append(user.Tokens, entry)
	return token, nil
}

// VerifyToken resolves a presented token to its owning user.
//
// The signature check runs first and fails closed without touching the
// store. Membership in the user's live token list is then the source
// of truth for liveness, because a revoked token still carries a
// perfectly valid signature.
func (a *Authenticator) VerifyToken(ctx context.Context, token string) (*store.User, error) {
	subject, access, err := a.codec.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindUserByToken(ctx, subject, access, token)
	var notFound store.NotFound
	if errors.As(err, &notFound) {
		return nil, ErrTokenNotRecognized
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// RevokeToken removes the exact token string from the user's live
// token list. Revoking a token that is already gone still succeeds.
func (a *Authenticator) RevokeToken(ctx context.Context, user *store.User, token string) error {
	if err := a.users.RemoveToken(ctx, user.ID, token); err != nil {
		return err
	}
	kept := user.Tokens[:0]
	for _, entry := range user.Tokens {
		if entry.Token != token {
			kept = append(kept, entry)
		}
	}
	user.Tokens = kept
	return nil
}
