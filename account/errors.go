package account

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken marks tokens that fail signature or shape
	// verification. The store is never consulted for those.
	ErrInvalidToken = errors.New("account: token is malformed or improperly signed")

	// ErrTokenNotRecognized marks structurally valid tokens that are
	// absent from the owning user's live token list, which covers both
	// revoked and never-issued tokens.
	ErrTokenNotRecognized = errors.New("account: token is not recognized")

	// ErrInvalidCredentials collapses unknown-email and wrong-password
	// failures into a single answer.
	ErrInvalidCredentials = errors.New("account: invalid email or password")
)

type (
	// ValidationError carries the reason a registration payload was
	// rejected before touching the store.
	ValidationError struct {
		Reason string
	}
)

func (v ValidationError) Error() string {
	return fmt.Sprintf("invalid registration, cause %v", v.Reason)
}
