package store

import "fmt"

type (
	// NotFound reports a lookup that matched no document.
	NotFound struct {
		Kind string
		Ref  string
	}

	// DuplicateEmail reports a user insert that violated the unique
	// email constraint.
	DuplicateEmail struct {
		Email string
	}
)

func (n NotFound) Error() string {
	return fmt.Sprintf("%v %v not found", n.Kind, n.Ref)
}

func (d DuplicateEmail) Error() string {
	return fmt.Sprintf("email %v is already registered", d.Email)
}
