package task

import "fmt"

type (
	// ValidationError carries the reason a todo payload was rejected.
	ValidationError struct {
		Reason string
	}
)

func (v ValidationError) Error() string {
	return fmt.Sprintf("invalid todo, cause %v", v.Reason)
}
