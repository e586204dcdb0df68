// Package fixtures loads the well-known data set used by tests and by
// the `store seed` command: two users (one with a live session) and a
// couple of todos.
package fixtures

import (
	"context"
	"fmt"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/store"
)

const (
	UserOneEmail    = "test@test.com"
	UserOnePassword = "userOnePass"
	UserTwoEmail    = "test123@test.com"
	UserTwoPassword = "userTwoPass"
)

type (
	// Data points at the seeded documents, so callers can address
	// them without re-querying the store.
	Data struct {
		UserOne      *store.User
		UserOneToken string
		UserTwo      *store.User
		Todos        []*store.Todo
	}
)

// Populate seeds the store through the same code paths the API uses,
// so password hashes and tokens are indistinguishable from real ones.
func Populate(ctx context.Context, st *store.Store, auth *account.Authenticator) (*Data, error) {
	userOne, err := auth.Register(ctx, UserOneEmail, UserOnePassword)
	if err != nil {
		return nil, fmt.Errorf("unable to seed first user, cause %w", err)
	}
	token, err := auth.IssueToken(ctx, userOne)
	if err != nil {
		return nil, fmt.Errorf("unable to seed session of first user, cause %w", err)
	}
	userTwo, err := auth.Register(ctx, UserTwoEmail, UserTwoPassword)
	if err != nil {
		return nil, fmt.Errorf("unable to seed second user, cause %w", err)
	}
	completedAt := int64(333)
	todos := []*store.Todo{
		{CreatorID: userOne.ID, Text: "First text"},
		{CreatorID: userTwo.ID, Text: "Second text", Completed: true, CompletedAt: &completedAt},
	}
	for _, todo := range todos {
		if err := st.InsertTodo(ctx, todo); err != nil {
			return nil, fmt.Errorf("unable to seed todos, cause %w", err)
		}
	}
	return &Data{
		UserOne:      userOne,
		UserOneToken: token,
		UserTwo:      userTwo,
		Todos:        todos,
	}, nil
}
