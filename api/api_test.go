package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/api"
	"github.com/raymondwu22/todo-api/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

// TestSessionRoundtrip walks one user through the whole surface:
// register, fail a login, ask who they are, log out, and watch the
// old token die.
func TestSessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	st, cleanup := testutil.AcquireStore(ctx, t)
	defer cleanup()
	auth := account.NewAuthenticator(st, account.NewCodec([]byte("abc123")))
	handler := api.AsHandler(st, auth)

	result := apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$._id")).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		Assert(jsonpath.NotPresent("$.password")).
		HeaderPresent("x-auth").
		End()

	token := result.Response.Header.Get("x-auth")
	if token == "" {
		t.Fatal("registration must hand out a session token")
	}
	var registered struct {
		ID string `json:"_id"`
	}
	result.JSON(&registered)

	apitest.Handler(handler).
		Post("/users/login").
		JSON(`{"email":"a@x.com","password":"wrongpass"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.Handler(handler).
		Get("/users/me").
		Header("x-auth", token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$._id", registered.ID)).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		End()

	apitest.Handler(handler).
		Delete("/users/me/token").
		Header("x-auth", token).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(handler).
		Get("/users/me").
		Header("x-auth", token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{}`).
		End()
}
