package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/account/api"
	"github.com/raymondwu22/todo-api/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func acquireHandler(ctx context.Context, t *testing.T) (http.Handler, *account.Authenticator, func()) {
	st, cleanup := testutil.AcquireStore(ctx, t)
	auth := account.NewAuthenticator(st, account.NewCodec([]byte("abc123")))
	router := httprouter.New()
	api.Routes(router, auth, api.NewRealm(auth))
	return router, auth, cleanup
}

func TestRegisterEndpoint(t *testing.T) {
	ctx := context.Background()
	handler, _, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$._id")).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		Assert(jsonpath.NotPresent("$.password")).
		Assert(jsonpath.NotPresent("$.passwordHash")).
		HeaderPresent(api.TokenHeader).
		End()

	// same email twice leaves a single account behind
	apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"a@x.com","password":"secret2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Present("$.error")).
		End()
}

func TestRegisterEndpointRejectsBadPayloads(t *testing.T) {
	ctx := context.Background()
	handler, _, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"not-an-email","password":"secret1"}`).
		Expect(t).Status(http.StatusBadRequest).End()

	apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"a@x.com","password":"short"}`).
		Expect(t).Status(http.StatusBadRequest).End()

	// unknown fields are rejected, not silently dropped
	apitest.Handler(handler).
		Post("/users").
		JSON(`{"email":"a@x.com","password":"secret1","admin":true}`).
		Expect(t).Status(http.StatusBadRequest).End()
}

func TestLoginEndpoint(t *testing.T) {
	ctx := context.Background()
	handler, auth, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	if _, err := auth.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	apitest.Handler(handler).
		Post("/users/login").
		JSON(`{"email":"a@x.com","password":"secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		HeaderPresent(api.TokenHeader).
		End()

	apitest.Handler(handler).
		Post("/users/login").
		JSON(`{"email":"a@x.com","password":"wrongpass"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestMeAndLogoutEndpoints(t *testing.T) {
	ctx := context.Background()
	handler, auth, cleanup := acquireHandler(ctx, t)
	defer cleanup()

	user, err := auth.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	token, err := auth.IssueToken(ctx, user)
	if err != nil {
		t.Fatal(err)
	}

	apitest.Handler(handler).
		Get("/users/me").
		Header(api.TokenHeader, token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$._id", user.ID)).
		Assert(jsonpath.Equal("$.email", "a@x.com")).
		End()

	apitest.Handler(handler).
		Delete("/users/me/token").
		Header(api.TokenHeader, token).
		Expect(t).
		Status(http.StatusOK).
		End()

	// the revoked token is gone for good
	apitest.Handler(handler).
		Get("/users/me").
		Header(api.TokenHeader, token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{}`).
		End()
}
