package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/api"
	"github.com/raymondwu22/todo-api/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

type fixture struct {
	handler    http.Handler
	userToken  string
	otherToken string
	cleanup    func()
}

func acquireFixture(ctx context.Context, t *testing.T) fixture {
	st, cleanup := testutil.AcquireStore(ctx, t)
	auth := account.NewAuthenticator(st, account.NewCodec([]byte("abc123")))
	handler := api.AsHandler(st, auth)

	var tokens [2]string
	for i, email := range []string{"one@test.com", "two@test.com"} {
		user, err := auth.Register(ctx, email, "secret1")
		if err != nil {
			t.Fatal(err)
		}
		tokens[i], err = auth.IssueToken(ctx, user)
		if err != nil {
			t.Fatal(err)
		}
	}
	return fixture{handler: handler, userToken: tokens[0], otherToken: tokens[1], cleanup: cleanup}
}

func TestTodoCRUD(t *testing.T) {
	ctx := context.Background()
	fx := acquireFixture(ctx, t)
	defer fx.cleanup()

	var id string
	apitest.Handler(fx.handler).
		Post("/todos").
		Header("x-auth", fx.userToken).
		JSON(`{"text":"walk the dog"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.text", "walk the dog")).
		Assert(jsonpath.Equal("$.completed", false)).
		Assert(jsonpath.Present("$._id")).
		End()

	// fetch the id through the list endpoint
	result := apitest.Handler(fx.handler).
		Get("/todos").
		Header("x-auth", fx.userToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.todos", 1)).
		End()
	var listBody struct {
		Todos []struct {
			ID string `json:"_id"`
		} `json:"todos"`
	}
	result.JSON(&listBody)
	id = listBody.Todos[0].ID

	apitest.Handler(fx.handler).
		Get("/todos/"+id).
		Header("x-auth", fx.userToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.todo.text", "walk the dog")).
		End()

	apitest.Handler(fx.handler).
		Patch("/todos/"+id).
		Header("x-auth", fx.userToken).
		JSON(`{"completed":true}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.todo.completed", true)).
		Assert(jsonpath.Present("$.todo.completedAt")).
		End()

	apitest.Handler(fx.handler).
		Delete("/todos/"+id).
		Header("x-auth", fx.userToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.todo._id", id)).
		End()

	apitest.Handler(fx.handler).
		Get("/todos/"+id).
		Header("x-auth", fx.userToken).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestTodoVisibilityAndIds(t *testing.T) {
	ctx := context.Background()
	fx := acquireFixture(ctx, t)
	defer fx.cleanup()

	result := apitest.Handler(fx.handler).
		Post("/todos").
		Header("x-auth", fx.userToken).
		JSON(`{"text":"private item"}`).
		Expect(t).
		Status(http.StatusOK).
		End()
	var created struct {
		ID string `json:"_id"`
	}
	result.JSON(&created)

	// other users cannot see, patch or delete it
	apitest.Handler(fx.handler).
		Get("/todos/"+created.ID).
		Header("x-auth", fx.otherToken).
		Expect(t).Status(http.StatusNotFound).End()
	apitest.Handler(fx.handler).
		Delete("/todos/"+created.ID).
		Header("x-auth", fx.otherToken).
		Expect(t).Status(http.StatusNotFound).End()
	apitest.Handler(fx.handler).
		Get("/todos").
		Header("x-auth", fx.otherToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.todos", 0)).
		End()

	// a malformed id reads as absent, a well-formed unknown one too
	apitest.Handler(fx.handler).
		Get("/todos/123").
		Header("x-auth", fx.userToken).
		Expect(t).Status(http.StatusNotFound).End()
	apitest.Handler(fx.handler).
		Get("/todos/"+uuid.NewString()).
		Header("x-auth", fx.userToken).
		Expect(t).Status(http.StatusNotFound).End()

	// and none of it works without a token
	apitest.Handler(fx.handler).
		Get("/todos").
		Expect(t).Status(http.StatusUnauthorized).Body(`{}`).End()

	apitest.Handler(fx.handler).
		Post("/todos").
		Header("x-auth", fx.userToken).
		JSON(`{"text":""}`).
		Expect(t).Status(http.StatusBadRequest).End()
}
