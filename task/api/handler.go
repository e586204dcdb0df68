package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	accountapi "github.com/raymondwu22/todo-api/account/api"
	"github.com/raymondwu22/todo-api/store"
	"github.com/raymondwu22/todo-api/task"
)

type (
	createRequest struct {
		Text string `json:"text"`
	}

	patchRequest struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}

	publicTodo struct {
		ID          string `json:"_id"`
		Text        string `json:"text"`
		Completed   bool   `json:"completed"`
		CompletedAt *int64 `json:"completedAt"`
	}
)

// Routes registers the todo endpoints on the router. Every route sits
// behind the realm, there is no anonymous access to task items.
func Routes(router *httprouter.Router, svc *task.Service, realm *accountapi.Realm) {
	router.Handler("POST", "/todos", realm.Protect(createTodo(svc)))
	router.Handler("GET", "/todos", realm.Protect(listTodos(svc)))
	router.Handler("GET", "/todos/:id", realm.Protect(byID(svc.Get)))
	router.Handler("PATCH", "/todos/:id", realm.Protect(patchTodo(svc)))
	router.Handler("DELETE", "/todos/:id", realm.Protect(byID(svc.Delete)))
}

func createTodo(svc *task.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := accountapi.UserFrom(r.Context())
		var body createRequest
		if !decodeBody(w, r, &body) {
			return
		}
		todo, err := svc.Create(r.Context(), user.ID, body.Text)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, asPublicTodo(todo))
	})
}

func listTodos(svc *task.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := accountapi.UserFrom(r.Context())
		todos, err := svc.List(r.Context(), user.ID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		out := make([]publicTodo, 0, len(todos))
		for i := range todos {
			out = append(out, asPublicTodo(&todos[i]))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"todos": out})
	})
}

// byID adapts the lookup-shaped service calls (Get, Delete) that only
// need a creator and a todo id. Ids that are not even well formed get
// the same 404 as absent ones.
func byID(op func(ctx context.Context, creatorID, id string) (*store.Todo, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := accountapi.UserFrom(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if uuid.Validate(id) != nil {
			writeNotFound(w)
			return
		}
		todo, err := op(r.Context(), user.ID, id)
		var notFound store.NotFound
		switch {
		case errors.As(err, &notFound):
			writeNotFound(w)
		case err != nil:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{"todo": asPublicTodo(todo)})
		}
	})
}

func patchTodo(svc *task.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := accountapi.UserFrom(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if uuid.Validate(id) != nil {
			writeNotFound(w)
			return
		}
		var body patchRequest
		if !decodeBody(w, r, &body) {
			return
		}
		todo, err := svc.Apply(r.Context(), user.ID, id, task.Update{Text: body.Text, Completed: body.Completed})
		var notFound store.NotFound
		switch {
		case errors.As(err, &notFound):
			writeNotFound(w)
		case err != nil:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{"todo": asPublicTodo(todo)})
		}
	})
}

func asPublicTodo(t *store.Todo) publicTodo {
	return publicTodo{ID: t.ID, Text: t.Text, Completed: t.Completed, CompletedAt: t.CompletedAt}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
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
