// Package api assembles the complete REST surface of the todo backend
// on a single router.
package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/raymondwu22/todo-api/account"
	accountapi "github.com/raymondwu22/todo-api/account/api"
	"github.com/raymondwu22/todo-api/store"
	"github.com/raymondwu22/todo-api/task"
	taskapi "github.com/raymondwu22/todo-api/task/api"
)

func AsHandler(st *store.Store, auth *account.Authenticator) http.Handler {
	router := httprouter.New()
	realm := accountapi.NewRealm(auth)
	accountapi.Routes(router, auth, realm)
	taskapi.Routes(router, task.NewService(st), realm)
	return router
}
