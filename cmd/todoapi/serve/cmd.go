package serve

import (
	"os"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/api"
	"github.com/raymondwu22/todo-api/internal/cmdflags"
	"github.com/raymondwu22/todo-api/internal/httpserver"
	"github.com/raymondwu22/todo-api/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:3000"
	storePath := "todos.db"
	var secretEnvVar string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the todo REST API backed by the given store",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Store(&storePath),
			cmdflags.SecretEnvVar(&secretEnvVar),
		},
		Action: func(ctx *cli.Context) error {
			secret, err := account.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			st, err := store.Open(ctx.Context, storePath, true)
			if err != nil {
				return err
			}
			defer st.Close()
			auth := account.NewAuthenticator(st, account.NewCodec(secret))
			return httpserver.Serve(ctx.Context, bindAddr, api.AsHandler(st, auth))
		},
	}
}
