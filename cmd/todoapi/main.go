package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/raymondwu22/todo-api/cmd/todoapi/accounts"
	"github.com/raymondwu22/todo-api/cmd/todoapi/serve"
	storecmd "github.com/raymondwu22/todo-api/cmd/todoapi/store"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "todoapi",
		Usage: "Task tracking over REST, one token per session",
		Commands: []*cli.Command{
			serve.Cmd(),
			accounts.Cmd(),
			storecmd.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
