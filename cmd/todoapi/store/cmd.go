package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/internal/cmdflags"
	"github.com/raymondwu22/todo-api/internal/fixtures"
	"github.com/raymondwu22/todo-api/internal/logutil"
	"github.com/raymondwu22/todo-api/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var st *store.Store
	storePath := "todos.db"
	return &cli.Command{
		Name:  "store",
		Usage: "Ad-hoc operations on the document store (seeding, lookups, removals)",
		Flags: []cli.Flag{
			cmdflags.Store(&storePath),
		},
		Before: func(ctx *cli.Context) error {
			var err error
			st, err = store.Open(ctx.Context, storePath, true)
			return err
		},
		After: func(ctx *cli.Context) error {
			if st != nil {
				return st.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			seedCmd(&st),
			queryCmd(&st),
			removeCmd(&st),
		},
	}
}

func seedCmd(st **store.Store) *cli.Command {
	var secretEnvVar string
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the well-known fixture data set (two users, two todos)",
		Flags: []cli.Flag{
			cmdflags.SecretEnvVar(&secretEnvVar),
		},
		Action: func(ctx *cli.Context) error {
			secret, err := account.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			auth := account.NewAuthenticator(*st, account.NewCodec(secret))
			data, err := fixtures.Populate(ctx.Context, *st, auth)
			if err != nil {
				return err
			}
			log := logutil.Component(ctx.Context, "store")
			log.Info().
				Str("user.one", data.UserOne.ID).
				Str("user.two", data.UserTwo.ID).
				Int("todos", len(data.Todos)).
				Msg("Fixture data loaded")
			return nil
		},
	}
}

func queryCmd(st **store.Store) *cli.Command {
	var email string
	var creator string
	var completedOnly bool
	return &cli.Command{
		Name:  "query",
		Usage: "Look up documents by filter and print them as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Print the user registered under this email",
				Destination: &email,
			},
			&cli.StringFlag{
				Name:        "creator",
				Usage:       "Print the todos created by this user id",
				Destination: &creator,
			},
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "Keep only completed todos in the output",
				Destination: &completedOnly,
			},
		},
		Action: func(ctx *cli.Context) error {
			switch {
			case email != "":
				user, err := (*st).FindUserByEmail(ctx.Context, email)
				if err != nil {
					return err
				}
				return printDoc(map[string]interface{}{
					"_id":    user.ID,
					"email":  user.Email,
					"tokens": len(user.Tokens),
				})
			case creator != "":
				todos, err := (*st).ListTodos(ctx.Context, creator)
				if err != nil {
					return err
				}
				for _, todo := range todos {
					if completedOnly && !todo.Completed {
						continue
					}
					if err := printDoc(todo); err != nil {
						return err
					}
				}
				return nil
			}
			return fmt.Errorf("nothing to query, pass --email or --creator")
		},
	}
}

func removeCmd(st **store.Store) *cli.Command {
	var creator string
	var id string
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove a single todo and print the removed document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "creator",
				Usage:       "User id owning the todo",
				Destination: &creator,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "todo",
				Usage:       "Id of the todo to remove",
				Destination: &id,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			todo, err := (*st).DeleteTodo(ctx.Context, creator, id)
			if err != nil {
				return err
			}
			return printDoc(todo)
		},
	}
}

func printDoc(doc interface{}) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("unable to encode document, cause %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(buf))
	return err
}
