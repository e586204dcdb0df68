package accounts

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/raymondwu22/todo-api/account"
	"github.com/raymondwu22/todo-api/internal/cmdflags"
	"github.com/raymondwu22/todo-api/internal/logutil"
	"github.com/raymondwu22/todo-api/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var st *store.Store
	var auth *account.Authenticator
	storePath := "todos.db"
	var secretEnvVar string
	return &cli.Command{
		Name:  "accounts",
		Usage: "Manage user accounts directly against the store",
		Flags: []cli.Flag{
			cmdflags.Store(&storePath),
			cmdflags.SecretEnvVar(&secretEnvVar),
		},
		Before: func(ctx *cli.Context) error {
			secret, err := account.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			st, err = store.Open(ctx.Context, storePath, true)
			if err != nil {
				return err
			}
			auth = account.NewAuthenticator(st, account.NewCodec(secret))
			return nil
		},
		After: func(ctx *cli.Context) error {
			if st != nil {
				return st.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			registerCmd(&auth),
		},
	}
}

func registerCmd(auth **account.Authenticator) *cli.Command {
	var email string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user in the given store (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "Email of the user to register",
				Destination: &email,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			user, err := (*auth).Register(ctx.Context, email, password)
			if err != nil {
				return err
			}
			log := logutil.Component(ctx.Context, "accounts")
			log.Info().Str("user.id", user.ID).Str("user.email", user.Email).Msg("User registered")
			return nil
		},
	}
}
