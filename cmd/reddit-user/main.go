package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stringfold/ally/internal/app/bootstrap"
	"github.com/stringfold/ally/internal/cfg"
	"github.com/stringfold/ally/pkg/logger"
	"github.com/stringfold/ally/pkg/reddit"
	"github.com/stringfold/ally/pkg/validator"

	"github.com/urfave/cli/v2"
)

func main() {
	newApp(os.Stdout).RunAndExitOnError()
}

func newApp(stdout io.Writer) *cli.App {
	app := &cli.App{
		Name:      "reddit-user",
		Usage:     "look up or revoke Reddit access tokens",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the reddit yaml config",
				EnvVars: []string{"REDDIT_CONFIG_FILE"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log provider calls to stderr",
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:      "user",
			Usage:     "print the user owning an access token",
			ArgsUsage: "<access-token>",
			Action:    runUser,
		},
		{
			Name:      "revoke",
			Usage:     "revoke an access or refresh token",
			ArgsUsage: "<token>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "hint",
					Usage: "token type hint: access_token or refresh_token",
					Value: "access_token",
				},
			},
			Action: runRevoke,
		},
	}
	return app
}

func newProvider(cctx *cli.Context) (*reddit.Provider, error) {
	if path := cctx.String("config"); path != "" {
		if err := os.Setenv("REDDIT_CONFIG_FILE", path); err != nil {
			return nil, err
		}
	}

	config, err := cfg.LoadReddit()
	if err != nil {
		return nil, err
	}

	log := logger.Logger(logger.Nop())
	if cctx.Bool("verbose") {
		log = logger.NewWithWriter("development", cctx.App.ErrWriter)
	}

	return bootstrap.InitReddit(&config, nil, log, nil)
}

func tokenArg(cctx *cli.Context) (string, error) {
	token := cctx.Args().First()
	if token == "" {
		return "", errors.New("need to provide a token as an argument")
	}
	return token, nil
}

func runUser(cctx *cli.Context) error {
	token, err := tokenArg(cctx)
	if err != nil {
		return err
	}
	provider, err := newProvider(cctx)
	if err != nil {
		return err
	}

	user, err := provider.UserFromToken(cctx.Context, token, nil)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}

	enc := json.NewEncoder(cctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(user)
}

func runRevoke(cctx *cli.Context) error {
	token, err := tokenArg(cctx)
	if err != nil {
		return err
	}
	hint := cctx.String("hint")
	if err := validator.ValidateTokenTypeHint(hint); err != nil {
		return fmt.Errorf("%w: %q", err, hint)
	}
	provider, err := newProvider(cctx)
	if err != nil {
		return err
	}

	if err := provider.RevokeToken(cctx.Context, token, hint); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	fmt.Fprintln(cctx.App.Writer, "token revoked")
	return nil
}
