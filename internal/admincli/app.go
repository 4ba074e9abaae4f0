// Package admincli is an operator tool that talks to the database
// directly: it can register an account or check a credential pair without
// going through the HTTP surface.
package admincli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/haiderzaidi/allaboutme/internal/flagx"
	"github.com/haiderzaidi/allaboutme/internal/server/config"
	"github.com/haiderzaidi/allaboutme/internal/server/credentials"
	"github.com/haiderzaidi/allaboutme/internal/server/shared/db"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

type App struct {
	config *config.Config
	out    io.Writer
	in     *bufio.Reader
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
}

// command extracts the operation selected via -cmd.
func command() string {
	var cmd string

	args := flagx.FilterArgs(os.Args[1:], []string{"-cmd"})

	fs := flag.NewFlagSet("admincli", flag.ContinueOnError)
	fs.StringVar(&cmd, "cmd", "", "operation: register or check")
	_ = fs.Parse(args)

	return cmd
}

func (app *App) Run(ctx context.Context) error {
	manager, err := db.NewMongoRepositoryManager(ctx, app.config.MongoURI, app.config.DatabaseName)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer manager.Close(context.Background())

	service := users.NewService(manager.Users(), credentials.NewStore(app.config.BcryptCost))

	switch command() {
	case "register":
		return app.register(ctx, service)
	case "check":
		return app.check(ctx, service)
	default:
		return fmt.Errorf("unknown command, expected -cmd register or -cmd check")
	}
}

func (app *App) register(ctx context.Context, service *users.Service) error {
	email, err := GetSimpleText(app.in, "Email", app.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(app.in, "Full name", app.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(app.out)
	if err != nil {
		return err
	}

	user, err := service.Register(ctx, email, password, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "created %s (%s)\n", user.ID, user.Email)
	return nil
}

func (app *App) check(ctx context.Context, service *users.Service) error {
	email, err := GetSimpleText(app.in, "Email", app.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(app.out)
	if err != nil {
		return err
	}

	user, err := service.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "credentials OK for %s\n", user.ID)
	return nil
}
