package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/store"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

var ErrUsage = errors.New("usage: vaultkeeper-cli [connection flags] add|history [command flags]")

type ResourceAdder interface {
	AddResource(ctx context.Context, req resources.Request) (*api.AddResourceResponse, error)
}

type App struct {
	config  *config.Config
	client  ResourceAdder
	history history.Repository
	stdin   *os.File
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	closers []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	repos, err := store.InitDatabase(ctx, c.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing history database: %w", err)
	}

	apiClient, err := resources.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken, c.APIVersion)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return &App{
		config:  c,
		client:  apiClient,
		history: repos.History,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		now:     time.Now,
		closers: []func() error{apiClient.Close, repos.Close},
	}, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Run dispatches on the first positional argument.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := command(args)
	switch cmd {
	case "add":
		return a.add(ctx, rest)
	case "history":
		return a.list(ctx)
	default:
		return ErrUsage
	}
}

// command finds the first argument naming a known command and returns it
// with the remaining arguments.
func command(args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "add" || arg == "history" {
			return arg, append(append([]string{}, args[:i]...), args[i+1:]...)
		}
	}
	return "", args
}
