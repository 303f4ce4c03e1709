package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
)

var (
	ErrInteractiveStdin = errors.New("refusing to read the secret from a terminal; pipe the armored message on stdin")
	ErrEmptySecret      = errors.New("no secret on stdin")
	ErrNoToken          = errors.New("access token required (-k or VAULTKEEPER_TOKEN)")
)

func parseAddFlags(args []string) (resources.Request, error) {
	var req resources.Request

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&req.Name, "name", "", "resource name")
	fs.StringVar(&req.Username, "username", "", "login for the resource")
	fs.StringVar(&req.URI, "uri", "", "resource URI")
	fs.StringVar(&req.Description, "description", "", "free-text description")

	err := fs.Parse(flagx.FilterArgs(args, []string{"-name", "-username", "-uri", "-description"}))
	return req, err
}

// readSecret reads the whole of stdin. The message must already be encrypted
// for the user's own key, so an interactive terminal is refused.
func (a *App) readSecret() (string, error) {
	if isTerminal(int(a.stdin.Fd())) {
		return "", ErrInteractiveStdin
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", ErrEmptySecret
	}
	return secret + "\n", nil
}

func (a *App) add(ctx context.Context, args []string) error {
	if a.config.AccessToken == "" {
		return ErrNoToken
	}

	req, err := parseAddFlags(args)
	if err != nil {
		return fmt.Errorf("add flags: %w", err)
	}
	if req.Secret, err = a.readSecret(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	resp, err := a.client.AddResource(ctx, req)
	if err != nil {
		var fe *resources.FieldErrors
		if errors.As(err, &fe) {
			a.printFieldErrors(fe)
		}
		return err
	}

	if err := a.history.Record(ctx, &history.Entry{
		ID:         resp.Body.ID,
		Name:       resp.Body.Name,
		URI:        resp.Body.URI,
		APIVersion: a.config.APIVersion,
		Created:    a.now(),
	}); err != nil {
		fmt.Fprintf(a.stderr, "warning: %v\n", err)
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func (a *App) printFieldErrors(fe *resources.FieldErrors) {
	fmt.Fprintln(a.stderr, fe.Message)
	for _, path := range sortedKeys(fe.Fields) {
		fmt.Fprintf(a.stderr, "  %s: %s\n", path, strings.Join(fe.Fields[path], ", "))
	}
}
