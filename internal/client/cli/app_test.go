package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const armoredSecret = "-----BEGIN PGP MESSAGE-----\n\nwcBMA0rZ\n-----END PGP MESSAGE-----"

type fakeAdder struct {
	got  resources.Request
	resp *api.AddResourceResponse
	err  error
}

func (f *fakeAdder) AddResource(_ context.Context, req resources.Request) (*api.AddResourceResponse, error) {
	f.got = req
	return f.resp, f.err
}

type memHistory struct {
	entries []history.Entry
	err     error
}

func (m *memHistory) Record(_ context.Context, e *history.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memHistory) List(context.Context) ([]history.Entry, error) {
	return m.entries, m.err
}

func stdinFile(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func newTestApp(t *testing.T, adder *fakeAdder, stdin string) (*App, *memHistory, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AccessToken = "token"

	h := &memHistory{}
	var stdout, stderr bytes.Buffer
	app := &App{
		config:  cfg,
		client:  adder,
		history: h,
		stdin:   stdinFile(t, stdin),
		stdout:  &stdout,
		stderr:  &stderr,
		now:     func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	return app, h, &stdout, &stderr
}

func TestRun_AddPrintsViewAndRecordsHistory(t *testing.T) {
	adder := &fakeAdder{resp: &api.AddResourceResponse{
		Header: api.Header{Status: api.StatusSuccess, Message: api.MessageResourceAdded},
		Body:   api.Resource{ID: "r-1", Name: "gitlab", URI: "https://gitlab.example", Secrets: []api.Secret{}},
	}}
	app, h, stdout, _ := newTestApp(t, adder, armoredSecret+"\n\n")

	err := app.Run(context.Background(), []string{"-a", "x:1", "add", "-name", "gitlab", "-uri", "https://gitlab.example"})
	require.NoError(t, err)

	assert.Equal(t, resources.Request{Name: "gitlab", URI: "https://gitlab.example", Secret: armoredSecret + "\n"}, adder.got)

	var printed api.AddResourceResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &printed))
	assert.Equal(t, "r-1", printed.Body.ID)

	require.Len(t, h.entries, 1)
	assert.Equal(t, history.Entry{
		ID: "r-1", Name: "gitlab", URI: "https://gitlab.example", APIVersion: "v2",
		Created: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}, h.entries[0])
}

func TestRun_AddHistoryFailureIsOnlyAWarning(t *testing.T) {
	adder := &fakeAdder{resp: &api.AddResourceResponse{Body: api.Resource{ID: "r-1"}}}
	app, h, _, stderr := newTestApp(t, adder, armoredSecret)
	h.err = errors.New("disk full")

	require.NoError(t, app.Run(context.Background(), []string{"add", "-name", "x"}))
	assert.Contains(t, stderr.String(), "warning: disk full")
}

func TestRun_AddPrintsFieldErrors(t *testing.T) {
	fe := &resources.FieldErrors{
		Message: api.MessageValidationError,
		Fields:  map[string][]string{"secrets[0].data": {"armored_message"}, "name": {"required"}},
	}
	app, h, _, stderr := newTestApp(t, &fakeAdder{err: fe}, armoredSecret)

	err := app.Run(context.Background(), []string{"add"})
	require.ErrorIs(t, err, resources.ErrRejected)
	assert.Equal(t, api.MessageValidationError+"\n  name: required\n  secrets[0].data: armored_message\n", stderr.String())
	assert.Empty(t, h.entries)
}

func TestRun_AddInputErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		token    string
		terminal bool
		wantErr  error
	}{
		{name: "no token", stdin: armoredSecret, wantErr: ErrNoToken},
		{name: "empty stdin", stdin: "  \n", token: "t", wantErr: ErrEmptySecret},
		{name: "terminal stdin", stdin: armoredSecret, token: "t", terminal: true, wantErr: ErrInteractiveStdin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := isTerminal
			t.Cleanup(func() { isTerminal = orig })
			isTerminal = func(int) bool { return tt.terminal }

			adder := &fakeAdder{}
			app, _, _, _ := newTestApp(t, adder, tt.stdin)
			app.config.AccessToken = tt.token

			err := app.Run(context.Background(), []string{"add", "-name", "x"})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, adder.got.Name)
		})
	}
}

func TestRun_History(t *testing.T) {
	app, h, stdout, _ := newTestApp(t, &fakeAdder{}, "")

	require.NoError(t, app.Run(context.Background(), []string{"history"}))
	assert.Equal(t, "No resources created yet\n", stdout.String())

	stdout.Reset()
	h.entries = []history.Entry{{ID: "r-1", Name: "gitlab", APIVersion: "v1", Created: time.Now()}}
	require.NoError(t, app.Run(context.Background(), []string{"history"}))
	assert.Contains(t, stdout.String(), "ID")
	assert.Contains(t, stdout.String(), "r-1")
	assert.Contains(t, stdout.String(), "gitlab")
}

func TestRun_Usage(t *testing.T) {
	app, _, _, _ := newTestApp(t, &fakeAdder{}, "")
	require.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	require.ErrorIs(t, app.Run(context.Background(), []string{"delete"}), ErrUsage)
}

func TestNewApp_WiresHistoryDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HistoryDB = filepath.Join(t.TempDir(), "history.db")

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	entries, err := app.history.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
