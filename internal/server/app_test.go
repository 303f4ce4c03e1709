package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	repomanager.RepositoryManager
	migrateErr error
	migrated   bool
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	f.migrated = true
	return f.migrateErr
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func newTestApp(t *testing.T, c *config.Config) *App {
	t.Helper()
	orig := openDB
	t.Cleanup(func() { openDB = orig })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	openDB = func(string) (*sql.DB, error) { return db, nil }

	app, err := NewApp(c)
	require.NoError(t, err)
	app.logger = logging.Nop()
	return app
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

	_, err := NewApp(testConfig())
	require.ErrorContains(t, err, "db init error: bad dsn")
}

func TestNewApp_WiresSubscribers(t *testing.T) {
	c := testConfig()
	assert.Equal(t, []string{"auditlog"}, newTestApp(t, c).notifier.Subscribers())

	c.ArchiveBucket = "vault-archive"
	assert.Equal(t, []string{"auditlog", "archive"}, newTestApp(t, c).notifier.Subscribers())
}

func TestRun_MigrationFailureStopsStartup(t *testing.T) {
	app := newTestApp(t, testConfig())
	rm := &fakeRepoManager{migrateErr: errors.New("locked")}
	app.repoManager = rm

	err := app.Run(context.Background())
	require.ErrorContains(t, err, "migrations: locked")
	assert.True(t, rm.migrated)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, testConfig())
	rm := &fakeRepoManager{}
	app.repoManager = rm

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, rm.migrated)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_ServerFailureCancelsOthers(t *testing.T) {
	c := testConfig()
	c.EndpointAddrHTTP = "127.0.0.1:99999"
	c.MigrateOnStart = false
	app := newTestApp(t, c)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("gRPC server kept running after HTTP server failed")
	}
}
