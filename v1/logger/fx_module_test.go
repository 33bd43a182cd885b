package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/logsink/v1/environment"
	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

func TestFXModuleProvidesLogger(t *testing.T) {
	dir := t.TempDir()
	env := testEnv
	observer := &TestObserver{}

	var log Logger
	var client *LoggerClient
	app := fxtest.New(t,
		fx.Supply(Config{FileFormat: "json", LogDirectory: dir}),
		fx.Supply(&env),
		fx.Provide(func() observability.Observer { return observer }),
		FXModule,
		fx.Populate(&log, &client),
	)
	app.RequireStart()

	log.Log(severity.Warn, "through the interface", nil)
	assert.Same(t, client, log)
	assert.Equal(t, 1, observer.Count("rotate"))

	app.RequireStop()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "through the interface")
}

func TestFXModuleFailsOnInvalidConfig(t *testing.T) {
	env := environment.Resolved{RuntimeMode: environment.Test}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(Config{Level: "loud", LogDirectory: t.TempDir()}),
		fx.Supply(&env),
		FXModule,
	)
	require.Error(t, app.Err())
	assert.True(t, IsConfigurationError(app.Err()))
}
