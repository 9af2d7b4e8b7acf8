package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", s.Server.Host)
	assert.Equal(t, 8080, s.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", s.Server.Addr())
	assert.Equal(t, 30*time.Second, s.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, s.Server.CORSOrigins)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Report.Format)
	assert.Equal(t, "yearly", s.Report.Granularity)
	assert.Equal(t, "INR", s.Report.Currency)
	assert.Equal(t, 1000, s.Simulation.NumSimulations)
	assert.Empty(t, s.Funds.SourceURL)
	assert.Equal(t, 10*time.Second, s.Funds.Timeout)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "server:\n" +
		"  port: 9090\n" +
		"logging:\n" +
		"  level: debug\n" +
		"  pretty: true\n" +
		"funds:\n" +
		"  source_url: https://example.com/returns\n"
	path := filepath.Join(dir, "sipcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SIPCALC_LOGGING_LEVEL", "warn")
	t.Setenv("SIPCALC_SIMULATION_NUM_SIMULATIONS", "250")

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, 9090, s.Server.Port)
	assert.Equal(t, "warn", s.Logging.Level)
	assert.True(t, s.Logging.Pretty)
	assert.Equal(t, 250, s.Simulation.NumSimulations)
	assert.Equal(t, "https://example.com/returns", s.Funds.SourceURL)

	explicit, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, explicit.Server.Port)
}

func TestLoadSettings_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SIPCALC_SERVER_PORT=7070\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SIPCALC_SERVER_PORT") })

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 7070, s.Server.Port)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadSettings("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
