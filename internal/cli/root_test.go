package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "unirecords", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, cmdName := range []string{"serve", "migrate", "seed"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, DefaultConfigPath, configFlag.DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	portFlag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "p", portFlag.Shorthand)
	assert.Equal(t, "", portFlag.DefValue)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateAndSeed_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")
	t.Setenv("UNIRECORDS_DB_DRIVER", "sqlite")
	t.Setenv("UNIRECORDS_DB_PATH", dbPath)
	t.Setenv("UNIRECORDS_LOG_LEVEL", "error")
	missingConfig := filepath.Join(t.TempDir(), "none.yaml")

	out, err := runCommand(t, "migrate", "--config", missingConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 1 migration(s)")

	out, err = runCommand(t, "migrate", "--config", missingConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0 migration(s)")

	out, err = runCommand(t, "seed", "--config", missingConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "default data ready")
}

func TestMigrate_RejectsMemoryDriver(t *testing.T) {
	t.Setenv("UNIRECORDS_DB_DRIVER", "memory")
	t.Setenv("UNIRECORDS_LOG_LEVEL", "error")

	_, err := runCommand(t, "migrate", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
