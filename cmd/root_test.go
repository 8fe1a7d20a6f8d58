package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const memoryConfig = `
[logs]
level = "error"

[storage]
driver = "memory"
`

func TestAccountProvision_MemoryStore(t *testing.T) {
	cfg := writeConfig(t, memoryConfig)
	env := filepath.Join(t.TempDir(), "missing.env")

	out, err := run(t, "--config", cfg, "--env-file", env,
		"account", "provision", "--id", "root", "--email", "root@example.com", "--admin", "--protected")
	require.NoError(t, err)
	assert.Contains(t, out, "provisioned root (root@example.com, type=admin, protected=true)")
}

func TestAccountProvision_Validation(t *testing.T) {
	cfg := writeConfig(t, memoryConfig)
	env := filepath.Join(t.TempDir(), "missing.env")

	_, err := run(t, "--config", cfg, "--env-file", env, "account", "provision", "--id", "root")
	assert.Error(t, err, "email is required")

	_, err = run(t, "--config", cfg, "--env-file", env,
		"account", "provision", "--id", "root", "--email", "root@example.com", "--protected")
	assert.Error(t, err, "protected requires admin")
}

func TestMigrate_NothingToDoWithoutPostgres(t *testing.T) {
	cfg := writeConfig(t, memoryConfig)

	_, err := run(t, "--config", cfg, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "migrate")
	assert.NoError(t, err)
}

func TestServe_RequiresIdentitySecret(t *testing.T) {
	cfg := writeConfig(t, memoryConfig)

	_, err := run(t, "--config", cfg, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "serve")
	assert.Error(t, err)
}
