package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "cli.sqlite"))
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("BACKUP_DIR", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
	t.Setenv("AUTH_SECRET", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateAndOps(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "cli.sqlite"))

	out, err = run(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "save-invoice")
	assert.Contains(t, out, "invoice-save-error")
}

func TestInvoke(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "invoke", "save-client", "--payload", `{"business_id":1,"name":"Acme"}`)
	require.NoError(t, err)

	var env struct {
		Status string `json:"status"`
		Reply  string `json:"reply"`
		Data   struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "client-saved", env.Reply)
	assert.Equal(t, "Acme", env.Data.Name)

	out, err = run(t, "invoke", "get-clients", "-p", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"clients-data"`)
	assert.Contains(t, out, `"Acme"`)

	out, err = run(t, "invoke", "save-client", "--payload", `{"business_id":1}`)
	require.Error(t, err)
	assert.Contains(t, out, `"code": "INVALID"`)
	assert.Contains(t, out, `"client-saved-error"`)

	_, err = run(t, "invoke", "get-clients", "--payload", `{not json`)
	assert.Error(t, err)
}

func TestBackupAndRestoreCommands(t *testing.T) {
	dir := setupEnv(t)
	target := filepath.Join(dir, "copy.sqlite")

	out, err := run(t, "backup", target)
	require.NoError(t, err)
	assert.Contains(t, out, `"backup-complete"`)
	assert.FileExists(t, target)

	out, err = run(t, "restore", target)
	require.NoError(t, err)
	assert.Contains(t, out, `"restore-complete"`)

	out, err = run(t, "restore", filepath.Join(dir, "missing.sqlite"))
	assert.Error(t, err)
	assert.Contains(t, out, `"restore-complete-error"`)
}

func TestTokenRequiresSecret(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "token")
	assert.Error(t, err)

	t.Setenv("AUTH_SECRET", "s3cret")
	out, err := run(t, "token", "--subject", "shell")
	require.NoError(t, err)
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte(".")), 3)
}
