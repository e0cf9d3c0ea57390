package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLUQQY_ACCOUNT_DATA_DIR", dir)
	t.Setenv("PLUQQY_ACCOUNT_CONFIG", "")
	unsetEnv(t, "PLUQQY_ACCOUNT_STORE_DRIVER")
	unsetEnv(t, "PLUQQY_ACCOUNT_TOKEN_SECRET")
	unsetEnv(t, "PLUQQY_ACCOUNT_PHOTO_BACKEND")
	return dir
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		}
	})
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func whoami(t *testing.T) WhoamiResult {
	t.Helper()
	out, err := run(t, "", "whoami", "-o", "json")
	require.NoError(t, err)
	var res WhoamiResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestAccountFlow(t *testing.T) {
	dir := setupDataDir(t)

	out, err := run(t, "correct horse\ncorrect horse\n", "register", "--email", "ada@example.com", "--name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ada (ada@example.com)")

	_, err = run(t, "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")

	out, err = run(t, "ada@example.com\ncorrect horse\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ada")

	info, err := os.Stat(filepath.Join(dir, "session.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	res := whoami(t)
	assert.Equal(t, "ada@example.com", res.Email)
	assert.Equal(t, "Ada", res.DisplayName)
	assert.Equal(t, "dark", res.Appearance)
	assert.Empty(t, res.PhotoURL)

	out, err = run(t, "", "set", "name", "  Lovelace  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Display name set to Lovelace")

	out, err = run(t, "", "set", "dark-mode", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Appearance set to light")

	cached, err := os.ReadFile(filepath.Join(dir, "cache.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cached), "false")

	res = whoami(t)
	assert.Equal(t, "Lovelace", res.DisplayName)
	assert.Equal(t, "light", res.Appearance)

	img := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nfake"), 0o644))
	out, err = run(t, "", "photo", img)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile photo updated: file://")

	res = whoami(t)
	assert.True(t, strings.HasPrefix(res.PhotoURL, "file://"))
	assert.True(t, strings.HasSuffix(res.PhotoURL, ".png"))

	out, err = run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = os.Stat(filepath.Join(dir, "session.yaml"))
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "correct horse\nbattery staple\n", "register", "--email", "ada@example.com", "--name", "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
}

func TestRegister_Validation(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "correct horse\ncorrect horse\n", "register", "--email", "ada@example.com", "--name", "Alexandrine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "correct horse\ncorrect horse\n", "register", "--email", "ada@example.com", "--name", "Ada")
	require.NoError(t, err)

	_, err = run(t, "wrong password\n", "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLogout_WithoutSession(t *testing.T) {
	setupDataDir(t)

	out, err := run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
}

func TestEmptyDriverVariable(t *testing.T) {
	setupDataDir(t)
	t.Setenv("PLUQQY_ACCOUNT_STORE_DRIVER", "")

	out, err := run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
}

func TestSet_Errors(t *testing.T) {
	setupDataDir(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown setting", args: []string{"set", "color", "blue"}, want: "unknown setting"},
		{name: "empty name", args: []string{"set", "name", "   "}, want: "name cannot be empty"},
		{name: "bad toggle", args: []string{"set", "dark-mode", "maybe"}, want: "expected on or off"},
		{name: "signed out", args: []string{"set", "name", "Ada"}, want: "not signed in"},
		{name: "missing args", args: []string{"set", "name"}, want: "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPhoto_MissingFile(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "", "photo", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	setupDataDir(t)

	_, err := run(t, "", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `requires store.driver "postgres"`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pluqqy-account version test\n", out)
}

func TestQuietFlag(t *testing.T) {
	setupDataDir(t)

	out, err := run(t, "", "-q", "logout")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "", "--no-color", "logout")
	require.NoError(t, err)
	assert.Equal(t, "OK: Signed out\n", out)
}
