package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/config"
)

func run(t *testing.T, flags *helpers.GlobalFlags, args ...string) (string, error) {
	t.Helper()

	cmd := NewConfigCmd(flags)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(&helpers.GlobalFlags{})
	assert.Equal(t, "config", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"view", "path", "validate", "init"}, names)
}

func TestInitViewValidate(t *testing.T) {
	t.Setenv("ANALYST_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "analyst", "config.yaml")
	flags := &helpers.GlobalFlags{ConfigPath: path}

	_, err := run(t, flags, "validate")
	require.Error(t, err, "explicit config file must exist")

	out, err := run(t, flags, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, flags, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, flags, "init", "--force")
	require.NoError(t, err)

	out, err = run(t, flags, "view")
	require.NoError(t, err)

	var viewed config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &viewed))
	assert.Equal(t, *config.Default(), viewed)

	out, err = run(t, flags, "view", "-o", "json")
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &generic))
	assert.Equal(t, "300ms", generic["animation_interval"])

	out, err = run(t, flags, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = run(t, flags, "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestView_FlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://file.test/analyst_chat\n"), 0o600))

	out, err := run(t, &helpers.GlobalFlags{ConfigPath: path, Endpoint: "http://flag.test/analyst_chat"}, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "endpoint: http://flag.test/analyst_chat")
}

func TestView_UnsupportedFormat(t *testing.T) {
	_, err := run(t, &helpers.GlobalFlags{}, "view", "-o", "csv")
	assert.ErrorContains(t, err, "unsupported format")
}

