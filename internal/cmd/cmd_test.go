package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"modconfigs/internal/configstore"
	"modconfigs/internal/hostdir"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "/games/host"

var testConfigDir = filepath.Join(testBase, configstore.ModsDir, configstore.ConfigsDir)

// setupTestApp creates an App over an in-memory filesystem.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	var out, errOut bytes.Buffer
	app := &App{
		Manager: configstore.New(hostdir.Static(testBase), configstore.WithFs(fs)),
		Fs:      fs,
		Out:     &out,
		Err:     &errOut,
	}
	return app, &out
}

// seedFile writes content as a configuration file.
func seedFile(t *testing.T, app *App, name, content string) {
	t.Helper()
	require.NoError(t, app.Fs.MkdirAll(testConfigDir, 0o755))
	require.NoError(t, afero.WriteFile(app.Fs, filepath.Join(testConfigDir, name), []byte(content), 0o644))
}

func fileContent(t *testing.T, app *App, name string) string {
	t.Helper()
	data, err := afero.ReadFile(app.Fs, filepath.Join(testConfigDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestDirCmd(t *testing.T) {
	app, out := setupTestApp(t)

	cmd := newDirCmd(NewTestProvider(app))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, testConfigDir+"\n", out.String())
	exists, err := afero.DirExists(app.Fs, testConfigDir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirCmd_Unresolved(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Manager = configstore.New(hostdir.Static(""), configstore.WithFs(app.Fs))

	cmd := newDirCmd(NewTestProvider(app))
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Equal(t, configstore.StatusAccessDenied, configstore.StatusOf(err))
}

func TestListCmd(t *testing.T) {
	app, out := setupTestApp(t)
	seedFile(t, app, "b.json", "{}")
	seedFile(t, app, "a.json", "{}")
	seedFile(t, app, ".a.json.tmp.0011", "{}")
	require.NoError(t, app.Fs.MkdirAll(filepath.Join(testConfigDir, "nested"), 0o755))

	cmd := newListCmd(NewTestProvider(app))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "a.json\nb.json\n", out.String())
}

func TestListCmd_EmptyJSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true

	cmd := newListCmd(NewTestProvider(app))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "[]\n", out.String())
}

func TestShowCmd(t *testing.T) {
	app, out := setupTestApp(t)
	seedFile(t, app, "game.json", `{"z": 1, "a": [true]}`)

	cmd := newShowCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"game.json"})
	require.NoError(t, cmd.Execute())

	want := "{\n    \"a\": [\n        true\n    ],\n    \"z\": 1\n}\n"
	assert.Equal(t, want, out.String())
	// show does not rewrite the file
	assert.Equal(t, `{"z": 1, "a": [true]}`, fileContent(t, app, "game.json"))
}

func TestShowCmd_JSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true
	seedFile(t, app, "game.json", `{"z": 1}`)

	cmd := newShowCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"game.json"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "{\"z\":1}\n", out.String())
}

func TestGetCmd_Scalars(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want string
	}{
		{"retries", "integer", "3"},
		{"volume", "number", "0.5"},
		{"title", "string", "Hello"},
		{"enabled", "bool", "true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, out := setupTestApp(t)
			seedFile(t, app, "s.json", `{"retries": 3, "volume": 0.5, "title": "Hello", "enabled": true}`)

			cmd := newGetCmd(NewTestProvider(app))
			cmd.SetArgs([]string{"s.json", tc.name, "--kind", tc.kind})
			require.NoError(t, cmd.Execute())
			assert.Equal(t, tc.want+"\n", out.String())
		})
	}
}

func TestGetCmd_Array(t *testing.T) {
	app, out := setupTestApp(t)
	seedFile(t, app, "s.json", `{"tags": ["a", "b"], "ports": [80, 443]}`)

	cmd := newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "tags", "--array"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "a\nb\n", out.String())

	out.Reset()
	cmd = newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "ports", "-a", "-k", "int"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "80\n443\n", out.String())
}

func TestGetCmd_JSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true
	seedFile(t, app, "s.json", `{"retries": 3}`)

	cmd := newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "retries", "--kind", "integer"})
	require.NoError(t, cmd.Execute())

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "integer", result["kind"])
	assert.Equal(t, float64(3), result["value"])
	assert.Equal(t, false, result["array"])
}

func TestGetCmd_Errors(t *testing.T) {
	app, _ := setupTestApp(t)
	seedFile(t, app, "s.json", `{"retries": 3}`)

	cmd := newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "missing", "--kind", "integer"})
	err := cmd.Execute()
	assert.Equal(t, configstore.StatusObjectNotFound, configstore.StatusOf(err))
	assert.Contains(t, err.Error(), "object_not_found")

	cmd = newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "retries", "--kind", "number"})
	err = cmd.Execute()
	assert.Equal(t, configstore.StatusUnsupportedKind, configstore.StatusOf(err))

	cmd = newGetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "retries", "--kind", "date"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestSetCmd_Scalar(t *testing.T) {
	app, out := setupTestApp(t)

	cmd := newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"settings.json", "retries", "3", "--kind", "integer"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Set retries in settings.json\n", out.String())
	assert.Equal(t, "{\n    \"retries\": 3\n}\n", fileContent(t, app, "settings.json"))
	assert.Equal(t, 0, app.Manager.Len())
}

func TestSetCmd_Array(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"settings.json", "flags", "true", "0", "yes", "--kind", "boolean", "--array"})
	err := cmd.Execute()
	require.Error(t, err, "yes is not a boolean")

	cmd = newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"settings.json", "flags", "true", "0", "--kind", "boolean", "--array"})
	require.NoError(t, cmd.Execute())

	cmd = newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"settings.json", "none", "--kind", "number", "--array"})
	require.NoError(t, cmd.Execute())

	want := "{\n    \"flags\": [\n        true,\n        false\n    ],\n    \"none\": []\n}\n"
	assert.Equal(t, want, fileContent(t, app, "settings.json"))
}

func TestSetCmd_InvalidValueLeavesFile(t *testing.T) {
	app, _ := setupTestApp(t)
	seedFile(t, app, "s.json", `{"retries": 3}`)

	cmd := newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "retries", "many", "--kind", "integer"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not an integer"), err.Error())
	assert.Equal(t, `{"retries": 3}`, fileContent(t, app, "s.json"))
}

func TestSetCmd_ArgCount(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newSetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "a", "1", "2"})
	assert.Error(t, cmd.Execute())
}

func TestUnsetCmd(t *testing.T) {
	app, out := setupTestApp(t)
	seedFile(t, app, "s.json", `{"keep": 1, "drop": 2}`)

	cmd := newUnsetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "drop"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Removed drop from s.json\n", out.String())
	assert.Equal(t, "{\n    \"keep\": 1\n}\n", fileContent(t, app, "s.json"))

	cmd = newUnsetCmd(NewTestProvider(app))
	cmd.SetArgs([]string{"s.json", "drop"})
	err := cmd.Execute()
	assert.Equal(t, configstore.StatusObjectNotFound, configstore.StatusOf(err))
}

func TestVersionCmd_Text(t *testing.T) {
	var out bytes.Buffer
	provider := &AppProvider{Out: &out}

	cmd := newVersionCmd(provider)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "modcfg version "+Version+" (interface 1.1.0)\n", out.String())
}

func TestVersionCmd_JSON(t *testing.T) {
	var out bytes.Buffer
	provider := &AppProvider{Out: &out, JSONOutput: true}

	cmd := newVersionCmd(provider)
	require.NoError(t, cmd.Execute())

	var result map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, Version, result["version"])
	assert.Equal(t, "1.1.0", result["interface"])
}

func TestLookupKind(t *testing.T) {
	for in, want := range map[string]string{
		"integer": "integer",
		"INT":     "integer",
		"real":    "number",
		"float":   "number",
		"str":     "string",
		"bool":    "boolean",
		"Boolean": "boolean",
	} {
		vk, err := lookupKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, vk.name, in)
	}
	_, err := lookupKind("object")
	assert.Error(t, err)
}

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	root := newRootCmd(&AppProvider{})
	for _, name := range []string{"dir", "list", "show", "get", "set", "unset", "version"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCmd_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer

	exec := func(args ...string) error {
		out.Reset()
		provider := &AppProvider{Fs: fs, Out: &out, Err: &out}
		root := newRootCmd(provider)
		root.SetArgs(append([]string{"--base-dir", testBase}, args...))
		return root.Execute()
	}

	require.NoError(t, exec("set", "settings.json", "retries", "3", "--kind", "integer"))
	require.NoError(t, exec("set", "settings.json", "tags", "a", "b", "--array"))

	require.NoError(t, exec("get", "settings.json", "retries", "--kind", "integer"))
	assert.Equal(t, "3\n", out.String())

	require.NoError(t, exec("get", "settings.json", "tags", "--array"))
	assert.Equal(t, "a\nb\n", out.String())

	err := exec("get", "settings.json", "retries", "--kind", "number")
	assert.Equal(t, configstore.StatusUnsupportedKind, configstore.StatusOf(err))

	require.NoError(t, exec("--json", "list"))
	assert.Equal(t, "[\"settings.json\"]\n", out.String())
}
