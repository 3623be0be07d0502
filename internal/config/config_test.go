package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultPublishCommand, cfg.Publish.Command)
	assert.False(t, cfg.Publish.AllowDirty)
	assert.Empty(t, cfg.Workspace.TempRoot)
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `
[publish]
command = "npm publish"
allow_dirty = true

[workspace]
temp_root = "/var/tmp"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "npm publish", cfg.Publish.Command)
	assert.True(t, cfg.Publish.AllowDirty)
	assert.Equal(t, "/var/tmp", cfg.Workspace.TempRoot)
}

func TestLoadRejectsRelativeTempRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[workspace]\ntemp_root = \"tmp\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temp_root")
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[publish\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Publish.Command = "gem push pkg.gem"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{name: "plain", command: "cargo publish", want: []string{"cargo", "publish"}},
		{name: "extra whitespace", command: "  cargo \t publish  ", want: []string{"cargo", "publish"}},
		{name: "single quotes", command: "sh -c 'echo hi there'", want: []string{"sh", "-c", "echo hi there"}},
		{name: "double quotes", command: `npm publish --tag "next release"`, want: []string{"npm", "publish", "--tag", "next release"}},
		{name: "empty quoted arg", command: `run ''`, want: []string{"run", ""}},
		{name: "adjacent quoted", command: `echo a'b c'd`, want: []string{"echo", "ab cd"}},
		{name: "empty", command: "", wantErr: true},
		{name: "blank", command: "   ", wantErr: true},
		{name: "unterminated quote", command: "sh -c 'oops", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitCommand(tc.command)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
