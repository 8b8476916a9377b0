// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   Secrets
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, IEEEAPIKey, "  abc123  \n")
				writeFile(t, dir, "proxy-token", "xyz789")
				return dir
			},
			want: Secrets{
				IEEEAPIKey:    "abc123",
				"proxy-token": "xyz789",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, IEEEAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Secrets{IEEEAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, IEEEAPIKey, "real")
				return dir
			},
			want: Secrets{IEEEAPIKey: "real"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, IEEEAPIKey, "k_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{IEEEAPIKey: "k_123"},
		},
		{
			name: "errors when the path is a file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "not-a-dir", "x")
				return filepath.Join(dir, "not-a-dir")
			},
			errMsg: "reading secrets directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir, nil)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	core, logs := observer.New(zap.WarnLevel)
	got, err := Load(dir, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
	assert.Equal(t, 1, logs.FilterMessage("could not read secret").Len())
}

func TestDefault(t *testing.T) {
	s := Secrets{IEEEAPIKey: "from-file"}
	assert.Equal(t, "from-flag", s.Default(IEEEAPIKey, "from-flag"))
	assert.Equal(t, "from-file", s.Default(IEEEAPIKey, ""))
	assert.Equal(t, "", s.Default("missing", ""))
	assert.Equal(t, "", Secrets(nil).Default(IEEEAPIKey, ""))
}

func TestNames(t *testing.T) {
	s := Secrets{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
