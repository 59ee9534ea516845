package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, filepath.Join(home, "x", "y.db"), ExpandHome("~/x/y.db"))
	require.Equal(t, "/abs/y.db", ExpandHome("/abs/y.db"))
	require.Equal(t, "~other/y", ExpandHome("~other/y"))
}

func TestResolveDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".dbug", "payloads.db"), ResolveDBPath(""))
	require.Equal(t, filepath.Join(home, "hooks.db"), ResolveDBPath("~/hooks.db"))

	dir := filepath.Join(home, "data")
	require.NoError(t, os.Mkdir(dir, 0o700))
	require.Equal(t, filepath.Join(dir, "payloads.db"), ResolveDBPath(dir))
	require.Equal(t, filepath.Join(dir, "custom.sqlite"), ResolveDBPath(dir+"/./custom.sqlite"))
}

func TestWellKnownDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".dbug"), DataDir())
	require.Equal(t, filepath.Join(home, ".config", "dbug"), ConfigDir())
	require.Equal(t, filepath.Join(home, ".dbug_desktop", "data.json"), LegacyDataFile())
}
