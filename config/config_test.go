package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFillsOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("var_decay: 0.8\nverbose: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.8, cfg.VarDecay)
	require.True(t, cfg.Verbose)
	require.Equal(t, 0.999, cfg.ClaDecay) // left at New's default
}

func TestMarshalRoundTrips(t *testing.T) {
	cfg := New()
	cfg.VarDecay = 0.7

	out, err := cfg.Marshal()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.VarDecay, reloaded.VarDecay)
}
