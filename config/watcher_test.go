package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("var_decay: 0.8\n"), 0o644))

	updates := make(chan *Config, 1)
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	w, err := NewWatcher(path, logger, func(cfg *Config) { updates <- cfg })
	require.NoError(t, err)
	require.Equal(t, 0.8, w.Current().VarDecay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("var_decay: 0.6\n"), 0o644))

	select {
	case cfg := <-updates:
		require.Equal(t, 0.6, cfg.VarDecay)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not observe the write within the deadline")
	}
	require.Equal(t, 0.6, w.Current().VarDecay)
}

func TestWatcherKeepsPreviousConfigOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("var_decay: 0.8\n"), 0o644))

	w, err := NewWatcher(path, logrus.StandardLogger(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("var_decay: [0.6\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, 0.8, w.Current().VarDecay)
}
