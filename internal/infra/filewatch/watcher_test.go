package filewatch

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "faq.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	var calls atomic.Int32
	w := New(100*time.Millisecond, newTestLogger())
	require.NoError(t, w.Watch(target, func() { calls.Add(1) }))
	require.NoError(t, w.Start())
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte(`{"faq":[]}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcher_ObservesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tariffs.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	var calls atomic.Int32
	w := New(50*time.Millisecond, newTestLogger())
	require.NoError(t, w.Watch(target, func() { calls.Add(1) }))
	require.NoError(t, w.Start())
	defer w.Stop()

	tmp := filepath.Join(dir, ".tariffs.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"tariffs":[]}`), 0o644))
	require.NoError(t, os.Rename(tmp, target))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherFilesAndLateRegistration(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "faq.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	var calls atomic.Int32
	w := New(50*time.Millisecond, newTestLogger())
	require.NoError(t, w.Watch(target, func() { calls.Add(1) }))
	require.NoError(t, w.Start())
	require.Error(t, w.Watch(filepath.Join(dir, "late.json"), func() {}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	w.Stop()
	require.Zero(t, calls.Load())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
