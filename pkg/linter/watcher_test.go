package linter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gnana997/darklint/pkg/rules"
	"github.com/gnana997/darklint/pkg/util"
)

const watchTimeout = 5 * time.Second

func startWatcher(t *testing.T, l *Linter, root string) (*FileWatcher, <-chan FileReport) {
	t.Helper()
	changes := make(chan FileReport, 16)
	fw, err := NewFileWatcher(l, root, WatchOptions{Debounce: 20 * time.Millisecond}, func(fr FileReport) {
		changes <- fr
	}, util.NopLogger())
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	return fw, changes
}

func waitForChange(t *testing.T, changes <-chan FileReport) FileReport {
	t.Helper()
	select {
	case fr := <-changes:
		return fr
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for re-lint")
		return FileReport{}
	}
}

func TestFileWatcher_RelintsChangedFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"pages/index.tsx": `<div className="bg-white dark:bg-gray-900" />`})
	l := newTestLinter(t)

	fw, changes := startWatcher(t, l, root)
	defer fw.Stop()
	assert.Equal(t, 1, fw.Stats().KnownFiles)
	assert.True(t, fw.Stats().IsRunning)

	path := filepath.Join(root, "pages", "index.tsx")
	require.NoError(t, os.WriteFile(path, []byte(`<div className="text-white" />`), 0o644))

	fr := waitForChange(t, changes)
	assert.Equal(t, "pages/index.tsx", fr.Path)
	assert.Equal(t, path, fr.AbsPath)
	require.Len(t, fr.Violations, 1)
	assert.Equal(t, rules.PatternTextWhiteWithoutBg, fr.Violations[0].PatternID)

	require.NoError(t, fw.Stop())
	assert.False(t, fw.Stats().IsRunning)
}

func TestFileWatcher_SkipsUnchangedContent(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	content := `<div className="bg-white" />`
	writeTree(t, root, map[string]string{"pages/index.tsx": content})
	l := newTestLinter(t)

	fw, changes := startWatcher(t, l, root)
	defer fw.Stop()

	path := filepath.Join(root, "pages", "index.tsx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	select {
	case fr := <-changes:
		t.Fatalf("unexpected re-lint of %s", fr.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_WatchesNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/components/A.tsx": ""})
	l := newTestLinter(t)

	fw, changes := startWatcher(t, l, root)
	defer fw.Stop()

	dir := filepath.Join(root, "src", "components", "ui")
	require.NoError(t, os.Mkdir(dir, 0o755))

	// Give the watcher a moment to register the new directory.
	require.Eventually(t, func() bool {
		return contains(fw.watcher.WatchList(), dir)
	}, watchTimeout, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.tsx"), []byte(`<b className="prose" />`), 0o644))

	fr := waitForChange(t, changes)
	assert.Equal(t, "src/components/ui/B.tsx", fr.Path)
	require.Len(t, fr.Violations, 1)
	assert.Equal(t, rules.PatternProseMissingInvert, fr.Violations[0].PatternID)
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"pages/index.tsx": ""})
	l := newTestLinter(t)

	fw, changes := startWatcher(t, l, root)
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "pages", "notes.md"), []byte(`<b className="bg-white" />`), 0o644))

	select {
	case fr := <-changes:
		t.Fatalf("unexpected re-lint of %s", fr.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_RemoveForgetsFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"pages/index.tsx": "", "pages/other.tsx": ""})
	l := newTestLinter(t)

	fw, _ := startWatcher(t, l, root)
	defer fw.Stop()
	require.Equal(t, 2, fw.Stats().KnownFiles)

	require.NoError(t, os.Remove(filepath.Join(root, "pages", "other.tsx")))
	require.Eventually(t, func() bool { return fw.Stats().KnownFiles == 1 }, watchTimeout, 10*time.Millisecond)
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newTestLinter(t)
	fw, err := NewFileWatcher(l, t.TempDir(), DefaultWatchOptions(), nil, util.NopLogger())
	require.NoError(t, err)

	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
	assert.Error(t, fw.Start())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
