package loader

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ragbot/internal/extract"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("The cat sat on the mat."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"k":"v"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), []byte("   \n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.gif"), []byte("GIF89a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "inner.txt"), []byte("hidden"), 0o644))

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	l := New(extract.New(log), log)

	docs, err := l.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, filepath.Join(dir, "a.json"), docs[0].Path)
	assert.Equal(t, "{\n  \"k\": \"v\"\n}", docs[0].Content)
	assert.Equal(t, "The cat sat on the mat.", docs[1].Content)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)

	loaded := logs.FilterMessage("loaded document").All()
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(23), loaded[1].ContextMap()["chars"])
	assert.Equal(t, 2, logs.FilterMessage("skipped document").Len())
	assert.Equal(t, 1, logs.FilterMessage("unsupported format").Len())
}

func TestLoad_EmptyDir(t *testing.T) {
	docs, err := New(extract.New(nil), nil).Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := New(extract.New(nil), nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

type stubExtractor map[string]string

func (s stubExtractor) Extract(_ context.Context, path string) string {
	return s[filepath.Base(path)]
}

func TestLoad_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(stubExtractor{"a.txt": "x"}, nil).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_FollowsSymlinksToFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	src := t.TempDir()
	target := filepath.Join(src, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("Linked notes."), 0o644))
	dir := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(src, filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(src, "missing.txt"), filepath.Join(dir, "dangling.txt")))

	docs, err := New(extract.New(nil), nil).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, filepath.Join(dir, "link.txt"), docs[0].Path)
	assert.Equal(t, "Linked notes.", docs[0].Content)
}
