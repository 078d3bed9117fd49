package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.wkt")
	require.NoError(t, os.WriteFile(path, []byte("POINT (1 2)"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	got := make(chan any, 1)
	go func() { got <- w.Wait()() }()

	require.NoError(t, os.WriteFile(path, []byte("POINT (3 4)"), 0o644))

	select {
	case msg := <-got:
		require.IsType(t, ChangedMsg{}, msg)
		assert.Equal(t, w.Path(), msg.(ChangedMsg).Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.wkt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.wkt"), []byte("x"), 0o644))

	select {
	case msg := <-w.msgs:
		t.Fatalf("unexpected message %#v", msg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wkt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Nil(t, w.Wait()())
}

func TestDebounce(t *testing.T) {
	w := &Watcher{}
	now := time.Now()
	assert.True(t, w.due(now))
	assert.False(t, w.due(now.Add(debounce/2)))
	assert.True(t, w.due(now.Add(2*debounce)))
}
