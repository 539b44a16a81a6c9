package noteshub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLayoutIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dist")
	out := &OutputWriter{Root: root}
	require.NoError(t, out.EnsureLayout())
	require.NoError(t, out.WriteFile("notes/keep.html", []byte("keep")))
	require.NoError(t, out.EnsureLayout())

	for _, dir := range []string{"", "notes", "pdfs", "docs", "images"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	data, err := os.ReadFile(filepath.Join(root, "notes", "keep.html"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestEnsureLayoutFailsWhenRootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))
	err := (&OutputWriter{Root: root}).EnsureLayout()
	require.ErrorIs(t, err, ErrOutputLayout)
}

func TestWriteAndCopyOverwrite(t *testing.T) {
	tmp := t.TempDir()
	out := &OutputWriter{Root: filepath.Join(tmp, "dist")}

	require.NoError(t, out.WriteFile("a/b/c.txt", []byte("one")))
	require.NoError(t, out.WriteFile("a/b/c.txt", []byte("two")))
	data, err := os.ReadFile(out.Path("a/b/c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	src := filepath.Join(tmp, "src.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0644))
	require.NoError(t, out.CopyFile(src, "images/nested/src.png"))
	data, err = os.ReadFile(out.Path("images/nested/src.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Error(t, out.CopyFile(filepath.Join(tmp, "missing.png"), "images/missing.png"))
}

func TestWriteStylesheets(t *testing.T) {
	out := &OutputWriter{Root: t.TempDir()}
	require.NoError(t, out.WriteStylesheets())

	style, err := os.ReadFile(out.Path(IndexStylesheet))
	require.NoError(t, err)
	assert.Contains(t, string(style), ".notes-grid")
	assert.Contains(t, string(style), ".chip.active")

	noteStyle, err := os.ReadFile(out.Path(NoteStylesheet))
	require.NoError(t, err)
	assert.Contains(t, string(noteStyle), ".note-content img")
}
