package noteshub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files (with their parent folders) under root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func relPaths(resources []*Resource) (out []string) {
	for _, r := range resources {
		out = append(out, r.RelPath)
	}
	return
}

func TestCollectClassifiesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"MATH_algebra.md":            "# Algebra",
		"README.md":                  "readme",
		"QUICK_START.md":             "quick",
		"sub/README.md":              "nested readme is kept",
		"sub/PHY_waves.MD":           "# Waves",
		"CHEM_bonds.pdf":             "%PDF",
		"BIO_cells.docx":             "docx",
		"old/HIST_rome.doc":          "doc",
		"fig1.png":                   "png",
		"img/deep/diagram.SVG":       "svg",
		"notes.txt":                  "ignored",
		".git/objects/x.md":          "skip",
		"node_modules/pkg/readme.md": "skip",
		"dist/notes/MATH_algebra.md": "skip",
		"deep/scripts/gen.md":        "skip",
		"deep/.github/workflow.md":   "skip",
		"private/secret.md":          "user excluded",
		"drafts/TODO.md":             "user excluded by name",
		"photos/holiday.jpeg":        "jpeg",
		"photos/holiday.tiff":        "ignored",
	})

	c := NewCollector()
	c.ExcludeDirs = append(c.ExcludeDirs, "private")
	c.ExcludeFiles = append(c.ExcludeFiles, "TODO.md")
	c.IgnoreDirFunc = func(dir string) bool { return filepath.Base(dir) == "drafts" }

	out, err := c.Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH_algebra.md", "sub/PHY_waves.MD", "sub/README.md"}, relPaths(out.Markdown))
	assert.Equal(t, []string{"CHEM_bonds.pdf"}, relPaths(out.PDFs))
	assert.Equal(t, []string{"BIO_cells.docx", "old/HIST_rome.doc"}, relPaths(out.Documents))
	assert.Equal(t, []string{"fig1.png", "img/deep/diagram.SVG", "photos/holiday.jpeg"}, relPaths(out.Images))
	assert.Equal(t, 6, out.PageSources())
	assert.Empty(t, out.Errors)
}

func TestCollectMissingRootIsFatal(t *testing.T) {
	_, err := NewCollector().Collect(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrContentRootInvalid)
}

func TestCollectRootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "x"})
	_, err := NewCollector().Collect(filepath.Join(root, "a.md"))
	require.ErrorIs(t, err, ErrContentRootInvalid)
}

func TestCollectEmptyRoot(t *testing.T) {
	out, err := NewCollector().Collect(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, out.PageSources())
	assert.Empty(t, out.Images)
}

func TestKindForPath(t *testing.T) {
	assert.Equal(t, KindMarkdown, KindForPath("a/B.Md"))
	assert.Equal(t, KindPDF, KindForPath("x.PDF"))
	assert.Equal(t, KindDocument, KindForPath("x.doc"))
	assert.Equal(t, KindImage, KindForPath("x.webp"))
	assert.Equal(t, KindImage, KindForPath("x.bmp"))
	assert.Equal(t, KindUnknown, KindForPath("x.txt"))
	assert.Equal(t, KindUnknown, KindForPath("Makefile"))
	assert.Equal(t, "document", KindDocument.String())
}

func TestCollectUncleanRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"README.md": "readme",
		"MATH_a.md": "# A",
	})
	out, err := NewCollector().Collect(root + string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH_a.md"}, relPaths(out.Markdown))
}
