package noteshub

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

// newTestSite returns an initialised site over a fresh content root with a
// fixed clock and no document converter.
func newTestSite(t *testing.T, files map[string]string) *Site {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	site := &Site{
		ContentRoot: root,
		OutputDir:   filepath.Join(t.TempDir(), "dist"),
		Converter:   UnavailableConverter{},
		Now:         func() time.Time { return fixedNow },
		Concurrency: 4,
	}
	return site.Init()
}

func buildSite(t *testing.T, site *Site) *BuildResult {
	t.Helper()
	result, err := site.Build(context.Background())
	require.NoError(t, err)
	return result
}

func readOutput(t *testing.T, site *Site, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(site.OutputDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// fakeConverter returns canned output for every document.
type fakeConverter struct {
	html string
	err  error
}

func (f *fakeConverter) Available() bool { return true }

func (f *fakeConverter) ConvertToHTML(ctx context.Context, path string) (string, error) {
	return f.html, f.err
}

func resourceFor(t *testing.T, site *Site, rel string) *Resource {
	t.Helper()
	res, err := NewResource(site.ContentRoot, filepath.Join(site.ContentRoot, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return res
}
