package noteshub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFViewerPage(t *testing.T) {
	site := newTestSite(t, map[string]string{"CHEM_organic.pdf": "%PDF-1.4"})
	require.NoError(t, site.Output.EnsureLayout())

	result := RunRule(context.Background(), &PDFRule{}, site, resourceFor(t, site, "CHEM_organic.pdf"))
	require.False(t, result.Failed(), "%v", result.Failure)
	assert.Equal(t, &IndexEntry{
		Subject:     "CHEM",
		Title:       "organic",
		Description: "PDF note",
		Link:        "notes/CHEM_organic.html",
	}, result.Entry)
	assert.Equal(t, []string{"pdfs/CHEM_organic.pdf", "notes/CHEM_organic.html"}, result.Outputs)

	assert.Equal(t, "%PDF-1.4", readOutput(t, site, "pdfs/CHEM_organic.pdf"))
	page := readOutput(t, site, "notes/CHEM_organic.html")
	assert.Contains(t, page, "<title>organic - PDF Viewer</title>")
	assert.Contains(t, page, `<a class="btn view-btn" href="../pdfs/CHEM_organic.pdf" download>⬇️ Download PDF</a>`)
	assert.Contains(t, page, `<iframe class="pdf-frame" src="../pdfs/CHEM_organic.pdf"></iframe>`)
	assert.Contains(t, page, ".pdf-frame{width:100%;height:80vh;")
	assert.Contains(t, page, `<div class="note-content">`)
}

func TestPDFMissingSourceFails(t *testing.T) {
	site := newTestSite(t, nil)
	require.NoError(t, site.Output.EnsureLayout())

	result := RunRule(context.Background(), &PDFRule{}, site, resourceFor(t, site, "GONE_file.pdf"))
	require.True(t, result.Failed())
	assert.Equal(t, "GONE_file.pdf", result.Failure.File)
}
