package noteshub

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestPrintSummary(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintSummary(&buf, &BuildResult{Pages: 3, OutputDir: "/site/dist"})
	assert.Equal(t, "✅ Generated 3 note page(s)\n📦 Output: /site/dist\n", buf.String())
}

func TestPrintSummaryWithSkippedFiles(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintSummary(&buf, &BuildResult{
		Pages:     1,
		OutputDir: "dist",
		Errors: []*FileError{
			{File: "BAD_note.md", Err: errors.New("invalid front matter")},
			{File: "x.pdf", Err: errors.New("permission denied")},
		},
	})
	assert.Equal(t, "✅ Generated 1 note page(s)\n📦 Output: dist\n⚠️ Skipped files:\n - BAD_note.md: invalid front matter\n - x.pdf: permission denied\n", buf.String())
}
