package noteshub

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConverterRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs cat")
	}
	doc := filepath.Join(t.TempDir(), "a.docx")
	require.NoError(t, os.WriteFile(doc, []byte("<p>converted</p>"), 0644))

	conv := &CommandConverter{Name: "cat", Command: "cat", Args: []string{"{input}"}}
	assert.True(t, conv.Available())
	out, err := conv.ConvertToHTML(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "<p>converted</p>", out)

	// without a placeholder the path is appended
	conv.Args = nil
	out, err = conv.ConvertToHTML(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "<p>converted</p>", out)
}

func TestCommandConverterFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs cat")
	}
	conv := &CommandConverter{Name: "cat", Command: "cat"}
	_, err := conv.ConvertToHTML(context.Background(), filepath.Join(t.TempDir(), "missing.docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cat:")
}

func TestUnavailableConverter(t *testing.T) {
	var conv DocumentConverter = UnavailableConverter{}
	assert.False(t, conv.Available())
	_, err := conv.ConvertToHTML(context.Background(), "x.docx")
	assert.ErrorIs(t, err, ErrConverterUnavailable)
}

func TestDetectConverter(t *testing.T) {
	assert.False(t, DetectConverter("none", nil).Available())
	assert.False(t, DetectConverter("", nil).Available())
	assert.False(t, DetectConverter("definitely-not-a-real-converter-binary", nil).Available())

	if runtime.GOOS != "windows" {
		conv := DetectConverter("cat", []string{"{input}"})
		require.True(t, conv.Available())
		cc, ok := conv.(*CommandConverter)
		require.True(t, ok)
		assert.Equal(t, []string{"{input}"}, cc.Args)
	}
}

func TestDetectConverterAutoWithEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.False(t, DetectConverter("auto", nil).Available())
}
