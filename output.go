package noteshub

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sub directories of the output root.
const (
	NotesDir  = "notes"
	PDFsDir   = "pdfs"
	DocsDir   = "docs"
	ImagesDir = "images"
)

// OutputWriter owns everything under the output root.  All paths it takes are
// relative to Root and use forward slashes.
type OutputWriter struct {
	Root string
}

// EnsureLayout creates the output root and its sub directories.  Calling it
// on an existing tree is a no-op.
func (o *OutputWriter) EnsureLayout() error {
	for _, dir := range []string{"", NotesDir, PDFsDir, DocsDir, ImagesDir} {
		if err := os.MkdirAll(filepath.Join(o.Root, dir), 0755); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputLayout, err)
		}
	}
	return nil
}

// Path returns the absolute location of a relative output path.
func (o *OutputWriter) Path(rel string) string {
	return filepath.Join(o.Root, filepath.FromSlash(rel))
}

// WriteFile writes data at rel, creating parents and replacing any existing file.
func (o *OutputWriter) WriteFile(rel string, data []byte) error {
	dest := o.Path(rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

// CopyFile copies the file at src to rel, creating parents and replacing any existing file.
func (o *OutputWriter) CopyFile(src, rel string) error {
	dest := o.Path(rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteStylesheets writes the landing page and note page stylesheets.
func (o *OutputWriter) WriteStylesheets() error {
	for _, name := range []string{IndexStylesheet, NoteStylesheet} {
		data, err := stylesheet(name)
		if err != nil {
			return err
		}
		if err := o.WriteFile(name, data); err != nil {
			return err
		}
	}
	return nil
}
