package noteshub

import (
	"bytes"
	"context"
	"fmt"
	"path"
)

// Rule turns one source file into its outputs.  There is one rule per
// ResourceKind.  A rule never stops the build: whatever goes wrong is
// reported as a Failure in the returned RenderResult.
type Rule interface {
	// Kind of resource this rule handles
	Kind() ResourceKind

	// Run processes a single resource
	Run(ctx context.Context, site *Site, res *Resource) RenderResult
}

// RenderResult is the tagged outcome of running a rule on one file.  Exactly
// one of Entry and Failure is set, except for images which produce neither
// on success.
type RenderResult struct {
	Entry   *IndexEntry
	Failure *FileError

	// Paths (relative to the output root) written for this file
	Outputs []string
}

func (r RenderResult) Failed() bool {
	return r.Failure != nil
}

// Succeeded builds a successful result.
func Succeeded(entry *IndexEntry, outputs ...string) RenderResult {
	return RenderResult{Entry: entry, Outputs: outputs}
}

// Failed builds a failed result for res.
func Failed(res *Resource, err error) RenderResult {
	return RenderResult{Failure: &FileError{File: res.RelPath, Err: err}}
}

// RunRule runs rule on res, turning a panic into a Failure.
func RunRule(ctx context.Context, rule Rule, site *Site, res *Resource) (result RenderResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Failed(res, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := ctx.Err(); err != nil {
		return Failed(res, err)
	}
	return rule.Run(ctx, site, res)
}

// CopyRule copies images into the output images folder keeping their path
// relative to the content root.
type CopyRule struct{}

func (c *CopyRule) Kind() ResourceKind {
	return KindImage
}

func (c *CopyRule) Run(ctx context.Context, site *Site, res *Resource) RenderResult {
	dest := path.Join(ImagesDir, res.RelPath)
	if err := site.Output.CopyFile(res.FullPath, dest); err != nil {
		return Failed(res, err)
	}
	return RenderResult{Outputs: []string{dest}}
}

// NotePagePath is the output path of the page for a source with the given base name.
func NotePagePath(base string) string {
	return NotesDir + "/" + base + ".html"
}

// writePage renders page and writes it to notes/<base>.html, returning the
// path written.
func (s *Site) writePage(base string, page *Page) (string, error) {
	page.Year = s.Now().Year()
	if page.Footer == "" {
		page.Footer = s.Footer
	}
	if page.TitleSuffix == "" {
		page.TitleSuffix = "Notes Hub"
	}

	var buf bytes.Buffer
	if err := s.Renderer.RenderPage(&buf, page); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	dest := NotePagePath(base)
	if err := s.Output.WriteFile(dest, buf.Bytes()); err != nil {
		return "", err
	}
	return dest, nil
}
