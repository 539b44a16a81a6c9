package noteshub

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sigroup/noteshub/logfields"
)

// Directory names never descended into, at any depth.
var DefaultExcludeDirs = []string{".git", "dist", "node_modules", ".github", "scripts"}

// File names skipped when they sit directly in the content root.
var DefaultExcludeFiles = []string{
	"README.md",
	"SETUP_INSTRUCTIONS.md",
	"IMPLEMENTATION_COMPLETE.md",
	"QUICK_START.md",
	"DEPLOYMENT_FIX.md",
}

// Collector walks a content root and classifies what it finds.
type Collector struct {
	ExcludeDirs  []string
	ExcludeFiles []string

	// When walking the content root for files, this callback specify which directories
	// are to be ignored (in addition to ExcludeDirs).
	IgnoreDirFunc func(dirpath string) bool
}

// Collection is the classified result of a walk.  Within each kind, files
// are in lexical order of their path.
type Collection struct {
	Markdown  []*Resource
	PDFs      []*Resource
	Documents []*Resource
	Images    []*Resource

	// Non-fatal problems found while walking (eg unreadable sub directories)
	Errors []*FileError
}

// Total number of files that will be turned into pages.
func (c *Collection) PageSources() int {
	return len(c.Markdown) + len(c.PDFs) + len(c.Documents)
}

// NewCollector returns a Collector with the default exclusion lists.
func NewCollector() *Collector {
	return &Collector{
		ExcludeDirs:  append([]string(nil), DefaultExcludeDirs...),
		ExcludeFiles: append([]string(nil), DefaultExcludeFiles...),
	}
}

// Collect recursively enumerates root.  Only an unreadable root is fatal.
func (c *Collector) Collect(root string) (*Collection, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentRootInvalid, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentRootInvalid, root)
	}

	excludeDirs := toSet(c.ExcludeDirs)
	excludeFiles := toSet(c.ExcludeFiles)
	out := &Collection{}

	err = filepath.WalkDir(root, func(fullpath string, entry fs.DirEntry, err error) error {
		if err != nil {
			if fullpath == root {
				return err
			}
			rel, _ := filepath.Rel(root, fullpath)
			slog.Warn("Skipping unreadable path", logfields.Path(rel), logfields.Error(err))
			out.Errors = append(out.Errors, &FileError{File: filepath.ToSlash(rel), Err: err})
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if fullpath == root {
				return nil
			}
			if excludeDirs[entry.Name()] || (c.IgnoreDirFunc != nil && c.IgnoreDirFunc(fullpath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Dir(fullpath) == root && excludeFiles[entry.Name()] {
			return nil
		}

		res, err := NewResource(root, fullpath)
		if err != nil {
			return err
		}
		switch res.Kind {
		case KindMarkdown:
			out.Markdown = append(out.Markdown, res)
		case KindPDF:
			out.PDFs = append(out.PDFs, res)
		case KindDocument:
			out.Documents = append(out.Documents, res)
		case KindImage:
			out.Images = append(out.Images, res)
		default:
			return nil
		}
		slog.Debug("Discovered file", logfields.File(res.RelPath), logfields.Kind(res.Kind.String()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentRootInvalid, err)
	}
	return out, nil
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}
