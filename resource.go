package noteshub

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// ResourceKind classifies a source file by what the pipeline does with it.
type ResourceKind int

const (
	// Files we do not know how to handle.  They are skipped silently.
	KindUnknown ResourceKind = iota

	// Markdown notes, rendered to HTML pages.
	KindMarkdown

	// PDFs, copied and wrapped in a viewer page.
	KindPDF

	// Word documents, copied and converted (when a converter is available).
	KindDocument

	// Images, copied as is into the output images folder.
	KindImage
)

func (k ResourceKind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindPDF:
		return "pdf"
	case KindDocument:
		return "document"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".bmp":  true,
}

// KindForPath classifies a path by its (case insensitive) extension.
func KindForPath(path string) ResourceKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".md":
		return KindMarkdown
	case ext == ".pdf":
		return KindPDF
	case ext == ".doc" || ext == ".docx":
		return KindDocument
	case imageExtensions[ext]:
		return KindImage
	}
	return KindUnknown
}

// All files in the content root are represented by the Resource type.  A
// Resource is created once per build during discovery and is not mutated
// afterwards, apart from lazily loading its front matter.
type Resource struct {
	// Fullpath of the Resource uniquely identifying it within a build
	FullPath string

	// Path relative to the content root, always with forward slashes
	RelPath string

	Kind ResourceKind

	frontMatter FrontMatter
}

// NewResource creates a resource for a file under root.
func NewResource(root, fullpath string) (*Resource, error) {
	rel, err := filepath.Rel(root, fullpath)
	if err != nil {
		return nil, err
	}
	return &Resource{
		FullPath: fullpath,
		RelPath:  filepath.ToSlash(rel),
		Kind:     KindForPath(fullpath),
	}, nil
}

// Returns the file name of the resource
func (r *Resource) Name() string {
	return filepath.Base(r.FullPath)
}

// Returns the metadata inferred from the resource's file name.
func (r *Resource) Meta() Metadata {
	return ParseMeta(r.Name())
}

// Reads the full raw content of the file (front matter included).
func (r *Resource) ReadAll() ([]byte, error) {
	return os.ReadFile(r.FullPath)
}

// Load's the resource's front matter and parses it if it has not been done so before.
// The body (content after the front matter) is kept on the FrontMatter.
func (r *Resource) FrontMatter() (*FrontMatter, error) {
	if r.frontMatter.Loaded {
		return &r.frontMatter, r.frontMatter.Error
	}
	r.frontMatter.Loaded = true
	data, err := r.ReadAll()
	if err != nil {
		r.frontMatter.Error = err
		return &r.frontMatter, err
	}
	r.frontMatter.Data = make(map[string]any)
	rest, err := frontmatter.Parse(bytes.NewReader(data), &r.frontMatter.Data)
	if err != nil {
		r.frontMatter.Error = fmt.Errorf("invalid front matter: %w", err)
		return &r.frontMatter, r.frontMatter.Error
	}
	r.frontMatter.Body = rest
	return &r.frontMatter, nil
}

// Each markdown Resource may have front matter.  Front matter is lazily loaded and
// parsed; the values can override what ParseMeta infers from the file name.
type FrontMatter struct {
	// Whether the front matter for the resource has been loaded or not
	Loaded bool

	// Parsed data from front matter
	Data map[string]any

	// Content after the front matter
	Body []byte

	Error error
}
