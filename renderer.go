package noteshub

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	gotl "github.com/panyam/templar"
	"github.com/sigroup/noteshub/funcs"
)

// Stylesheets written at the output root.
const (
	IndexStylesheet = "style.css"
	NoteStylesheet  = "note-style.css"
)

// Template names, both in the embedded set and in theme folders.
const (
	NoteTemplate  = "note.html"
	IndexTemplate = "index.html"
)

//go:embed templates/*.html templates/*.css
var templatesFS embed.FS

func stylesheet(name string) ([]byte, error) {
	return templatesFS.ReadFile("templates/" + name)
}

// Page is everything needed to render one standalone note page.
type Page struct {
	// Shown in the heading and (with TitleSuffix) in the document title
	Title       string
	TitleSuffix string

	Subject string

	// Rendered content of the note
	Body template.HTML

	// Extra page local CSS
	Style template.CSS

	// Viewer pages wrap their body in a div instead of an article
	Viewer bool

	Footer string
	Year   int
}

// PageRenderer is the templating layer.  Nothing else in the pipeline knows
// about page markup.
type PageRenderer interface {
	RenderPage(w io.Writer, page *Page) error
	RenderIndex(w io.Writer, index *IndexPage) error
}

// DefaultPageRenderer renders pages with the templates embedded in the binary.
type DefaultPageRenderer struct {
	note  *template.Template
	index *template.Template
}

func NewDefaultPageRenderer() (*DefaultPageRenderer, error) {
	note, err := template.New(NoteTemplate).Funcs(funcs.DefaultFuncMap()).ParseFS(templatesFS, "templates/"+NoteTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", NoteTemplate, err)
	}
	index, err := template.New(IndexTemplate).Funcs(funcs.DefaultFuncMap()).ParseFS(templatesFS, "templates/"+IndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", IndexTemplate, err)
	}
	return &DefaultPageRenderer{note: note, index: index}, nil
}

func (r *DefaultPageRenderer) RenderPage(w io.Writer, page *Page) error {
	return r.note.Execute(w, page)
}

func (r *DefaultPageRenderer) RenderIndex(w io.Writer, index *IndexPage) error {
	return r.index.Execute(w, index)
}

// TemplarPageRenderer renders pages with note.html and index.html loaded
// from theme folders, so templates can use templar's include directives.
type TemplarPageRenderer struct {
	Templates  *gotl.TemplateGroup
	LoaderList *gotl.LoaderList
}

func NewTemplarPageRenderer(folders ...string) *TemplarPageRenderer {
	r := &TemplarPageRenderer{
		Templates:  gotl.NewTemplateGroup(),
		LoaderList: &gotl.LoaderList{},
	}
	r.LoaderList.DefaultLoader = gotl.NewFileSystemLoader(folders...)
	r.Templates.Loader = r.LoaderList
	r.Templates.AddFuncs(funcs.DefaultFuncMap())
	return r
}

func (r *TemplarPageRenderer) RenderPage(w io.Writer, page *Page) error {
	return r.render(w, NoteTemplate, page)
}

func (r *TemplarPageRenderer) RenderIndex(w io.Writer, index *IndexPage) error {
	return r.render(w, IndexTemplate, index)
}

func (r *TemplarPageRenderer) render(w io.Writer, name string, data any) error {
	tmpl, err := r.Templates.Loader.Load(name, "")
	if err != nil {
		return fmt.Errorf("loading template %s: %w", name, err)
	}
	if err := r.Templates.RenderHtmlTemplate(w, tmpl[0], "", data, nil); err != nil {
		slog.Error("Error rendering template", "template", name, "error", err)
		return err
	}
	return nil
}
