package noteshub

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sigroup/noteshub/funcs"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/anchor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Maximum number of characters (runes) kept in a card description.
const DescriptionLength = 160

var descriptionMarkup = strings.NewReplacer("#", " ", "*", " ", "`", " ", "[", " ", "]", " ", ">", " ")

// NewMarkdown creates the goldmark converter used for notes.  Raw HTML in
// notes is passed through and no typographic substitutions are made.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
			&anchor.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Describe derives the plain text card description of a markdown source.
// Markup characters become spaces, whitespace runs collapse and anything
// past DescriptionLength is cut and marked with an ellipsis.
func Describe(markdown string) string {
	plain := strings.Join(strings.Fields(descriptionMarkup.Replace(markdown)), " ")
	if utf8.RuneCountInString(plain) <= DescriptionLength {
		return plain
	}
	return string([]rune(plain)[:DescriptionLength]) + "…"
}

// noteFields are the values front matter may override.
type noteFields struct {
	Title       string
	Subject     string
	Description string
}

var frontMatterFields = map[string]string{
	"title":       "Title",
	"subject":     "Subject",
	"description": "Description",
}

func (n *noteFields) applyFrontMatter(data map[string]any) error {
	for key, field := range frontMatterFields {
		val, ok := data[key]
		if !ok || val == nil {
			continue
		}
		if err := SetNestedProp(n, funcs.ToString(val), field); err != nil {
			return err
		}
	}
	n.Subject = cases.Upper(language.Und).String(n.Subject)
	return nil
}

// MarkdownRule renders markdown notes into note pages.
type MarkdownRule struct {
	once sync.Once
	md   goldmark.Markdown
}

func (m *MarkdownRule) markdown() goldmark.Markdown {
	m.once.Do(func() {
		if m.md == nil {
			m.md = NewMarkdown()
		}
	})
	return m.md
}

func (m *MarkdownRule) Kind() ResourceKind {
	return KindMarkdown
}

func (m *MarkdownRule) Run(ctx context.Context, site *Site, res *Resource) RenderResult {
	fm, err := res.FrontMatter()
	if err != nil {
		return Failed(res, err)
	}

	meta := res.Meta()
	fields := noteFields{
		Title:       meta.Title,
		Subject:     meta.Subject,
		Description: Describe(string(fm.Body)),
	}
	if err := fields.applyFrontMatter(fm.Data); err != nil {
		return Failed(res, err)
	}

	var buf bytes.Buffer
	if err := m.markdown().Convert(fm.Body, &buf); err != nil {
		return Failed(res, err)
	}

	dest, err := site.writePage(meta.Base, &Page{
		Title:   fields.Title,
		Subject: fields.Subject,
		Body:    template.HTML(RewriteImageSources(buf.String())),
	})
	if err != nil {
		return Failed(res, err)
	}
	return Succeeded(&IndexEntry{
		Subject:     fields.Subject,
		Title:       fields.Title,
		Description: fields.Description,
		Link:        dest,
	}, dest)
}
