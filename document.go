package noteshub

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
)

// DocumentRule publishes word processing documents.  The original file is
// always offered for download; when the site has an available converter the
// converted HTML is shown instead of the bare download link.
type DocumentRule struct{}

func (d *DocumentRule) Kind() ResourceKind {
	return KindDocument
}

func (d *DocumentRule) Run(ctx context.Context, site *Site, res *Resource) RenderResult {
	name := res.Name()
	copied := DocsDir + "/" + name
	if err := site.Output.CopyFile(res.FullPath, copied); err != nil {
		return Failed(res, err)
	}

	body := downloadLink("../"+DocsDir+"/", name, "⬇️ Download DOCX")
	if conv := site.Converter; conv != nil && conv.Available() {
		converted, err := conv.ConvertToHTML(ctx, res.FullPath)
		if err != nil {
			return Failed(res, fmt.Errorf("converting document: %w", err))
		}
		if strings.TrimSpace(converted) != "" {
			body = converted
		}
	}

	meta := res.Meta()
	dest, err := site.writePage(meta.Base, &Page{
		Title:   meta.Title + " (DOCX)",
		Subject: meta.Subject,
		Body:    template.HTML(RewriteImageSources(body)),
	})
	if err != nil {
		return Failed(res, err)
	}
	return Succeeded(&IndexEntry{
		Subject:     meta.Subject,
		Title:       meta.Title,
		Description: "Word document",
		Link:        dest,
	}, copied, dest)
}

// downloadLink is the button linking to a copied original.
func downloadLink(dir, name, label string) string {
	href := html.EscapeString(dir + url.PathEscape(name))
	return fmt.Sprintf(`<p><a class="btn view-btn" href="%s" download>%s</a></p>`, href, label)
}
