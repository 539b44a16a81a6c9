package noteshub

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"net/url"
)

const pdfFrameStyle = ".pdf-frame{width:100%;height:80vh;border:1px solid var(--border);border-radius:12px}"

// PDFRule copies PDFs and wraps each in a viewer page.
type PDFRule struct{}

func (p *PDFRule) Kind() ResourceKind {
	return KindPDF
}

func (p *PDFRule) Run(ctx context.Context, site *Site, res *Resource) RenderResult {
	name := res.Name()
	copied := PDFsDir + "/" + name
	if err := site.Output.CopyFile(res.FullPath, copied); err != nil {
		return Failed(res, err)
	}

	src := html.EscapeString("../" + PDFsDir + "/" + url.PathEscape(name))
	body := downloadLink("../"+PDFsDir+"/", name, "⬇️ Download PDF") +
		fmt.Sprintf(`<iframe class="pdf-frame" src="%s"></iframe>`, src)

	meta := res.Meta()
	dest, err := site.writePage(meta.Base, &Page{
		Title:       meta.Title,
		TitleSuffix: "PDF Viewer",
		Subject:     meta.Subject,
		Body:        template.HTML(body),
		Style:       template.CSS(pdfFrameStyle),
		Viewer:      true,
	})
	if err != nil {
		return Failed(res, err)
	}
	return Succeeded(&IndexEntry{
		Subject:     meta.Subject,
		Title:       meta.Title,
		Description: "PDF note",
		Link:        dest,
	}, copied, dest)
}
