package noteshub

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// SitemapGenerator writes a sitemap.xml of the landing page and every
// generated note page once the Finalize phase is done.
type SitemapGenerator struct {
	// BaseURL is the base URL for the site (e.g., "https://example.com/notes")
	BaseURL string

	// OutputPath is the path to write the sitemap (default: "sitemap.xml")
	OutputPath string

	// ChangeFreq is the default change frequency for pages (default: "weekly")
	ChangeFreq string

	// Priority is the default priority for pages (default: 0.5)
	Priority float64

	// ExcludePatterns are glob patterns for output paths to exclude from the sitemap
	ExcludePatterns []string

	// collected page paths during build
	pages []string
}

type sitemapXML struct {
	XMLName xml.Name        `xml:"urlset"`
	XMLNS   string          `xml:"xmlns,attr"`
	URLs    []sitemapURLXML `xml:"url"`
}

type sitemapURLXML struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// Register adds the sitemap generator to a site.
// This sets up hooks to collect pages during the build and write the sitemap at the end.
func (g *SitemapGenerator) Register(site *Site) {
	if g.OutputPath == "" {
		g.OutputPath = "sitemap.xml"
	}
	if g.ChangeFreq == "" {
		g.ChangeFreq = "weekly"
	}
	if g.Priority == 0 {
		g.Priority = 0.5
	}
	if site.Hooks == nil {
		site.Hooks = NewHookRegistry()
	}

	// Reset pages at start of build
	site.Hooks.OnPhaseStart(PhaseDiscover, func(ctx *BuildContext) {
		g.pages = nil
	})

	site.Hooks.OnFileProcessed(func(ctx *BuildContext, res *Resource, result RenderResult) {
		for _, out := range result.Outputs {
			if strings.HasSuffix(out, ".html") && !g.shouldExclude(out) {
				g.pages = append(g.pages, out)
			}
		}
	})

	site.Hooks.OnPhaseEnd(PhaseFinalize, func(ctx *BuildContext) {
		data, err := g.Render(ctx.Site.Now())
		if err == nil {
			err = ctx.Site.Output.WriteFile(g.OutputPath, data)
		}
		if err != nil {
			ctx.AddError(g.OutputPath, fmt.Errorf("sitemap generation failed: %w", err))
			return
		}
		ctx.Outputs = append(ctx.Outputs, g.OutputPath)
	})
}

func (g *SitemapGenerator) shouldExclude(p string) bool {
	for _, pattern := range g.ExcludePatterns {
		if matched, _ := path.Match(pattern, p); matched {
			return true
		}
	}
	return false
}

// Render produces the sitemap document for the pages collected so far.  The
// landing page is always listed first.
func (g *SitemapGenerator) Render(lastMod time.Time) ([]byte, error) {
	sitemap := sitemapXML{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}
	base := strings.TrimSuffix(g.BaseURL, "/")
	for _, page := range append([]string{""}, g.pages...) {
		entry := sitemapURLXML{
			Loc:        base + "/" + escapePath(page),
			ChangeFreq: g.ChangeFreq,
			Priority:   g.Priority,
		}
		if !lastMod.IsZero() {
			entry.LastMod = lastMod.Format("2006-01-02")
		}
		sitemap.URLs = append(sitemap.URLs, entry)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
