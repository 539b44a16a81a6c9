package noteshub

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	gfn "github.com/panyam/goutils/fn"
)

// Defaults for the landing page header and footer.
const (
	DefaultSiteTitle    = "Student Initiative Group Notes Hub"
	DefaultSiteSubtitle = "IGNOU Study Notes & Resources"
)

// IndexEntry is one card on the landing page.  Link is relative to the
// output root (eg "notes/MATH_algebra-basics.html").
type IndexEntry struct {
	Subject     string
	Title       string
	Description string
	Link        string
}

// SubjectChip is a filter button.  Key is what cards are matched against.
type SubjectChip struct {
	Key   string
	Label string
}

// IndexCard is an IndexEntry with the lower cased keys the filter script uses.
type IndexCard struct {
	IndexEntry
	SubjectKey string
	TitleKey   string
}

// IndexPage is the view model of the landing page.
type IndexPage struct {
	Title    string
	Subtitle string
	Footer   string

	// In first seen order
	Subjects []SubjectChip

	// In entry order
	Cards []IndexCard

	TotalNotes int
	Date       string
	Timestamp  string
	Year       int
}

// BuildIndex aggregates entries (kept in the given order) into the landing page.
func BuildIndex(entries []*IndexEntry, now time.Time) *IndexPage {
	seen := map[string]bool{}
	var subjects []SubjectChip
	for _, entry := range entries {
		if seen[entry.Subject] {
			continue
		}
		seen[entry.Subject] = true
		subjects = append(subjects, SubjectChip{Key: strings.ToLower(entry.Subject), Label: entry.Subject})
	}

	return &IndexPage{
		Title:    DefaultSiteTitle,
		Subtitle: DefaultSiteSubtitle,
		Footer:   DefaultSiteTitle,
		Subjects: subjects,
		Cards: gfn.Map(entries, func(e *IndexEntry) IndexCard {
			return IndexCard{
				IndexEntry: *e,
				SubjectKey: strings.ToLower(e.Subject),
				TitleKey:   strings.ToLower(e.Title),
			}
		}),
		TotalNotes: len(entries),
		Date:       now.Format("1/2/2006"),
		Timestamp:  now.Format("1/2/2006, 3:04:05 PM"),
		Year:       now.Year(),
	}
}

// writeIndex renders the landing page into index.html.
func (s *Site) writeIndex(entries []*IndexEntry) error {
	page := BuildIndex(entries, s.Now())
	page.Title = s.Title
	page.Subtitle = s.Subtitle
	page.Footer = s.Footer

	var buf bytes.Buffer
	if err := s.Renderer.RenderIndex(&buf, page); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return s.Output.WriteFile("index.html", buf.Bytes())
}
