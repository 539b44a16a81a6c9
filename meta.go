package noteshub

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSubject is used for files whose name carries no subject prefix.
const DefaultSubject = "GENERAL"

// Metadata is what we can infer about a note purely from its file name.
// A name like "MATH_algebra-basics.md" yields subject MATH and title
// "algebra basics".
type Metadata struct {
	Subject string
	Title   string

	// File name without its extension.  Used as the identifier of the
	// generated page, so two sources with the same Base in one category
	// end up writing the same output file.
	Base string
}

// ParseMeta derives a Metadata from a file name (no directory component).
// It never fails; pathological names still give a usable triple.
func ParseMeta(filename string) Metadata {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "_")

	subject := DefaultSubject
	if len(parts) > 1 && parts[0] != "" {
		// cases.Caser is stateful so one is made per call
		subject = cases.Upper(language.Und).String(parts[0])
	}

	title := strings.TrimSpace(strings.ReplaceAll(strings.Join(parts[1:], " "), "-", " "))
	if title == "" {
		title = strings.NewReplacer("-", " ", ",", " ").Replace(base)
		title = strings.TrimSpace(title)
	}
	return Metadata{Subject: subject, Title: title, Base: base}
}
