package noteshub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeta(t *testing.T) {
	cases := []struct {
		filename string
		want     Metadata
	}{
		{"MATH_algebra-basics.md", Metadata{Subject: "MATH", Title: "algebra basics", Base: "MATH_algebra-basics"}},
		{"notes.md", Metadata{Subject: "GENERAL", Title: "notes", Base: "notes"}},
		{"_intro.md", Metadata{Subject: "GENERAL", Title: "intro", Base: "_intro"}},
		{"phy_waves_and-optics.pdf", Metadata{Subject: "PHY", Title: "waves and optics", Base: "phy_waves_and-optics"}},
		{"Physics, Notes-v2.md", Metadata{Subject: "GENERAL", Title: "Physics  Notes v2", Base: "Physics, Notes-v2"}},
		{"MATH_.md", Metadata{Subject: "MATH", Title: "MATH_", Base: "MATH_"}},
		{"archive.tar.gz", Metadata{Subject: "GENERAL", Title: "archive.tar", Base: "archive.tar"}},
		{".md", Metadata{Subject: "GENERAL", Title: "", Base: ""}},
		{"straße_grundlagen.md", Metadata{Subject: "STRASSE", Title: "grundlagen", Base: "straße_grundlagen"}},
	}
	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseMeta(tc.filename))
		})
	}
}
