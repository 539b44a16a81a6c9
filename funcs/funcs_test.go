package funcs

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "algebra-basics", Slugify("  Algebra, Basics! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "", ToString(nil))
}

func TestValuesToDict(t *testing.T) {
	d, err := ValuesToDict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, d)

	_, err = ValuesToDict("a")
	assert.Error(t, err)
	_, err = ValuesToDict(1, 2)
	assert.Error(t, err)
}

func TestFuncMapInTemplate(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(DefaultFuncMap()).Parse(`{{ Upper "math" }}|{{ Lower "PHY" }}|{{ Join "-" "a" "b" }}`))
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, nil))
	assert.Equal(t, "MATH|phy|a-b", buf.String())
}
