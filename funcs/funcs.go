package funcs

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonSlugChars = regexp.MustCompile("[^a-zA-Z0-9]+")

// DefaultFuncMap is available to the embedded templates and to theme
// templates.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"Now":     time.Now,
		"HTML":    func(s string) template.HTML { return template.HTML(s) },
		"CSS":     func(s string) template.CSS { return template.CSS(s) },
		"URL":     func(s string) template.URL { return template.URL(s) },
		"Lower":   strings.ToLower,
		"Upper":   func(s string) string { return cases.Upper(language.Und).String(s) },
		"String":  ToString,
		"Slugify": Slugify,
		"Join": func(delim string, parts ...string) string {
			return strings.Join(parts, delim)
		},
		"JoinA": func(delim string, parts []string) string {
			return strings.Join(parts, delim)
		},
		"HasPrefix": strings.HasPrefix,
		"Contains":  strings.Contains,
		"dict":      ValuesToDict,
	}
}

func ToString(v any) string {
	if val, ok := v.(string); ok {
		return val
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func Slugify(input string) string {
	// Remove special characters
	processedString := nonSlugChars.ReplaceAllString(input, " ")

	// Remove leading and trailing spaces
	processedString = strings.TrimSpace(processedString)

	// Replace spaces with dashes and lower case
	return strings.ToLower(strings.ReplaceAll(processedString, " ", "-"))
}

func ValuesToDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("invalid dict call")
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		dict[key] = values[i+1]
	}
	return dict, nil
}
