package noteshub

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultImagesURL is where relative image references point after rewriting.
// Pages live in notes/ and images in images/, hence the "..".
const DefaultImagesURL = "../images/"

var externalSrcRe = regexp.MustCompile(`(?i)^(https?:)?//`)

// RewriteImageSources rewrites relative <img src> values in an HTML
// fragment so they point into DefaultImagesURL.
func RewriteImageSources(content string) string {
	return RewriteImageSourcesTo(content, DefaultImagesURL)
}

// RewriteImageSourcesTo is RewriteImageSources with a custom asset prefix.
//
// External (http, https, protocol relative), data: and root-absolute
// sources are left alone.  For relative sources a single leading "./" and
// then a single leading "../" are dropped before the prefix is added.  Deeper
// traversals like "../../x" keep their remaining "../".
func RewriteImageSourcesTo(content, prefix string) string {
	if !strings.Contains(strings.ToLower(content), "<img") {
		return content
	}
	var out bytes.Buffer
	out.Grow(len(content) + 64)
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			// whatever was consumed before EOF (eg an unterminated tag) is kept as is
			out.Write(tokenizer.Raw())
			if tokenizer.Err() != io.EOF {
				return content
			}
			return out.String()
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			out.Write(tokenizer.Raw())
			continue
		}
		raw := string(tokenizer.Raw())
		name, hasAttr := tokenizer.TagName()
		if !bytes.Equal(name, []byte("img")) || !hasAttr {
			out.WriteString(raw)
			continue
		}

		var attrs []html.Attribute
		rewritten := false
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = tokenizer.TagAttr()
			attr := html.Attribute{Key: string(key), Val: string(val)}
			if !rewritten && attr.Key == "src" {
				if newSrc, ok := rewriteSrc(attr.Val, prefix); ok {
					attr.Val = newSrc
					rewritten = true
				}
			}
			attrs = append(attrs, attr)
		}
		if !rewritten {
			out.WriteString(raw)
			continue
		}
		writeImgTag(&out, attrs, tokenType == html.SelfClosingTagToken)
	}
}

// rewriteSrc returns the rewritten source and true if src is relative.
func rewriteSrc(src, prefix string) (string, bool) {
	switch {
	case src == "":
		return src, false
	case externalSrcRe.MatchString(src):
		return src, false
	case strings.HasPrefix(src, "data:"):
		return src, false
	case strings.HasPrefix(src, "/"):
		return src, false
	}
	normalized := strings.TrimPrefix(src, "./")
	normalized = strings.TrimPrefix(normalized, "../")
	return prefix + normalized, true
}

func writeImgTag(out *bytes.Buffer, attrs []html.Attribute, selfClosing bool) {
	out.WriteString("<img")
	for _, attr := range attrs {
		out.WriteByte(' ')
		out.WriteString(attr.Key)
		out.WriteString(`="`)
		out.WriteString(html.EscapeString(attr.Val))
		out.WriteByte('"')
	}
	if selfClosing {
		out.WriteString(" />")
	} else {
		out.WriteByte('>')
	}
}
