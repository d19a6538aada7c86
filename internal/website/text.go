package website

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// maxTextBytes bounds the collected text, not the page. Markup and hidden
// elements are discarded as they stream past.
const maxTextBytes = 4 << 20

// Elements whose text content is never rendered.
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

var spaceRe = regexp.MustCompile(`[ \t\r\f\v]+`)

// ExtractText decodes r using the declared content type and returns the
// concatenated text with markup stripped. Line breaks inside the source
// text are preserved. Text beyond maxTextBytes is an error, never dropped.
func ExtractText(r io.Reader, contentType string) (string, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", eris.Wrap(err, "website: decode charset")
	}

	var (
		sb     strings.Builder
		hidden int
	)
	z := html.NewTokenizer(decoded)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", eris.Wrap(err, "website: read html")
			}
			return strings.TrimSpace(spaceRe.ReplaceAllString(sb.String(), " ")), nil
		case html.StartTagToken:
			if name, _ := z.TagName(); hiddenElements[string(name)] {
				hidden++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); hiddenElements[string(name)] && hidden > 0 {
				hidden--
			}
		case html.TextToken:
			if hidden > 0 {
				continue
			}
			text := z.Text()
			if sb.Len()+len(text) > maxTextBytes {
				return "", eris.Errorf("website: visible text exceeds %d bytes", maxTextBytes)
			}
			sb.Write(text)
		}
	}
}
