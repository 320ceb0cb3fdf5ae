package answer

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// RenderHTML converts the Markdown answer text to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(strings.TrimSpace(md)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
