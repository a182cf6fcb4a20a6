package webui

import (
	"fmt"
	"html"
	"math/rand/v2"
	"regexp"
	"strings"
)

var (
	urlPattern   = regexp.MustCompile(`(?i)https?://[^\s'"<>]+`)
	imagePattern = regexp.MustCompile(`(?i)^https?://[^\s'"<>]+\.(?:jpe?g|png|gif)(?:\?[^\s'"<>]+)?$`)
)

// RenderContent turns file content into safe HTML. Image URLs become
// <img> tags, everything else is escaped. Blank content is reported as a
// numbered error instead.
func RenderContent(content []byte) string {
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return html.EscapeString(EmptyFileMessage(1000 + rand.IntN(9000)))
	}

	var sb strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		url := text[loc[0]:loc[1]]
		if !imagePattern.MatchString(url) {
			continue
		}
		sb.WriteString(html.EscapeString(text[last:loc[0]]))
		fmt.Fprintf(&sb, `<img src="%s" alt="Image">`, html.EscapeString(url))
		last = loc[1]
	}
	sb.WriteString(html.EscapeString(text[last:]))
	return sb.String()
}

func EmptyFileMessage(code int) string {
	return fmt.Sprintf("Error %d: file is empty or corrupted.", code)
}
