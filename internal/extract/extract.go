// Package extract parses free-form message text into the fields a page is
// built from: a title, the first link, and hashtag/mention style tags.
package extract

import (
	"regexp"
	"strings"
)

var (
	urlRe = regexp.MustCompile(`https?://\S+`)
	tagRe = regexp.MustCompile(`\s[@#](\w+)`)
)

// Elements is what one message's text decomposes into.
// URL is empty when no link was found. Tags is nil (not empty) when no
// tag tokens were found, so callers can omit the property entirely.
type Elements struct {
	Title string
	URL   string
	Tags  []string
}

// Parse extracts Elements from text. It is deterministic and pure.
//
// The title is the first line, or the whole input when there are no line
// breaks. Only the first URL match is kept. A tag is any word preceded by
// whitespace and '@' or '#'; matches are returned in order of appearance and
// duplicates are preserved.
func Parse(text string) Elements {
	return Elements{
		Title: Title(text),
		URL:   urlRe.FindString(text),
		Tags:  tags(text),
	}
}

// Title returns the first line of text, or text itself if it is single-line.
func Title(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r")
}

func tags(text string) []string {
	matches := tagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
