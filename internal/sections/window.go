// Package sections finds heuristically bounded spans of lines that start at a
// recognized heading and stop at the next recognized heading.
package sections

import (
	"regexp"
	"strings"
)

// maxHeadingLen is the longest trimmed line still treated as a heading.
const maxHeadingLen = 60

var (
	// headingMarkerRe strips markdown heading and emphasis markers.
	headingMarkerRe = regexp.MustCompile(`^[#*_\s]+`)
	bulletRe        = regexp.MustCompile(`^\s*(?:[•\-*▪·◦‣]\s*|\d+[.)]\s+)`)
)

// Window is one section: its heading line and the lines that follow it.
type Window struct {
	// Heading is the trimmed heading line.
	Heading string
	// Inline is text after a colon on the heading line, if any.
	Inline string
	// Lines are the raw lines after the heading, blank lines included.
	Lines []string
}

// Rules describe how a window opens and closes.
type Rules struct {
	Headings    []string
	Terminators []string
	MaxLines    int
}

// Heading reports whether line is a heading for one of keywords. The returned
// string is any inline content following a colon.
func Heading(line string, keywords []string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeadingLen && !strings.Contains(trimmed, ":") {
		return "", false
	}
	text := headingMarkerRe.ReplaceAllString(trimmed, "")
	head, inline, hasColon := strings.Cut(text, ":")
	head = strings.TrimRight(strings.ToLower(strings.TrimSpace(head)), "*_ ")
	if len(head) >= maxHeadingLen {
		return "", false
	}
	head = strings.TrimRight(head, ",.;")
	for _, kw := range keywords {
		if head == kw || qualifiedHeading(head, kw) {
			if hasColon {
				return strings.TrimSpace(inline), true
			}
			return "", true
		}
	}
	return "", false
}

// connectives mark a line as prose rather than a heading, e.g.
// "Experience with Go" is not the start of an experience section.
var connectives = map[string]bool{
	"with": true, "in": true, "of": true, "to": true, "for": true,
	"is": true, "a": true, "an": true, "the": true, "and": true, "on": true,
}

// qualifiedHeading accepts a keyword followed by at most two qualifier words,
// e.g. "preferred qualifications" for "preferred".
func qualifiedHeading(head, kw string) bool {
	rest, ok := strings.CutPrefix(head, kw+" ")
	if !ok {
		return false
	}
	words := strings.Fields(rest)
	if len(words) > 2 {
		return false
	}
	for _, w := range words {
		if connectives[w] {
			return false
		}
	}
	return true
}

// Find returns every window opened by a heading in rules.Headings. A window
// holds at most rules.MaxLines lines and stops early at a terminator or
// opening heading.
func Find(text string, rules Rules) []Window {
	lines := SplitLines(text)
	var windows []Window
	for i := 0; i < len(lines); i++ {
		inline, ok := Heading(lines[i], rules.Headings)
		if !ok {
			continue
		}
		w := Window{Heading: strings.TrimSpace(lines[i]), Inline: inline}
		j := i + 1
		for ; j < len(lines) && len(w.Lines) < rules.MaxLines; j++ {
			if _, stop := Heading(lines[j], rules.Terminators); stop {
				break
			}
			// A repeated opening heading starts a new window.
			if _, again := Heading(lines[j], rules.Headings); again {
				break
			}
			w.Lines = append(w.Lines, lines[j])
		}
		windows = append(windows, w)
		i = j - 1
	}
	return windows
}

// SplitLines splits text on \n, dropping \r.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// StripBullet removes a leading bullet glyph or list number.
func StripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

// IsBullet reports whether line starts with a bullet glyph or list number.
func IsBullet(line string) bool {
	return bulletRe.MatchString(line)
}
