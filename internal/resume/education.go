package resume

import (
	"strings"

	"github.com/muhammadolammi/skillgap/internal/sections"
)

// educationEmitFrom is the section line index (heading = 0) after which a
// complete entry is emitted without waiting for the period.
const educationEmitFrom = 4

type educationState int

const (
	seekingInstitution educationState = iota
	seekingDegree
	educationComplete
)

type educationParser struct {
	state   educationState
	current EducationEntry
	entries []EducationEntry
	seen    map[string]bool
}

func newEducationParser() *educationParser {
	return &educationParser{seen: make(map[string]bool)}
}

// feed consumes the line at section index i; last is the index of the
// window's last non-empty line. Informative lines that arrive once both
// institution and degree are set are ignored until the entry is emitted.
func (p *educationParser) feed(i, last int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	informative := !isDateOnly(line)
	if p.current.Period == "" {
		p.current.Period = dateRangeRe.FindString(line)
	}
	if informative {
		switch p.state {
		case seekingInstitution:
			p.current.Institution = line
			p.state = seekingDegree
		case seekingDegree:
			p.current.Degree = line
			p.state = educationComplete
		}
	}

	if p.state == educationComplete && (i >= educationEmitFrom || i == last) {
		p.emit()
	}
}

func (p *educationParser) emit() {
	key := strings.ToLower(p.current.Institution) + "|" + strings.ToLower(p.current.Degree)
	if !p.seen[key] {
		p.seen[key] = true
		p.entries = append(p.entries, p.current)
	}
	p.current = EducationEntry{}
	p.state = seekingInstitution
}

// ExtractEducation parses every education section window. An entry missing
// either institution or degree is never emitted.
func ExtractEducation(text string) []EducationEntry {
	windows := sections.Find(text, sections.Rules{
		Headings:    educationHeadings,
		Terminators: educationEnd,
		MaxLines:    maxEducationLines,
	})

	p := newEducationParser()
	for _, w := range windows {
		p.state = seekingInstitution
		p.current = EducationEntry{}

		last := 0
		for i, line := range w.Lines {
			if strings.TrimSpace(line) != "" {
				last = i + 1
			}
		}
		for i, line := range w.Lines {
			p.feed(i+1, last, line)
		}
	}
	return p.entries
}
