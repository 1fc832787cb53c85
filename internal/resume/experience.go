package resume

import (
	"strings"

	"github.com/muhammadolammi/skillgap/internal/sections"
)

// descriptionFrom is the first section line index (heading = 0) that may
// become a description line.
const descriptionFrom = 3

type experienceState int

const (
	seekingCompany experienceState = iota
	collectingDescription
)

// labelPrefixes mark form-style label lines that are never descriptions.
var labelPrefixes = []string{"Company", "Position", "Duration"}

// experienceParser accumulates entries line by line. An entry is emitted
// as soon as it has a company and one description line; the state then
// resets so a section can yield several entries.
type experienceParser struct {
	state   experienceState
	current ExperienceEntry
	entries []ExperienceEntry
	seen    map[string]bool
}

func newExperienceParser() *experienceParser {
	return &experienceParser{seen: make(map[string]bool)}
}

// feed consumes the line at section index i (heading excluded, so i >= 1).
func (p *experienceParser) feed(i int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	switch p.state {
	case seekingCompany:
		if sections.IsBullet(line) {
			p.attachToLast(i, line)
			return
		}
		if isDateOnly(line) {
			p.setDuration(line)
			return
		}
		p.current.Company, p.current.Position = parseCompanyLine(line)
		p.setDuration(line)
		p.state = collectingDescription
	case collectingDescription:
		p.setDuration(line)
		if i >= descriptionFrom && !hasLabelPrefix(line) && !isDateOnly(line) {
			p.current.Description = append(p.current.Description, sections.StripBullet(line))
		}
		if p.current.Company != "" && len(p.current.Description) > 0 {
			p.emit()
		}
	}
}

func (p *experienceParser) setDuration(line string) {
	if p.current.Duration != "" {
		return
	}
	if m := dateRangeRe.FindString(line); m != "" {
		p.current.Duration = m
	}
}

// attachToLast appends bullet lines that follow an emitted entry to it, so
// a multi-bullet position does not turn each bullet into a company.
func (p *experienceParser) attachToLast(i int, line string) {
	if len(p.entries) == 0 || i < descriptionFrom || hasLabelPrefix(line) {
		return
	}
	last := &p.entries[len(p.entries)-1]
	last.Description = append(last.Description, sections.StripBullet(line))
}

func (p *experienceParser) emit() {
	key := strings.ToLower(p.current.Company) + "|" + strings.ToLower(p.current.Duration)
	if !p.seen[key] {
		p.seen[key] = true
		p.entries = append(p.entries, p.current)
	}
	p.current = ExperienceEntry{}
	p.state = seekingCompany
}

// parseCompanyLine reads "<position> at <company>" or "<company> - <position>".
// Any other line is taken as the company alone.
func parseCompanyLine(line string) (company, position string) {
	if pos, comp, ok := strings.Cut(line, " at "); ok {
		return strings.TrimSpace(comp), strings.TrimSpace(pos)
	}
	if comp, pos, ok := strings.Cut(line, " - "); ok {
		return strings.TrimSpace(comp), strings.TrimSpace(pos)
	}
	return line, ""
}

// isDateOnly reports whether line holds nothing but a date range.
func isDateOnly(line string) bool {
	m := dateRangeRe.FindString(line)
	return m != "" && strings.Trim(strings.Replace(line, m, "", 1), " ()|,.") == ""
}

func hasLabelPrefix(line string) bool {
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// ExtractExperience parses every experience section window. Entries that
// never gain a description line are dropped.
func ExtractExperience(text string) []ExperienceEntry {
	windows := sections.Find(text, sections.Rules{
		Headings:    experienceHeadings,
		Terminators: experienceEnd,
		MaxLines:    maxExperienceLines,
	})

	p := newExperienceParser()
	for _, w := range windows {
		p.state = seekingCompany
		p.current = ExperienceEntry{}
		for i, line := range w.Lines {
			p.feed(i+1, line)
		}
	}
	return p.entries
}
