package jobpost

import (
	"regexp"
	"strconv"
	"strings"
)

// ExperienceRequirement holds the years of experience a posting asks for.
// Overall is nil when no general figure is stated.
type ExperienceRequirement struct {
	Overall  *int           `json:"overall"`
	Specific map[string]int `json:"specific"`
}

// EducationRequirement holds the degree level and field. Empty means not stated.
type EducationRequirement struct {
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}

const yearsPhrase = `(\d+)\+?\s*(?:years|yrs|yr)(?:\s+of)?\s+(?:experience|exp)\b`

var (
	yearsRe    = regexp.MustCompile(`(?i)` + yearsPhrase)
	followInRe = regexp.MustCompile(`(?i)^\s+in\s`)
	degreeRe   = regexp.MustCompile(`(?i)\b(bachelor['’]?s?|master['’]?s?|phd|doctorate|bs|ms|ba|ma)\b(?:\s+degree)?(?:\s+in\s+([^,.;\n]+))?`)
)

// ExtractExperienceRequirement reads the overall years figure and a years
// figure per vocabulary skill.
func (a *Analyzer) ExtractExperienceRequirement(text string) ExperienceRequirement {
	req := ExperienceRequirement{Specific: map[string]int{}}

	// The overall figure is the first one not scoped to a skill with "in".
	for _, m := range yearsRe.FindAllStringSubmatchIndex(text, -1) {
		if followInRe.MatchString(text[m[1]:]) {
			continue
		}
		if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil {
			req.Overall = &n
		}
		break
	}

	for _, skill := range a.catalog.Scan(text) {
		re := regexp.MustCompile(`(?i)` + yearsPhrase + `\s+(?:with|in)\s+` + regexp.QuoteMeta(skill) + `(?:\W|$)`)
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				req.Specific[skill] = n
			}
		}
	}
	return req
}

// ExtractEducationRequirement returns the first degree level mentioned and,
// when it is followed by "in <field>", the field up to the next punctuation.
func ExtractEducationRequirement(text string) EducationRequirement {
	m := degreeRe.FindStringSubmatch(text)
	if m == nil {
		return EducationRequirement{}
	}
	return EducationRequirement{Degree: m[1], Field: strings.TrimSpace(m[2])}
}
