// Package jobpost turns the text of a job posting into a structured Record:
// company, required and preferred skills, experience and education requirements.
package jobpost

import (
	"regexp"
	"strings"

	"github.com/muhammadolammi/skillgap/internal/sections"
	"github.com/muhammadolammi/skillgap/internal/skills"
)

// Record is the structured form of a job posting.
type Record struct {
	Title           string                `json:"title"`
	Company         string                `json:"company"`
	RequiredSkills  []string              `json:"required_skills"`
	PreferredSkills []string              `json:"preferred_skills"`
	ExperienceReq   ExperienceRequirement `json:"experience_req"`
	EducationReq    EducationRequirement  `json:"education_req"`
	RawText         string                `json:"raw_text"`
}

// minSectionSkills is the count below which required skills fall back to a
// whole-text scan.
const minSectionSkills = 3

const (
	maxRequiredLines  = 30
	maxPreferredLines = 15
	companyScanLines  = 10
)

var (
	requiredHeadings  = []string{"requirements", "qualifications", "skills required", "required skills", "key skills", "technical skills"}
	preferredHeadings = []string{"preferred", "plus", "nice to have", "bonus", "additionally", "desirable"}
	postingEnd        = []string{"benefits", "about us", "company", "application", "how to apply"}

	// companyIndicators are tried in order on each of the first lines.
	companyIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcompany:\s*(.*)`),
		regexp.MustCompile(`(?i)\borganization:\s*(.*)`),
		regexp.MustCompile(`(?i)\bemployer:\s*(.*)`),
		regexp.MustCompile(`(?i)\bat\s+(.*)`),
		regexp.MustCompile(`(?i)\bwith\s+(.*)`),
	}
)

// Analyzer extracts job records using a skill catalogue.
type Analyzer struct {
	catalog *skills.Catalog
}

// NewAnalyzer returns an analyzer bound to catalog. A nil catalog selects skills.Default().
func NewAnalyzer(catalog *skills.Catalog) *Analyzer {
	if catalog == nil {
		catalog = skills.Default()
	}
	return &Analyzer{catalog: catalog}
}

// Analyze extracts a Record from text using the default catalogue.
func Analyze(text, title string) Record {
	return NewAnalyzer(nil).Analyze(text, title)
}

// Analyze extracts a Record from text. It never fails; absent fields stay empty.
func (a *Analyzer) Analyze(text, title string) Record {
	required := a.ExtractRequiredSkills(text)
	return Record{
		Title:           title,
		Company:         ExtractCompany(text),
		RequiredSkills:  required,
		PreferredSkills: a.preferredExcluding(text, required),
		ExperienceReq:   a.ExtractExperienceRequirement(text),
		EducationReq:    ExtractEducationRequirement(text),
		RawText:         text,
	}
}

// ExtractCompany looks for a company indicator in the first lines and falls
// back to the second line of the text.
func ExtractCompany(text string) string {
	lines := sections.SplitLines(text)
	for _, line := range lines[:min(companyScanLines, len(lines))] {
		for _, re := range companyIndicators {
			if m := re.FindStringSubmatch(line); m != nil {
				if company := strings.TrimSpace(m[1]); company != "" {
					return company
				}
			}
		}
	}
	if len(lines) > 1 {
		return strings.TrimSpace(lines[1])
	}
	return ""
}

// ExtractRequiredSkills scans requirement sections, or the whole text when
// there are none, for vocabulary skills. Fewer than three distinct skills
// widens the scan to the whole text.
func (a *Analyzer) ExtractRequiredSkills(text string) []string {
	windows := sections.Find(text, sections.Rules{
		Headings:    requiredHeadings,
		Terminators: append(append([]string{}, postingEnd...), preferredHeadings...),
		MaxLines:    maxRequiredLines,
	})

	var lines []string
	if len(windows) == 0 {
		lines = sections.SplitLines(text)
	}
	for _, w := range windows {
		lines = append(lines, w.Inline)
		lines = append(lines, w.Lines...)
	}

	found := skills.SortedUnique(a.scanLines(lines))
	if len(found) < minSectionSkills {
		found = skills.SortedUnique(append(found, a.catalog.Scan(text)...))
	}
	return found
}

// ExtractPreferredSkills scans nice-to-have sections for vocabulary skills
// that are not already required.
func (a *Analyzer) ExtractPreferredSkills(text string) []string {
	return a.preferredExcluding(text, a.ExtractRequiredSkills(text))
}

func (a *Analyzer) preferredExcluding(text string, required []string) []string {
	windows := sections.Find(text, sections.Rules{
		Headings:    preferredHeadings,
		Terminators: append(append([]string{}, postingEnd...), requiredHeadings...),
		MaxLines:    maxPreferredLines,
	})

	exclude := make(map[string]bool, len(required))
	for _, s := range required {
		exclude[s] = true
	}

	var lines []string
	for _, w := range windows {
		lines = append(lines, w.Inline)
		lines = append(lines, w.Lines...)
	}
	out := []string{}
	for _, s := range skills.SortedUnique(a.scanLines(lines)) {
		if !exclude[s] {
			out = append(out, s)
		}
	}
	return out
}

// scanLines collects vocabulary skills from bullet, numbered and plain lines.
// A line such as "5+ years experience with AWS" is covered by the same
// whole-word scan, so the skill named next to a years figure is kept.
func (a *Analyzer) scanLines(lines []string) []string {
	var found []string
	for _, line := range lines {
		item := sections.StripBullet(line)
		if item == "" {
			continue
		}
		found = append(found, a.catalog.Scan(item)...)
	}
	return found
}
