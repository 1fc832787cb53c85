// Package resume extracts contact details, skills, experience and education
// from the plain text of a résumé.
package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/muhammadolammi/skillgap/internal/sections"
	"github.com/muhammadolammi/skillgap/internal/skills"
)

// ContactInfo holds the candidate's name, email and phone. Missing fields are empty.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ExperienceEntry is one position harvested from the experience section.
type ExperienceEntry struct {
	Company     string   `json:"company"`
	Position    string   `json:"position,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description []string `json:"description"`
}

// EducationEntry is one institution harvested from the education section.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period,omitempty"`
}

// Record is the structured form of a résumé.
type Record struct {
	Contact    ContactInfo       `json:"contact"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	RawText    string            `json:"raw_text"`
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// phoneRe groups cover the whole number: country code, area code, exchange, line.
	phoneRe = regexp.MustCompile(`(\+\d{1,3}[-. ]?)?(\d{3}[-. ]?)?(\d{3}[-. ]?)(\d{4})`)

	// dateRangeRe matches "Jan 2020 - Present", "03/2019 to 05/2021", "June 2018 – 2020".
	dateRangeRe = regexp.MustCompile(`(?i)` + dateToken + `\s*(?:-|to|–)\s*(?:` + dateToken + `|present|current)`)

	skillSplitRe = regexp.MustCompile(`[,•|·▪]`)
)

const dateToken = `(?:\d{1,2}/\d{4}|\d{1,2}-\d{4}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.? \d{4})`

var (
	skillHeadings      = []string{"skills", "technical skills", "proficiencies", "competencies"}
	experienceHeadings = []string{"experience", "work experience", "employment", "work history"}
	educationHeadings  = []string{"education", "academic background", "qualifications"}

	experienceEnd = []string{"education", "skills", "technical skills", "projects", "certifications", "references"}
	educationEnd  = []string{"experience", "work experience", "employment", "work history", "skills", "technical skills", "projects", "certifications", "references"}
	skillsEnd     = append(append([]string{}, experienceHeadings...), "education", "academic background", "projects", "certifications", "references")
)

const (
	maxSkillLines      = 20
	maxExperienceLines = 30
	maxEducationLines  = 20
)

// Parser turns résumé text into a Record using a skill catalogue.
type Parser struct {
	catalog *skills.Catalog
}

// NewParser returns a parser bound to catalog. A nil catalog selects skills.Default().
func NewParser(catalog *skills.Catalog) *Parser {
	if catalog == nil {
		catalog = skills.Default()
	}
	return &Parser{catalog: catalog}
}

// Analyze extracts a Record from text. Absent fields are left empty; it never fails.
func Analyze(text string) Record {
	return NewParser(nil).Analyze(text)
}

// Analyze extracts a Record from text.
func (p *Parser) Analyze(text string) Record {
	return Record{
		Contact:    ExtractContact(text),
		Skills:     p.ExtractSkills(text),
		Experience: ExtractExperience(text),
		Education:  ExtractEducation(text),
		RawText:    text,
	}
}

// ExtractContact finds the first email, the first phone number and a name
// taken from the first non-blank line.
func ExtractContact(text string) ContactInfo {
	var c ContactInfo
	c.Email = emailRe.FindString(text)

	if m := phoneRe.FindStringSubmatch(text); m != nil {
		var b strings.Builder
		for _, part := range m[1:] {
			b.WriteString(part)
		}
		c.Phone = b.String()
	}

	for _, line := range sections.SplitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) == 2 || len(words) == 3 {
			c.Name = line
		} else {
			c.Name = strings.Join(words[:min(2, len(words))], " ")
		}
		break
	}
	return c
}

// ExtractSkills returns the union of vocabulary terms found anywhere in text
// and tokens listed under a skills heading, sorted and deduplicated.
func (p *Parser) ExtractSkills(text string) []string {
	found := p.catalog.Scan(text)
	seen := make(map[string]bool, len(found))
	for _, s := range found {
		seen[s] = true
	}

	windows := sections.Find(text, sections.Rules{
		Headings:    skillHeadings,
		Terminators: skillsEnd,
		MaxLines:    maxSkillLines,
	})
	for _, w := range windows {
		lines := append([]string{w.Inline}, w.Lines...)
		for _, line := range lines {
			for _, item := range skillSplitRe.Split(line, -1) {
				item = strings.ToLower(sections.StripBullet(item))
				item = strings.TrimRight(item, ".;:")
				if utf8.RuneCountInString(item) < 2 || seen[item] || p.catalog.IsStopWord(item) {
					continue
				}
				seen[item] = true
				found = append(found, item)
			}
		}
	}
	return skills.SortedUnique(found)
}
