package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Doe
john.doe@email.com
555-123-4567

SUMMARY
Experienced software engineer.

EXPERIENCE
Software Engineer at Google
June 2020 - Present
• Developed scalable web applications using Go and React
• Led team of 4 developers

Startup Inc - Junior Developer
Jan 2018 - May 2020
• Built RESTful APIs using Python and Django

EDUCATION
Stanford University
Bachelor of Science in Computer Science
Sep 2014 - Jun 2018

SKILLS
Go, Python, JavaScript | Docker • Kubernetes
Team player
`

func TestAnalyzeSampleResume(t *testing.T) {
	rec := Analyze(sampleResume)

	assert.Equal(t, ContactInfo{Name: "John Doe", Email: "john.doe@email.com", Phone: "555-123-4567"}, rec.Contact)
	assert.Equal(t, sampleResume, rec.RawText)

	assert.Equal(t, []string{"django", "docker", "go", "javascript", "kubernetes", "python", "react", "team player"}, rec.Skills)

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, ExperienceEntry{
		Company:  "Google",
		Position: "Software Engineer",
		Duration: "June 2020 - Present",
		Description: []string{
			"Developed scalable web applications using Go and React",
			"Led team of 4 developers",
		},
	}, rec.Experience[0])
	assert.Equal(t, ExperienceEntry{
		Company:     "Startup Inc",
		Position:    "Junior Developer",
		Duration:    "Jan 2018 - May 2020",
		Description: []string{"Built RESTful APIs using Python and Django"},
	}, rec.Experience[1])

	require.Len(t, rec.Education, 1)
	assert.Equal(t, EducationEntry{
		Institution: "Stanford University",
		Degree:      "Bachelor of Science in Computer Science",
		Period:      "Sep 2014 - Jun 2018",
	}, rec.Education[0])
}

func TestAnalyzeEmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\n\t"} {
		rec := Analyze(text)
		assert.Equal(t, ContactInfo{}, rec.Contact)
		assert.Empty(t, rec.Skills)
		assert.Empty(t, rec.Experience)
		assert.Empty(t, rec.Education)
	}
}

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ContactInfo
	}{
		{
			name: "three word name and country code",
			text: "Mary Ann Smith\nmary@example.org | +1 555.123.4567",
			want: ContactInfo{Name: "Mary Ann Smith", Email: "mary@example.org", Phone: "+1 555.123.4567"},
		},
		{
			name: "long first line keeps two tokens",
			text: "\n\nJane Roe Senior Backend Engineer\nphone 123 4567",
			want: ContactInfo{Name: "Jane Roe", Phone: "123 4567"},
		},
		{
			name: "single token line",
			text: "Prince",
			want: ContactInfo{Name: "Prince"},
		},
		{
			name: "first email wins",
			text: "A B\nfirst@a.io second@b.io",
			want: ContactInfo{Name: "A B", Email: "first@a.io"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContact(tt.text))
		})
	}
}

func TestExtractSkillsSection(t *testing.T) {
	p := NewParser(nil)

	text := "Technical Skills: Elixir, Phoenix\n- Erlang\n• the, a\nGraphQL | gRPC\n\nProjects\nHomegrown CMS"
	got := p.ExtractSkills(text)

	assert.Equal(t, []string{"elixir", "erlang", "graphql", "grpc", "phoenix"}, got)
	assert.NotContains(t, got, "homegrown cms")
}

func TestExtractSkillsEndToEndResume(t *testing.T) {
	got := NewParser(nil).ExtractSkills("Skills: Python, Django, PostgreSQL")
	assert.Equal(t, []string{"django", "postgresql", "python"}, got)
}

func TestExperienceHeadingOnly(t *testing.T) {
	assert.Empty(t, ExtractExperience("Experience\n"))
	assert.Empty(t, ExtractExperience("Work History\n\nEducation\nMIT\nBSc"))
}

func TestExperienceEntryNeverCompletes(t *testing.T) {
	// A company with no description line is never emitted.
	assert.Empty(t, ExtractExperience("Experience\nAcme Corp - Engineer\nJan 2020 - Present\n"))
}

func TestExperienceDateBeforeCompany(t *testing.T) {
	got := ExtractExperience("Employment\n03/2019 to 05/2021\nGlobex - Analyst\nBuilt dashboards\n")
	require.Len(t, got, 1)
	assert.Equal(t, "Globex", got[0].Company)
	assert.Equal(t, "Analyst", got[0].Position)
	assert.Equal(t, "03/2019 to 05/2021", got[0].Duration)
	assert.Equal(t, []string{"Built dashboards"}, got[0].Description)
}

func TestExperienceDeduplicatesByCompanyAndDuration(t *testing.T) {
	text := "Experience\nEngineer at Acme\nJan 2020 - Present\nShipped things\n\n" +
		"Work Experience\nEngineer at Acme\nJan 2020 - Present\nShipped things\n"
	got := ExtractExperience(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Company)
}

func TestExperienceSkipsLabelLines(t *testing.T) {
	got := ExtractExperience("Experience\nInitech\nCompany: Initech\nPosition: Dev\nWrote TPS reports\n")
	require.Len(t, got, 1)
	assert.Equal(t, "Initech", got[0].Company)
	assert.Equal(t, []string{"Wrote TPS reports"}, got[0].Description)
}

func TestEducationMultipleEntries(t *testing.T) {
	text := "Education\nMIT\nBSc Computer Science\nSep 2010 - Jun 2014\nDean's List\nHarvard University\nMBA\n"
	got := ExtractEducation(text)
	assert.Equal(t, []EducationEntry{
		{Institution: "MIT", Degree: "BSc Computer Science", Period: "Sep 2010 - Jun 2014"},
		{Institution: "Harvard University", Degree: "MBA"},
	}, got)
}

func TestEducationKeepsPeriodAfterGradeLine(t *testing.T) {
	got := ExtractEducation("Education\nStanford University\nBS Computer Science\nGPA: 3.9/4.0\nSep 2014 - Jun 2018\n")
	assert.Equal(t, []EducationEntry{{
		Institution: "Stanford University",
		Degree:      "BS Computer Science",
		Period:      "Sep 2014 - Jun 2018",
	}}, got)
}

func TestEducationIncompleteEntry(t *testing.T) {
	assert.Empty(t, ExtractEducation("Education\nState College\n"))
	assert.Empty(t, ExtractEducation("Academic Background"))
}

func TestEducationStopsAtNextHeading(t *testing.T) {
	got := ExtractEducation("Qualifications\nOxford\nMSc Physics\nExperience\nEngineer at Acme\n")
	require.Len(t, got, 1)
	assert.Equal(t, EducationEntry{Institution: "Oxford", Degree: "MSc Physics"}, got[0])
}
