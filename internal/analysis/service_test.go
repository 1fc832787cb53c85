package analysis

import (
	"bytes"
	"sync"
	"testing"

	"baliance.com/gooxml/document"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/skillgap/internal/doctext"
	"github.com/muhammadolammi/skillgap/internal/matcher"
)

const jobText = "Requirements\n- Python\n- Docker\n- 3+ years SQL"

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := document.New()
	for _, p := range paragraphs {
		doc.AddParagraph().AddRun().AddText(p)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return buf.Bytes()
}

func TestAnalyzeDocument(t *testing.T) {
	s := NewService(nil, zerolog.Nop())
	content := buildDocx(t, "Jane Doe", "jane@example.com", "Skills: Python, Django, PostgreSQL")

	report, err := s.AnalyzeDocument(content, "docx", jobText, "Backend Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", report.Resume.Contact.Name)
	assert.Equal(t, []string{"django", "postgresql", "python"}, report.Resume.Skills)
	assert.Equal(t, "Backend Engineer", report.Job.Title)
	assert.Equal(t, []string{"docker", "python", "sql"}, report.Job.RequiredSkills)

	assert.Equal(t, []string{"python", "sql"}, report.Match.MatchingSkills)
	assert.Equal(t, []string{"docker"}, report.Match.MissingSkills)
	assert.InDelta(t, 66.67, report.Match.Percentage, 0.01)

	require.Len(t, report.Gaps, 1)
	assert.Equal(t, matcher.SkillGap{Skill: "docker", Importance: matcher.ImportanceHigh, RelatedSkillsOnResume: []string{}}, report.Gaps[0])

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	assert.Equal(t, "docker", rec.Skill)
	assert.Len(t, rec.Resources, 3)
	assert.Equal(t, []string{"kubernetes", "containerization", "docker-compose"}, rec.RelatedSkills)
	assert.Equal(t, "3-5 weeks", rec.EstimatedTime)

	assert.Empty(t, report.Warnings)
}

func TestAnalyzeDocumentExtractionErrors(t *testing.T) {
	s := NewService(nil, zerolog.Nop())

	report, err := s.AnalyzeDocument([]byte("plain"), "txt", jobText, "")
	require.ErrorIs(t, err, doctext.ErrUnsupportedFormat)
	assert.Equal(t, Report{}, report)

	report, err = s.AnalyzeDocument([]byte("not a zip"), "docx", jobText, "")
	require.ErrorIs(t, err, doctext.ErrExtractionFailed)
	assert.Equal(t, Report{}, report)
}

func TestAnalyzeDocumentEmptyText(t *testing.T) {
	s := NewService(nil, zerolog.Nop())

	report, err := s.AnalyzeDocument(buildDocx(t, " "), "docx", jobText, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"resume: no usable text in input"}, report.Warnings)
	assert.Empty(t, report.Resume.Skills)
	assert.Empty(t, report.Resume.Experience)
	assert.Equal(t, []string{"docker", "python", "sql"}, report.Match.MissingSkills)
	assert.Zero(t, report.Match.Percentage)
}

func TestCompareEmptyJob(t *testing.T) {
	s := NewService(nil, zerolog.Nop())

	report := s.Compare("Skills: Go", "", "")
	assert.Equal(t, []string{"job: no usable text in input"}, report.Warnings)
	assert.Empty(t, report.Job.RequiredSkills)
	assert.Zero(t, report.Match.Percentage)
	assert.Empty(t, report.Gaps)
	assert.Empty(t, report.Recommendations)
}

func TestCompareWithLexicon(t *testing.T) {
	lex := matcher.NewMapLexicon([]matcher.LemmaPair{
		{SynsetID: "teamwork.n.01", Lemma: "teamwork"},
		{SynsetID: "teamwork.n.01", Lemma: "collaboration"},
	})
	s := NewService(nil, zerolog.Nop(), matcher.WithLexicon(lex))

	report := s.Compare("Skills: collaboration", "Requirements\n- Teamwork", "")
	assert.Equal(t, []string{"teamwork"}, report.Match.MatchingSkills)
	assert.Empty(t, report.Match.MissingSkills)
}

func TestCompareConcurrent(t *testing.T) {
	s := NewService(nil, zerolog.Nop())
	want := s.Compare("Skills: Python, Django, PostgreSQL", jobText, "")

	var wg sync.WaitGroup
	results := make([]Report, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Compare("Skills: Python, Django, PostgreSQL", jobText, "")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
