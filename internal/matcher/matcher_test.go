package matcher

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/skillgap/internal/skills"
)

func TestIsSimilar(t *testing.T) {
	m := New(nil)

	tests := []struct {
		a, b string
		want bool
	}{
		{"python", "python", true},
		{"PYTHON", "python", true},
		{"java", "javascript", false},
		{"javascript", "typescript", true},
		{"typescript", "javascript", true},
		{"sql", "postgresql", true},
		{"postgresql", "sql", true},
		{"kubernetes", "docker", true},
		{"react", "reactjs", true},
		{"go", "golang", false},
		{"docker", "django", false},
		{"", "python", false},
		{"go", "", false},
		{"  ", "go", false},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"~"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsSimilar(tt.a, tt.b))
		})
	}
}

func TestIsSimilarLexicon(t *testing.T) {
	lex := NewMapLexicon([]LemmaPair{
		{SynsetID: "teamwork.n.01", Lemma: "teamwork"},
		{SynsetID: "teamwork.n.01", Lemma: "collaboration"},
		{SynsetID: "ml.n.01", Lemma: "machine_learning"},
		{SynsetID: "ml.n.01", Lemma: "ML"},
	})
	assert.Equal(t, 4, lex.Len())

	without := New(nil)
	assert.False(t, without.IsSimilar("collaboration", "teamwork"))

	m := New(nil, WithLexicon(lex))
	assert.True(t, m.IsSimilar("collaboration", "teamwork"))
	assert.True(t, m.IsSimilar("ml", "machine learning"))
	assert.False(t, m.IsSimilar("teamwork", "machine learning"))
	assert.False(t, m.IsSimilar("cobol", "fortran"))
}

type failingLexicon struct{}

func (failingLexicon) Synsets(string) ([]Synset, error) {
	return nil, errors.New("lexicon unavailable")
}

func TestIsSimilarLexiconFailsOpen(t *testing.T) {
	var buf bytes.Buffer
	m := New(nil, WithLexicon(failingLexicon{}), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	assert.False(t, m.IsSimilar("collaboration", "teamwork"))
	assert.True(t, m.IsSimilar("python", "python"))
	assert.Contains(t, buf.String(), "lexicon lookup failed")
}

func TestMapLexiconSynsets(t *testing.T) {
	lex := NewMapLexicon([]LemmaPair{
		{SynsetID: "b", Lemma: "Big Data"},
		{SynsetID: "a", Lemma: "big_data"},
		{SynsetID: "a", Lemma: "big_data"},
		{SynsetID: "", Lemma: "orphan"},
	})

	got, err := lex.Synsets("big data")
	require.NoError(t, err)
	assert.Equal(t, []Synset{
		{ID: "a", Lemmas: []string{"big_data"}},
		{ID: "b", Lemmas: []string{"big_data"}},
	}, got)

	got, err = lex.Synsets("orphan")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchSkills(t *testing.T) {
	m := New(nil)

	res := m.MatchSkills([]string{"django", "postgresql", "python"}, []string{"docker", "python", "sql"})
	assert.Equal(t, []string{"python", "sql"}, res.MatchingSkills)
	assert.Equal(t, []string{"docker"}, res.MissingSkills)
	assert.InDelta(t, 66.67, res.Percentage, 0.01)

	res = m.MatchSkills([]string{"python"}, nil)
	assert.Zero(t, res.Percentage)
	assert.Empty(t, res.MatchingSkills)
	assert.Empty(t, res.MissingSkills)

	res = m.MatchSkills(nil, []string{"go", "rust"})
	assert.Zero(t, res.Percentage)
	assert.Equal(t, []string{"go", "rust"}, res.MissingSkills)
}

func TestMatchSkillsPartitionsJobSkills(t *testing.T) {
	m := New(nil)
	resumes := [][]string{
		nil,
		{"python"},
		{"react", "node", "mysql"},
		{"kubernetes", "aws", "git", "scrum"},
	}
	jobs := [][]string{
		{"javascript", "typescript", "sql"},
		{"docker", "python", "java", "agile"},
		{"c++", "c#", "go"},
	}

	for _, r := range resumes {
		for _, j := range jobs {
			res := m.MatchSkills(r, j)
			require.Len(t, append(res.MatchingSkills, res.MissingSkills...), len(j))
			assert.ElementsMatch(t, j, append(append([]string{}, res.MatchingSkills...), res.MissingSkills...))
			assert.InDelta(t, 100*float64(len(res.MatchingSkills))/float64(len(j)), res.Percentage, 1e-9)

			for _, gap := range m.CalculateSkillGaps(r, j) {
				assert.NotContains(t, res.MatchingSkills, gap.Skill)
			}
		}
	}
}

func TestCalculateSkillGaps(t *testing.T) {
	m := New(nil)

	gaps := m.CalculateSkillGaps([]string{"django", "postgresql", "python"}, []string{"docker", "python", "sql"})
	require.Len(t, gaps, 1)
	assert.Equal(t, SkillGap{Skill: "docker", Importance: ImportanceHigh, RelatedSkillsOnResume: []string{}}, gaps[0])

	// "lambdas" is close to "lambda", a related skill of aws, but not to aws itself.
	gaps = m.CalculateSkillGaps([]string{"lambdas"}, []string{"aws"})
	require.Len(t, gaps, 1)
	assert.Equal(t, ImportanceMedium, gaps[0].Importance)
	assert.Equal(t, []string{"lambdas"}, gaps[0].RelatedSkillsOnResume)
}

func TestCalculateSkillGapsDeduplicatesEvidence(t *testing.T) {
	catalog, err := skills.Load([]byte(`
vocabulary:
  core: [rust]
groups: [core]
relations:
  rust: [crate, crates]
`))
	require.NoError(t, err)

	gaps := New(catalog).CalculateSkillGaps([]string{"cratesx"}, []string{"rust"})
	require.Len(t, gaps, 1)
	assert.Equal(t, []string{"cratesx"}, gaps[0].RelatedSkillsOnResume)
	assert.Equal(t, ImportanceMedium, gaps[0].Importance)
}

func TestGetRecommendations(t *testing.T) {
	m := New(nil)
	recs := m.GetRecommendations([]string{"python", "cobol", "machine learning"})
	require.Len(t, recs, 3)

	assert.Equal(t, "python", recs[0].Skill)
	require.Len(t, recs[0].Resources, 3)
	assert.Equal(t, "Python Official Documentation", recs[0].Resources[0].Name)
	assert.Equal(t, []string{"django", "flask", "fastapi"}, recs[0].RelatedSkills)
	assert.Equal(t, "4-6 weeks", recs[0].EstimatedTime)

	assert.Equal(t, []skills.Resource{
		{Name: `Search "cobol tutorial" on YouTube`, URL: "https://www.youtube.com/results?search_query=cobol+tutorial"},
		{Name: "Take an online course on Coursera, Udemy, or edX", URL: "https://www.coursera.org/search?query=cobol"},
		{Name: "Find projects on GitHub to practice", URL: "https://github.com/search?q=cobol+project"},
	}, recs[1].Resources)
	assert.Empty(t, recs[1].RelatedSkills)
	assert.Equal(t, "4-6 weeks", recs[1].EstimatedTime)

	assert.Equal(t, "https://www.coursera.org/search?query=machine+learning", recs[2].Resources[1].URL)
	assert.Equal(t, []string{"deep learning", "tensorflow", "pytorch"}, recs[2].RelatedSkills)
	assert.Equal(t, "8-12 weeks", recs[2].EstimatedTime)
}

func TestEstimateLearningTime(t *testing.T) {
	m := New(nil)
	assert.Equal(t, "4-6 weeks", m.EstimateLearningTime("cobol"))
	assert.Equal(t, "3-5 weeks", m.EstimateLearningTime("TypeScript"))
	assert.Equal(t, "1-2 weeks", m.EstimateLearningTime("git"))
	assert.Equal(t, "10-15 weeks", m.EstimateLearningTime("deep learning"))
}
