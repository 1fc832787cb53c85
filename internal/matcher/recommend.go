package matcher

import (
	"fmt"
	"math"
	"net/url"

	"github.com/muhammadolammi/skillgap/internal/skills"
)

// maxRelatedInRecommendation caps the related skills listed per recommendation.
const maxRelatedInRecommendation = 3

// Recommendation tells the candidate how to pick up a missing skill.
type Recommendation struct {
	Skill         string            `json:"skill"`
	Resources     []skills.Resource `json:"resources"`
	RelatedSkills []string          `json:"related_skills"`
	EstimatedTime string            `json:"estimated_time"`
}

// GetRecommendations builds one recommendation per missing skill, in order.
func (m *Matcher) GetRecommendations(missingSkills []string) []Recommendation {
	recs := make([]Recommendation, 0, len(missingSkills))
	for _, skill := range missingSkills {
		resources := m.catalog.Resources(skill)
		if len(resources) == 0 {
			resources = genericResources(skill)
		}
		related := m.catalog.Related(skill)
		if len(related) > maxRelatedInRecommendation {
			related = related[:maxRelatedInRecommendation]
		}
		if related == nil {
			related = []string{}
		}
		recs = append(recs, Recommendation{
			Skill:         skill,
			Resources:     resources,
			RelatedSkills: related,
			EstimatedTime: m.EstimateLearningTime(skill),
		})
	}
	return recs
}

// EstimateLearningTime returns a week range "w-u weeks" where w is the
// skill's base weeks and u is w*1.5 rounded.
func (m *Matcher) EstimateLearningTime(skill string) string {
	w := m.catalog.BaseWeeks(skill)
	return fmt.Sprintf("%d-%d weeks", w, int(math.Round(float64(w)*1.5)))
}

func genericResources(skill string) []skills.Resource {
	q := url.QueryEscape(skill)
	return []skills.Resource{
		{Name: fmt.Sprintf("Search %q on YouTube", skill+" tutorial"), URL: "https://www.youtube.com/results?search_query=" + q + "+tutorial"},
		{Name: "Take an online course on Coursera, Udemy, or edX", URL: "https://www.coursera.org/search?query=" + q},
		{Name: "Find projects on GitHub to practice", URL: "https://github.com/search?q=" + q + "+project"},
	}
}
