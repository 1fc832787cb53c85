package matcher

// Importance ranks a missing skill.
type Importance string

const (
	// ImportanceHigh marks a missing skill with no related evidence on the résumé.
	ImportanceHigh Importance = "high"
	// ImportanceMedium marks a missing skill with related résumé skills.
	ImportanceMedium Importance = "medium"
)

// MatchResult is the overlap between résumé skills and job skills.
// MatchingSkills and MissingSkills partition the job skills in job order.
type MatchResult struct {
	Percentage     float64  `json:"percentage"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// SkillGap is one missing job skill and the résumé skills related to it.
type SkillGap struct {
	Skill                 string     `json:"skill"`
	Importance            Importance `json:"importance"`
	RelatedSkillsOnResume []string   `json:"related_skills"`
}

// MatchSkills pairs every job skill with the first similar résumé skill.
// The first compatible résumé skill wins, not the closest one.
func (m *Matcher) MatchSkills(resumeSkills, jobSkills []string) MatchResult {
	res := MatchResult{MatchingSkills: []string{}, MissingSkills: []string{}}
	for _, js := range jobSkills {
		if m.firstSimilar(js, resumeSkills) != "" {
			res.MatchingSkills = append(res.MatchingSkills, js)
		} else {
			res.MissingSkills = append(res.MissingSkills, js)
		}
	}
	if len(jobSkills) > 0 {
		res.Percentage = 100 * float64(len(res.MatchingSkills)) / float64(len(jobSkills))
	}
	return res
}

func (m *Matcher) firstSimilar(skill string, candidates []string) string {
	for _, c := range candidates {
		if m.IsSimilar(skill, c) {
			return c
		}
	}
	return ""
}

// CalculateSkillGaps returns a gap for every missing job skill. Résumé skills
// similar to one of the missing skill's related skills count as evidence and
// lower its importance to medium.
func (m *Matcher) CalculateSkillGaps(resumeSkills, jobSkills []string) []SkillGap {
	missing := m.MatchSkills(resumeSkills, jobSkills).MissingSkills
	gaps := make([]SkillGap, 0, len(missing))
	for _, skill := range missing {
		evidence := []string{}
		seen := make(map[string]bool)
		for _, related := range m.catalog.Related(skill) {
			for _, rs := range resumeSkills {
				if !seen[rs] && m.IsSimilar(related, rs) {
					seen[rs] = true
					evidence = append(evidence, rs)
				}
			}
		}

		importance := ImportanceHigh
		if len(evidence) > 0 {
			importance = ImportanceMedium
		}
		gaps = append(gaps, SkillGap{Skill: skill, Importance: importance, RelatedSkillsOnResume: evidence})
	}
	return gaps
}
