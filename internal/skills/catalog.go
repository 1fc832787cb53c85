// Package skills holds the curated skill vocabulary and its companion tables:
// the directed relation map, the difficulty map and the learning resources.
// A Catalog is read-only once loaded and safe for concurrent use.
package skills

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultBaseWeeks is the learning estimate for skills missing from the difficulty map.
const DefaultBaseWeeks = 4

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Resource is a named learning link.
type Resource struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type catalogFile struct {
	Vocabulary map[string][]string   `yaml:"vocabulary"`
	Groups     []string              `yaml:"groups"`
	Relations  map[string][]string   `yaml:"relations"`
	Difficulty map[string]int        `yaml:"difficulty"`
	Resources  map[string][]Resource `yaml:"resources"`
	StopWords  []string              `yaml:"stop_words"`
}

type term struct {
	label string
	re    *regexp.Regexp
}

// Catalog is the skill vocabulary plus its auxiliary tables.
type Catalog struct {
	terms      []term
	index      map[string]struct{}
	relations  map[string][]string
	difficulty map[string]int
	resources  map[string][]Resource
	stopWords  map[string]struct{}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalogue compiled into the binary. It is parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("skills: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a catalogue document. Every label is lower-cased.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Groups) == 0 {
		return nil, fmt.Errorf("catalog has no vocabulary groups")
	}

	c := &Catalog{
		index:      make(map[string]struct{}),
		relations:  make(map[string][]string, len(f.Relations)),
		difficulty: make(map[string]int, len(f.Difficulty)),
		resources:  make(map[string][]Resource, len(f.Resources)),
		stopWords:  make(map[string]struct{}, len(f.StopWords)),
	}

	for _, group := range f.Groups {
		labels, ok := f.Vocabulary[group]
		if !ok {
			return nil, fmt.Errorf("catalog group %q has no vocabulary", group)
		}
		for _, label := range labels {
			label = normalize(label)
			if label == "" {
				continue
			}
			if _, dup := c.index[label]; dup {
				continue
			}
			c.index[label] = struct{}{}
			c.terms = append(c.terms, term{label: label, re: wholeWord(label)})
		}
	}

	for skill, related := range f.Relations {
		out := make([]string, 0, len(related))
		for _, r := range related {
			out = append(out, normalize(r))
		}
		c.relations[normalize(skill)] = out
	}
	for skill, weeks := range f.Difficulty {
		if weeks <= 0 {
			return nil, fmt.Errorf("catalog difficulty for %q must be positive, got %d", skill, weeks)
		}
		c.difficulty[normalize(skill)] = weeks
	}
	for skill, res := range f.Resources {
		c.resources[normalize(skill)] = res
	}
	for _, w := range f.StopWords {
		c.stopWords[normalize(w)] = struct{}{}
	}
	return c, nil
}

// wholeWord matches label only when it is bounded by non-word characters or
// the ends of the text. Labels such as "c++" end in a non-word rune, so \b
// cannot be used.
func wholeWord(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\W)` + regexp.QuoteMeta(label) + `(?:\W|$)`)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Terms returns the vocabulary in scan order.
func (c *Catalog) Terms() []string {
	out := make([]string, len(c.terms))
	for i, t := range c.terms {
		out[i] = t.label
	}
	return out
}

// Scan returns every vocabulary term that occurs as a whole word in text,
// in vocabulary order.
func (c *Catalog) Scan(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, t := range c.terms {
		if t.re.MatchString(lower) {
			found = append(found, t.label)
		}
	}
	return found
}

// Related returns the curated related skills of skill. The map is directed.
func (c *Catalog) Related(skill string) []string {
	related := c.relations[normalize(skill)]
	if len(related) == 0 {
		return nil
	}
	return append([]string(nil), related...)
}

// IsRelated reports whether to appears in the relation list of from.
func (c *Catalog) IsRelated(from, to string) bool {
	to = normalize(to)
	for _, r := range c.relations[normalize(from)] {
		if r == to {
			return true
		}
	}
	return false
}

// BaseWeeks returns the weeks needed to reach basic proficiency.
func (c *Catalog) BaseWeeks(skill string) int {
	if w, ok := c.difficulty[normalize(skill)]; ok {
		return w
	}
	return DefaultBaseWeeks
}

// Resources returns the curated learning resources for skill, if any.
func (c *Catalog) Resources(skill string) []Resource {
	res := c.resources[normalize(skill)]
	if len(res) == 0 {
		return nil
	}
	return append([]Resource(nil), res...)
}

// IsStopWord reports whether w is a common English stop-word.
func (c *Catalog) IsStopWord(w string) bool {
	_, ok := c.stopWords[normalize(w)]
	return ok
}

// SortedUnique lower-cases, deduplicates and sorts labels.
func SortedUnique(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = normalize(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
