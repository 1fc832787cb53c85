// Package analysis runs the résumé-versus-job pipeline: text extraction,
// field extraction, skill matching, gaps and recommendations.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/muhammadolammi/skillgap/internal/doctext"
	"github.com/muhammadolammi/skillgap/internal/jobpost"
	"github.com/muhammadolammi/skillgap/internal/matcher"
	"github.com/muhammadolammi/skillgap/internal/resume"
	"github.com/muhammadolammi/skillgap/internal/skills"
)

// ErrEmptyInput marks a document or posting that yielded no usable text.
// It is reported as a warning; the pipeline still returns empty records.
var ErrEmptyInput = errors.New("no usable text in input")

// Report is the full result of comparing one résumé with one job posting.
type Report struct {
	Resume          resume.Record            `json:"resume"`
	Job             jobpost.Record           `json:"job"`
	Match           matcher.MatchResult      `json:"match"`
	Gaps            []matcher.SkillGap       `json:"gaps"`
	Recommendations []matcher.Recommendation `json:"recommendations"`
	Warnings        []string                 `json:"warnings,omitempty"`
}

// Service wires the engines together over one catalogue. It is safe for
// concurrent use.
type Service struct {
	parser   *resume.Parser
	analyzer *jobpost.Analyzer
	matcher  *matcher.Matcher
	log      zerolog.Logger
}

// NewService builds a Service. A nil catalog selects skills.Default().
func NewService(catalog *skills.Catalog, log zerolog.Logger, opts ...matcher.Option) *Service {
	if catalog == nil {
		catalog = skills.Default()
	}
	opts = append([]matcher.Option{matcher.WithLogger(log)}, opts...)
	return &Service{
		parser:   resume.NewParser(catalog),
		analyzer: jobpost.NewAnalyzer(catalog),
		matcher:  matcher.New(catalog, opts...),
		log:      log,
	}
}

// ExtractResume decodes a résumé document and parses it. Extraction errors
// are returned as is; empty text yields an empty record and ErrEmptyInput
// among the warnings.
func (s *Service) ExtractResume(content []byte, ext string) (resume.Record, []string, error) {
	text, err := doctext.Extract(content, ext)
	if err != nil {
		return resume.Record{}, nil, fmt.Errorf("failed to extract resume text: %w", err)
	}
	var warnings []string
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Str("ext", ext).Msg("resume document has no text")
		warnings = append(warnings, fmt.Sprintf("resume: %v", ErrEmptyInput))
	}
	return s.parser.Analyze(text), warnings, nil
}

// AnalyzeJob parses a job posting.
func (s *Service) AnalyzeJob(text, title string) jobpost.Record {
	return s.analyzer.Analyze(text, title)
}

// Evaluate compares a parsed résumé with a parsed posting.
func (s *Service) Evaluate(res resume.Record, job jobpost.Record) Report {
	match := s.matcher.MatchSkills(res.Skills, job.RequiredSkills)
	report := Report{
		Resume:          res,
		Job:             job,
		Match:           match,
		Gaps:            s.matcher.CalculateSkillGaps(res.Skills, job.RequiredSkills),
		Recommendations: s.matcher.GetRecommendations(match.MissingSkills),
	}
	if strings.TrimSpace(job.RawText) == "" {
		report.Warnings = append(report.Warnings, fmt.Sprintf("job: %v", ErrEmptyInput))
	}
	s.log.Debug().
		Float64("match_percentage", match.Percentage).
		Int("missing", len(match.MissingSkills)).
		Msg("evaluated resume against job")
	return report
}

// Compare runs the pipeline on résumé text that is already extracted.
func (s *Service) Compare(resumeText, jobText, title string) Report {
	var warnings []string
	if strings.TrimSpace(resumeText) == "" {
		warnings = append(warnings, fmt.Sprintf("resume: %v", ErrEmptyInput))
	}
	report := s.Evaluate(s.parser.Analyze(resumeText), s.AnalyzeJob(jobText, title))
	report.Warnings = append(warnings, report.Warnings...)
	return report
}

// AnalyzeDocument runs the whole pipeline on a résumé document. No report is
// returned when the document cannot be decoded.
func (s *Service) AnalyzeDocument(content []byte, ext, jobText, title string) (Report, error) {
	res, warnings, err := s.ExtractResume(content, ext)
	if err != nil {
		return Report{}, err
	}
	report := s.Evaluate(res, s.AnalyzeJob(jobText, title))
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}
