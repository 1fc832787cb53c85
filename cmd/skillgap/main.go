// Command skillgap compares a résumé with a job posting offline and prints
// the report as JSON.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/muhammadolammi/skillgap/internal/analysis"
	"github.com/muhammadolammi/skillgap/internal/doctext"
	"github.com/muhammadolammi/skillgap/internal/logger"
	"github.com/muhammadolammi/skillgap/internal/matcher"
	"github.com/muhammadolammi/skillgap/internal/skills"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "skillgap:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("skillgap", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		resumePath  string
		jobPath     string
		title       string
		lexiconPath string
		pretty      bool
		logLevel    string
	)
	fs.StringVarP(&resumePath, "resume", "r", "", "Path to the résumé (pdf, doc, docx or txt)")
	fs.StringVarP(&jobPath, "job", "j", "", "Path to the job posting text")
	fs.StringVarP(&title, "title", "t", "", "Job title")
	fs.StringVar(&lexiconPath, "lexicon", "", "Optional TSV of synset_id<TAB>lemma rows")
	fs.BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if resumePath == "" || jobPath == "" {
		return errors.New("both --resume and --job are required")
	}

	log := logger.Init(logger.Config{Level: logLevel, Format: "pretty", Output: stderr})

	var opts []matcher.Option
	if lexiconPath != "" {
		lex, err := readLexiconFile(lexiconPath)
		if err != nil {
			return err
		}
		log.Debug().Int("lemmas", lex.Len()).Msg("lexicon loaded")
		opts = append(opts, matcher.WithLexicon(lex))
	}
	svc := analysis.NewService(skills.Default(), log, opts...)

	jobText, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}
	content, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var report analysis.Report
	ext := doctext.NormalizeExt(filepath.Ext(resumePath))
	if ext == "txt" {
		report = svc.Compare(string(content), string(jobText), title)
	} else {
		report, err = svc.AnalyzeDocument(content, ext, string(jobText), title)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

// readLexiconFile loads synset_id<TAB>lemma rows. Lines starting with # are comments.
func readLexiconFile(path string) (*matcher.MapLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()
	return readLexicon(f)
}

func readLexicon(r io.Reader) (*matcher.MapLexicon, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.LazyQuotes = true

	var pairs []matcher.LemmaPair
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse lexicon: %w", err)
		}
		pairs = append(pairs, matcher.LemmaPair{
			SynsetID: strings.TrimSpace(rec[0]),
			Lemma:    strings.TrimSpace(rec[1]),
		})
	}
	return matcher.NewMapLexicon(pairs), nil
}
