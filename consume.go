package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/muhammadolammi/skillgap/internal/analysis"
	"github.com/muhammadolammi/skillgap/internal/database"
	"github.com/muhammadolammi/skillgap/internal/jobpost"
)

const sessionsQueue = "sessions"

// retryBaseDelay is the wait before the second attempt; it grows linearly.
var retryBaseDelay = 500 * time.Millisecond

var errDocumentTooLarge = errors.New("document too large")

// retry retries a function up to `attempts` times with a growing backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryBaseDelay * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// aggregateResult appends one résumé's outcome. Raw texts are dropped from
// the stored report.
func aggregateResult(results *AnalysesResults, resume database.Resume, report *analysis.Report, err error) {
	result := AnalysesResult{
		ResumeID: resume.ID,
		Filename: resume.OriginalFilename,
	}
	switch {
	case err != nil:
		result.IsErrorResult = true
		result.Error = err.Error()

	case report == nil:
		result.IsErrorResult = true
		result.Error = "empty analysis report"

	default:
		stored := *report
		stored.Resume.RawText = ""
		stored.Job.RawText = ""
		result.Report = &stored
		result.CandidateName = report.Resume.Contact.Name
		result.CandidateEmail = report.Resume.Contact.Email
		result.MatchScore = report.Match.Percentage
	}

	results.Results = append(results.Results, result)
}

// analyzeResume downloads, extracts and evaluates one résumé against the
// session's parsed job posting.
func analyzeResume(ctx context.Context, resume database.Resume, job jobpost.Record, workerConfig *WorkerConfig) (*analysis.Report, error) {
	if workerConfig.MaxDocumentBytes > 0 && resume.SizeBytes > workerConfig.MaxDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes", errDocumentTooLarge, resume.SizeBytes)
	}

	// Network failures are transient.
	fileBytes, err := retry(3, func() ([]byte, error) {
		return workerConfig.Fetch(ctx, resume.ObjectKey)
	})
	if err != nil {
		return nil, fmt.Errorf("file download error: %w", err)
	}
	if workerConfig.MaxDocumentBytes > 0 && int64(len(fileBytes)) > workerConfig.MaxDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes", errDocumentTooLarge, len(fileBytes))
	}

	rec, warnings, err := workerConfig.Analysis.ExtractResume(fileBytes, extensionFor(resume.Mime, resume.OriginalFilename))
	if err != nil {
		return nil, fmt.Errorf("text extraction error: %w", err)
	}
	report := workerConfig.Analysis.Evaluate(rec, job)
	report.Warnings = append(warnings, report.Warnings...)
	return &report, nil
}

// analyzeSession compares every résumé in a session with the session's job
// posting and stores the aggregate. Per-résumé failures become error entries;
// only listing résumés or saving results fails the session.
func analyzeSession(ctx context.Context, currentSession Session, workerConfig *WorkerConfig) error {
	log := workerConfig.Log.With().Str("session_id", currentSession.ID.String()).Logger()

	resumes, err := workerConfig.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %w", currentSession.ID, err)
	}

	results := &AnalysesResults{
		SessionID: currentSession.ID,
	}
	job := workerConfig.Analysis.AnalyzeJob(currentSession.JobDescription, currentSession.JobTitle)
	log.Info().
		Int("resumes", len(resumes)).
		Strs("required_skills", job.RequiredSkills).
		Msg("analyzing session")

	for _, resume := range resumes {
		report, err := analyzeResume(ctx, resume, job, workerConfig)
		if err != nil {
			log.Warn().Err(err).Str("object_key", resume.ObjectKey).Msg("resume analysis failed")
		} else {
			log.Debug().
				Str("object_key", resume.ObjectKey).
				Float64("match_percentage", report.Match.Percentage).
				Msg("resume analyzed")
		}
		aggregateResult(results, resume, report, err)
	}

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save analyses results after retries: %w", err)
	}
	log.Info().Msg("session analyzed")
	return nil
}

// markSession stores and publishes a session status. Failures are logged only.
func markSession(ctx context.Context, workerConfig *WorkerConfig, sessionID uuid.UUID, status, message string) {
	if sessionID != uuid.Nil {
		err := workerConfig.DB.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
			Status: status,
			ID:     sessionID,
		})
		if err != nil {
			workerConfig.Log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to update session status")
		}
	}
	if workerConfig.Publish == nil {
		return
	}
	if err := workerConfig.Publish(sessionID.String(), newSessionUpdate(sessionID, status, message)); err != nil {
		workerConfig.Log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to publish update")
	}
}

// handleMessage processes one queue delivery end to end.
func handleMessage(ctx context.Context, id int, body []byte, workerConfig *WorkerConfig) {
	session := Session{}
	if err := json.Unmarshal(body, &session); err != nil {
		workerConfig.Log.Error().Err(err).Int("worker", id+1).Msg("error unmarshalling message body")
		markSession(ctx, workerConfig, session.ID, "failed", "analysis failed")
		return
	}
	workerConfig.Log.Info().Int("worker", id+1).Str("session_id", session.ID.String()).Msg("processing session")

	markSession(ctx, workerConfig, session.ID, "processing", "analysis started")

	if err := analyzeSession(ctx, session, workerConfig); err != nil {
		workerConfig.Log.Error().Err(err).Str("session_id", session.ID.String()).Msg("error analyzing session")
		markSession(ctx, workerConfig, session.ID, "failed", "analysis failed")
		return
	}
	markSession(ctx, workerConfig, session.ID, "completed", "analysis completed")
}

func worker(ctx context.Context, id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	log := workerConfig.Log.With().Int("worker", id+1).Logger()

	// one channel per worker on the shared connection
	ch, err := workerConfig.RabbitConn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to rabbitmq channel")
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		sessionsQueue, // queue name
		true,          // durable (survives broker restarts)
		false,         // auto-delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		sessionsQueue, // queue name
		"",            // consumer tag
		true,          // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error consuming rabbitmq message")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopping")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("delivery channel closed")
				return
			}
			handleMessage(ctx, id, msg.Body, workerConfig)
		}
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := 0; i < numWorkers; i++ {
		workerConfig.Log.Info().Int("worker", i+1).Msg("worker started")
		go worker(ctx, i, workerConfig, &wg)
	}
	wg.Wait() // block until all workers finish
}
