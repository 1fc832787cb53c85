package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/skillgap/internal/analysis"
	"github.com/muhammadolammi/skillgap/internal/database"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// sessionStore is the slice of database.Queries the worker needs.
type sessionStore interface {
	GetResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Resume, error)
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
}

// fetchFunc downloads a stored résumé by object key.
type fetchFunc func(ctx context.Context, key string) ([]byte, error)

// publishFunc sends a status update for a session.
type publishFunc func(sessionID string, update map[string]any) error

type WorkerConfig struct {
	DB               sessionStore
	RabbitConn       *amqp.Connection
	Analysis         *analysis.Service
	Fetch            fetchFunc
	Publish          publishFunc
	MaxDocumentBytes int64
	Log              zerolog.Logger
}

// AnalysesResult is one résumé's entry in a session's stored results.
type AnalysesResult struct {
	ResumeID       uuid.UUID        `json:"resume_id"`
	Filename       string           `json:"filename"`
	CandidateName  string           `json:"candidate_name,omitempty"`
	CandidateEmail string           `json:"candidate_email,omitempty"`
	MatchScore     float64          `json:"match_score"`
	Report         *analysis.Report `json:"report,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type AnalysesResults struct {
	ID        uuid.UUID        `json:"id"`
	Results   []AnalysesResult `json:"results" db:"results"`
	CreatedAt time.Time        `json:"created_at"`
	SessionID uuid.UUID        `json:"session_id"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Session struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
}
