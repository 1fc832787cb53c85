package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/skillgap/internal/analysis"
	"github.com/muhammadolammi/skillgap/internal/database"
	"github.com/muhammadolammi/skillgap/internal/logger"
	"github.com/muhammadolammi/skillgap/internal/matcher"
	"github.com/muhammadolammi/skillgap/internal/skills"
)

func main() {
	_ = godotenv.Load()
	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening db")
	}
	defer db.Close()

	dbqueries := database.New(db)

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating aws config")
	}

	var opts []matcher.Option
	if cfg.LexiconEnabled {
		lex, err := loadLexicon(ctx, dbqueries)
		if err != nil {
			// The lexicon step is optional; matching still runs without it.
			log.Warn().Err(err).Msg("lexicon unavailable")
		} else {
			log.Info().Int("lemmas", lex.Len()).Msg("lexicon loaded")
			opts = append(opts, matcher.WithLexicon(lex))
		}
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to RabbitMQ")
	}
	defer conn.Close()

	catalog := skills.Default()
	log.Info().Int("skills", len(catalog.Terms())).Msg("vocabulary loaded")

	workerConfig := WorkerConfig{
		DB:         dbqueries,
		RabbitConn: conn,
		Analysis:   analysis.NewService(catalog, log, opts...),
		Fetch:      r2Fetcher(newR2Client(awsConfig, &cfg.R2), cfg.R2.Bucket),
		Publish: func(sessionID string, update map[string]any) error {
			return publishSessionUpdate(conn, sessionID, update)
		},
		MaxDocumentBytes: cfg.MaxDocumentBytes,
		Log:              log,
	}

	log.Info().Int("workers", cfg.WorkerCount).Msg("starting consumer pool")
	workerConfig.StartConsumerWorkerPool(ctx, cfg.WorkerCount)
}
