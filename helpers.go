package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/skillgap/internal/doctext"
)

// --- File Download ---

func newR2Client(awsConfig aws.Config, r2 *R2Config) *s3.Client {
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})
}

func DownloadFromR2(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// r2Fetcher binds DownloadFromR2 to one client and bucket.
func r2Fetcher(client *s3.Client, bucket string) fetchFunc {
	return func(ctx context.Context, key string) ([]byte, error) {
		return DownloadFromR2(ctx, client, bucket, key)
	}
}

const docxMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// extensionFor resolves the declared document type from the stored filename,
// falling back to the MIME type. An unsupported filename extension is
// returned as is so extraction can report it.
func extensionFor(mimeType, filename string) string {
	ext := doctext.NormalizeExt(filepath.Ext(filename))
	if doctext.Supported(ext) {
		return ext
	}
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ext
	}
	switch mediaType {
	case "application/pdf":
		return "pdf"
	case "application/msword":
		return "doc"
	case docxMime:
		return "docx"
	}
	return ext
}

func newSessionUpdate(sessionID uuid.UUID, status, message string) map[string]any {
	return map[string]any{
		"session_id": sessionID.String(),
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
}

func publishSessionUpdate(rabbitConn *amqp.Connection, sessionID string, update map[string]any) error {
	ch, err := rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal session update: %w", err)
	}
	routingKey := fmt.Sprintf("session.%s", sessionID)

	return ch.Publish(
		"session_updates", // exchange
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
