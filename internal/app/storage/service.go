/*
Package storage provides presigned-URL access to the attachment bucket.

Uploads never pass through this server; clients PUT directly against a
short-lived presigned URL and send the resulting object key as the message
body.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the settings required to reach the storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService is the public interface of the attachment storage layer.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading an object.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a pre-signed URL for fetching an object.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)
}

// NewStorageService returns the S3-compatible implementation.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
