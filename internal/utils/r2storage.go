package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

// R2Storage handles saving, deleting, and presigning files on Cloudflare R2.
type R2Storage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// NewR2Storage creates an R2Storage client.
// endpoint should be "https://<account-id>.r2.cloudflarestorage.com".
func NewR2Storage(accessKeyID, secretAccessKey, endpoint, bucketName string) *R2Storage {
	cfg := aws.Config{
		Region: "auto",
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token, not used for R2
		),
		BaseEndpoint: aws.String(endpoint),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2 requires path-style addressing
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucketName,
	}
}

// SaveFile uploads the contents of reader to R2 at <subDir>/<uuid><ext>.
// reader should be an io.Seeker so the object length is known up front.
// It returns the object key that can be stored in DB.
func (rs *R2Storage) SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	objectKey := path.Join(subDir, uniqueFilename(originalFilename))

	in := &s3.PutObjectInput{
		Bucket: aws.String(rs.bucketName),
		Key:    aws.String(objectKey),
		Body:   reader,
	}
	// without a known length the SDK falls back to aws-chunked uploads,
	// which R2 rejects
	if n, ok := remainingLength(reader); ok {
		in.ContentLength = aws.Int64(n)
	}
	_, err := rs.client.PutObject(ctx, in)
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return objectKey, nil
}

// remainingLength reports how many bytes are left in a seekable reader and
// leaves it at its current position.
func remainingLength(r io.Reader) (int64, bool) {
	sk, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}
	cur, err := sk.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	end, err := sk.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, false
	}
	if _, err := sk.Seek(cur, io.SeekStart); err != nil {
		return 0, false
	}
	return end - cur, true
}

// DeleteFile removes the object with the given key from R2.
// It is safe to call if the object does not exist.
func (rs *R2Storage) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := rs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(rs.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// PresignGetObject generates a presigned GET URL for the given object key.
// The URL is valid for the specified duration.
func (rs *R2Storage) PresignGetObject(ctx context.Context, objectKey string, duration time.Duration) (string, error) {
	req, err := rs.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(rs.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return req.URL, nil
}

// ServeHTTP redirects to a short-lived presigned URL for the requested key.
func (rs *R2Storage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if key == "" {
		http.NotFound(w, r)
		return
	}
	url, err := rs.PresignGetObject(r.Context(), key, presignTTL)
	if err != nil {
		http.Error(w, "file unavailable", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
