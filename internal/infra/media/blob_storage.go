// Package media stores user-uploaded images in a gocloud.dev blob bucket.
// The bucket URL decides the backend (file://, gs://, s3://); the service
// itself is backend-agnostic.
package media

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"flock/config"
	"flock/internal/domain/lifecycle"
	"flock/internal/domain/service"
)

// Params defines the required parameters.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// New opens the configured blob bucket and returns it as a MediaStorage.
func New(params Params) (service.MediaStorage, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(params.Config.Media.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload decodes the base64 (or data-URI) payload and writes it under a
// fresh key. Returns the public URL for the stored object.
func (s *blobStorage) Upload(ctx context.Context, kind, data string) (string, error) {
	contentType, raw := splitDataURI(data)

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode image payload")
	}

	key := kind + "/" + uuid.NewString() + extensionFor(contentType)
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, decoded, opts); err != nil {
		return "", errors.Wrap(err, "failed to write image to bucket")
	}

	s.logger.Debug("Stored media object", "key", key, "bytes", len(decoded))

	return s.publicBaseURL + "/" + key, nil
}

// Remove deletes the object behind a public URL. URLs outside our base and
// already-deleted objects are ignored.
func (s *blobStorage) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !ok {
		return nil
	}

	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "failed to check media object")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete media object")
	}

	return nil
}

// splitDataURI separates an optional "data:image/png;base64," prefix from
// the payload. Plain base64 input defaults to image/jpeg.
func splitDataURI(data string) (contentType, payload string) {
	contentType = "image/jpeg"
	payload = data

	if !strings.HasPrefix(data, "data:") {
		return contentType, payload
	}

	header, rest, ok := strings.Cut(data, ",")
	if !ok {
		return contentType, payload
	}
	payload = rest

	header = strings.TrimPrefix(header, "data:")
	if mime, _, _ := strings.Cut(header, ";"); mime != "" {
		contentType = mime
	}

	return contentType, payload
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
