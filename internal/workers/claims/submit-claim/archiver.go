package submitclaim

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/metrics"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
)

// ArchiveKey names the archived page after the local submission minute.
func ArchiveKey(at time.Time) string {
	return "reclamo-" + at.In(models.ArgentinaTime).Format("06-01-02_15-04") + ".html"
}

// Archiver stores raw response pages. Failures are logged and counted, never returned.
type Archiver struct {
	s3     S3Service
	fs     afero.Fs
	bucket string
	dir    string
	local  bool
	logger logger.Logger
}

func NewArchiver(cfg *Config, s3Client S3Service, fs afero.Fs, log logger.Logger) *Archiver {
	return &Archiver{
		s3:     s3Client,
		fs:     fs,
		bucket: cfg.Bucket,
		dir:    cfg.ArchiveDir,
		local:  !cfg.Hosted && fs != nil,
		logger: log,
	}
}

// Archive writes body under key to the bucket and, outside the hosted runtime, to disk.
func (a *Archiver) Archive(ctx context.Context, key, body string) {
	if _, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/html"),
	}); err != nil {
		a.fail("s3", errors.NewArchiveFailedError("s3", err), key)
	} else {
		a.logger.Info("response archived", map[string]interface{}{
			"bucket": a.bucket,
			"key":    key,
		})
	}

	if !a.local {
		return
	}

	path := filepath.Join(a.dir, key)
	if err := afero.WriteFile(a.fs, path, []byte(body), 0o644); err != nil {
		a.fail("local", errors.NewArchiveFailedError("local", err), key)
		return
	}
	a.logger.Info("response written locally", map[string]interface{}{"path": path})
}

func (a *Archiver) fail(target string, err *errors.StandardError, key string) {
	metrics.ArchiveFailures.WithLabelValues(target).Inc()
	a.logger.Error("archive failed", map[string]interface{}{
		"target":    target,
		"key":       key,
		"errorCode": string(err.Code),
		"error":     err.Details,
	})
}
