package report

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ArchiveName is the object or file name a report is stored under.
func ArchiveName(date string) string {
	return "daily-report-" + date + ".json.gz"
}

// encodeReport returns the gzipped JSON of report.
func encodeReport(report *model.DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}
	return buf.Bytes(), nil
}

// fileArchiver writes reports to a local directory.
type fileArchiver struct {
	dir    string
	logger zerolog.Logger
}

// NewFileArchiver creates an archiver writing into dir, created on demand.
func NewFileArchiver(dir string, logger zerolog.Logger) Archiver {
	return &fileArchiver{
		dir:    dir,
		logger: logger.With().Str("component", "report-file-archiver").Logger(),
	}
}

func (a *fileArchiver) Archive(_ context.Context, report *model.DailyReport) (string, error) {
	data, err := encodeReport(report)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		a.logger.Error().Err(err).Str("dir", a.dir).Msg("failed to create archive directory")
		return "", fmt.Errorf("failed to create archive directory %s: %w", a.dir, err)
	}

	path := filepath.Join(a.dir, ArchiveName(report.Date))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.logger.Error().Err(err).Str("file", path).Msg("failed to write report archive")
		return "", fmt.Errorf("failed to write report archive %s: %w", path, err)
	}

	a.logger.Info().Str("file", path).Int("bytes", len(data)).Msg("report archived to file")
	return path, nil
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Archiver uploads reports to an S3 bucket.
type s3Archiver struct {
	client objectPutter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Archiver creates an archiver using the default AWS credential chain.
func NewS3Archiver(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Archiver, error) {
	logger = logger.With().Str("component", "report-s3-archiver").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().Str("bucket", bucket).Str("region", region).Msg("S3 archiver initialised")

	return newS3Archiver(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Archiver(client objectPutter, bucket, prefix string, logger zerolog.Logger) *s3Archiver {
	return &s3Archiver{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

func (a *s3Archiver) Archive(ctx context.Context, report *model.DailyReport) (string, error) {
	data, err := encodeReport(report)
	if err != nil {
		return "", err
	}

	key := a.prefix + ArchiveName(report.Date)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(a.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(data),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		a.logger.Error().Err(err).Str("bucket", a.bucket).Str("key", key).Msg("failed to put report to S3")
		return "", fmt.Errorf("failed to put report to S3 (bucket=%s, key=%s): %w", a.bucket, key, err)
	}

	location := "s3://" + a.bucket + "/" + key
	a.logger.Info().Str("location", location).Msg("report archived to S3")
	return location, nil
}

// fallbackArchiver tries S3 first and falls back to the local directory.
type fallbackArchiver struct {
	s3Archiver   Archiver
	fileArchiver Archiver
	s3Enabled    bool
	logger       zerolog.Logger
}

// NewFallbackArchiver combines both archivers. With S3 disabled or nil only
// the file archiver is used.
func NewFallbackArchiver(s3Archiver, fileArchiver Archiver, s3Enabled bool, logger zerolog.Logger) Archiver {
	return &fallbackArchiver{
		s3Archiver:   s3Archiver,
		fileArchiver: fileArchiver,
		s3Enabled:    s3Enabled,
		logger:       logger.With().Str("component", "report-fallback-archiver").Logger(),
	}
}

func (a *fallbackArchiver) Archive(ctx context.Context, report *model.DailyReport) (string, error) {
	if a.s3Enabled && a.s3Archiver != nil {
		location, err := a.s3Archiver.Archive(ctx, report)
		if err == nil {
			return location, nil
		}
		a.logger.Warn().Err(err).Str("date", report.Date).Msg("failed to archive to S3, falling back to local file system")
	}

	return a.fileArchiver.Archive(ctx, report)
}

// NewArchiver builds the archiver for the configuration: S3 with a local
// fallback when S3 is enabled, local only otherwise.
func NewArchiver(ctx context.Context, s3cfg config.S3Config, dir string, logger zerolog.Logger) Archiver {
	fileArchiver := NewFileArchiver(dir, logger)
	if !s3cfg.Enabled {
		logger.Info().Str("dir", dir).Msg("archiving reports to local file system (S3 disabled)")
		return fileArchiver
	}

	s3a, err := NewS3Archiver(ctx, s3cfg.Bucket, s3cfg.Region, s3cfg.Prefix, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 archiver, archiving to local file system only")
		return fileArchiver
	}
	return NewFallbackArchiver(s3a, fileArchiver, true, logger)
}
