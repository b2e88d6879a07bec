package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
)

// CompressedSuffix is appended to object keys written in snappy framing format
const CompressedSuffix = ".sz"

// ObjectPutter is the part of the S3 client the publisher needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds the publish target
type Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Compress bool
}

// Object is one uploaded file
type Object struct {
	File  string `json:"file"`
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
}

// Result lists what a publish uploaded
type Result struct {
	Bucket  string   `json:"bucket"`
	Objects []Object `json:"objects"`
}

// NewS3Client loads the default AWS credential chain for the region
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Publisher uploads snapshot directories to object storage
type Publisher struct {
	client ObjectPutter
	config Config
	logger *zap.Logger
}

// NewPublisher creates a publisher writing to cfg.Bucket
func NewPublisher(client ObjectPutter, cfg Config, logger *zap.Logger) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("publish bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{client: client, config: cfg, logger: logger}, nil
}

// ObjectKey returns the key a snapshot file is stored under: prefix/run-id/file
func (p *Publisher) ObjectKey(manifest *csv.Manifest, file string) string {
	key := path.Join(strings.Trim(p.config.Prefix, "/"), manifest.RunID.String(), file)
	if p.config.Compress {
		key += CompressedSuffix
	}
	return key
}

// Publish uploads every file listed in the manifest, then the manifest itself
func (p *Publisher) Publish(ctx context.Context, dir string, manifest *csv.Manifest) (*Result, error) {
	result := &Result{Bucket: p.config.Bucket}

	for _, f := range manifest.Files {
		obj, err := p.put(ctx, dir, f.File, "text/csv", manifest, map[string]string{
			"table": string(f.Table),
			"rows":  strconv.Itoa(f.Rows),
		})
		if err != nil {
			return nil, err
		}
		result.Objects = append(result.Objects, *obj)
	}

	obj, err := p.put(ctx, dir, csv.ManifestFileName, "application/yaml", manifest, nil)
	if err != nil {
		return nil, err
	}
	result.Objects = append(result.Objects, *obj)

	p.logger.Info("snapshot published",
		zap.String("bucket", p.config.Bucket),
		zap.String("run_id", manifest.RunID.String()),
		zap.Int("objects", len(result.Objects)))
	return result, nil
}

func (p *Publisher) put(ctx context.Context, dir, file, contentType string, manifest *csv.Manifest, metadata map[string]string) (*Object, error) {
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	if p.config.Compress {
		if data, err = compress(data); err != nil {
			return nil, fmt.Errorf("failed to compress %s: %w", file, err)
		}
		contentType = "application/x-snappy-framed"
	}

	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata["run-id"] = manifest.RunID.String()

	key := p.ObjectKey(manifest, file)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s to s3://%s/%s: %w", file, p.config.Bucket, key, err)
	}

	p.logger.Debug("object uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return &Object{File: file, Key: key, Bytes: len(data)}, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
