package publish

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bigen/pkg/infrastructure/testhelpers"
)

type putCall struct {
	key         string
	contentType string
	metadata    map[string]string
	body        []byte
}

type fakePutter struct {
	calls []putCall
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, putCall{
		key:         aws.ToString(params.Key),
		contentType: aws.ToString(params.ContentType),
		metadata:    params.Metadata,
		body:        body,
	})
	return &s3.PutObjectOutput{}, nil
}

func writeSnapshot(t *testing.T) (string, *csv.Manifest) {
	t.Helper()
	dir := t.TempDir()
	snapshot := testhelpers.BuildSnapshot(t, 50)

	report, err := csv.NewWriter(dir, "", zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	require.NoError(t, err)

	cfg := testhelpers.SnapshotConfig(50)
	manifest := csv.NewManifest(uuid.New(), cfg.Seed, cfg.StartDate, cfg.EndDate, 50, report)
	_, err = csv.WriteManifest(dir, manifest)
	require.NoError(t, err)
	return dir, manifest
}

func TestPublisher_Publish(t *testing.T) {
	dir, manifest := writeSnapshot(t)
	putter := &fakePutter{}

	p, err := NewPublisher(putter, Config{Bucket: "bevco-bi", Prefix: "/bevco/snapshots/"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	result, err := p.Publish(context.Background(), dir, manifest)
	require.NoError(t, err)

	require.Len(t, putter.calls, len(entities.Tables)+1)
	assert.Len(t, result.Objects, len(entities.Tables)+1)
	assert.Equal(t, "bevco-bi", result.Bucket)

	first := putter.calls[0]
	assert.Equal(t, "bevco/snapshots/"+manifest.RunID.String()+"/dim_date.csv", first.key)
	assert.Equal(t, "text/csv", first.contentType)
	assert.Equal(t, manifest.RunID.String(), first.metadata["run-id"])
	assert.Contains(t, string(first.body), "DateKey,Date,")

	last := putter.calls[len(putter.calls)-1]
	assert.Equal(t, "bevco/snapshots/"+manifest.RunID.String()+"/"+csv.ManifestFileName, last.key)
}

func TestPublisher_Compressed(t *testing.T) {
	dir, manifest := writeSnapshot(t)
	putter := &fakePutter{}

	p, err := NewPublisher(putter, Config{Bucket: "bevco-bi", Compress: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), dir, manifest)
	require.NoError(t, err)

	first := putter.calls[0]
	assert.Equal(t, manifest.RunID.String()+"/dim_date.csv"+CompressedSuffix, first.key)

	plain, err := io.ReadAll(snappy.NewReader(bytes.NewReader(first.body)))
	require.NoError(t, err)
	assert.Contains(t, string(plain), "DateKey,Date,")
}

func TestPublisher_Errors(t *testing.T) {
	_, err := NewPublisher(&fakePutter{}, Config{}, nil)
	assert.Error(t, err, "bucket is required")

	dir, manifest := writeSnapshot(t)
	p, err := NewPublisher(&fakePutter{err: errors.New("access denied")}, Config{Bucket: "b"}, nil)
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), dir, manifest)
	assert.ErrorContains(t, err, "access denied")

	_, err = p.Publish(context.Background(), t.TempDir(), manifest)
	assert.Error(t, err, "missing files")
}
