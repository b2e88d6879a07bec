package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/infrastructure/config"
	"github.com/vsinha/bigen/pkg/infrastructure/publish"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
)

// PublishConfig holds configuration for publishing a snapshot
type PublishConfig struct {
	Dir     string
	Publish config.PublishConfig
	Verbose bool
	Logger  *zap.Logger
	Stdout  io.Writer

	// Client overrides the S3 client built from the default AWS config
	Client publish.ObjectPutter
}

// PublishCommand uploads a snapshot directory to object storage
type PublishCommand struct {
	config PublishConfig
}

// NewPublishCommand creates a new publish command
func NewPublishCommand(config PublishConfig) *PublishCommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &PublishCommand{config: config}
}

// Execute uploads the files listed in the snapshot manifest
func (cmd *PublishCommand) Execute(ctx context.Context) error {
	manifest, err := csv.ReadManifest(cmd.config.Dir)
	if err != nil {
		return err
	}

	client := cmd.config.Client
	if client == nil {
		s3Client, err := publish.NewS3Client(ctx, cmd.config.Publish.Region)
		if err != nil {
			return err
		}
		client = s3Client
	}

	publisher, err := publish.NewPublisher(client, publish.Config{
		Region:   cmd.config.Publish.Region,
		Bucket:   cmd.config.Publish.Bucket,
		Prefix:   cmd.config.Publish.Prefix,
		Compress: cmd.config.Publish.Compress,
	}, cmd.config.Logger)
	if err != nil {
		return err
	}

	result, err := publisher.Publish(ctx, cmd.config.Dir, manifest)
	if err != nil {
		return err
	}

	if cmd.config.Verbose {
		for _, obj := range result.Objects {
			fmt.Fprintf(cmd.config.Stdout, "☁️  s3://%s/%s (%d bytes)\n", result.Bucket, obj.Key, obj.Bytes)
		}
	}
	fmt.Fprintf(cmd.config.Stdout, "✅ Published %d objects to s3://%s (run %s)\n",
		len(result.Objects), result.Bucket, manifest.RunID)
	return nil
}
