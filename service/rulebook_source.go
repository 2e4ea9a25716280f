package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"gorm.io/gorm"

	"github.com/Itish41/ClauseGuard/rules"
)

// Rulebook sources selectable at start-up.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// NewS3Client builds a path-style S3 client for S3-compatible object stores.
func NewS3Client(cfg S3Config) (*s3.S3, error) {
	if cfg.Region == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing required S3 configuration")
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return s3.New(sess), nil
}

// FetchRulebookFromS3 downloads and decodes a YAML rulebook object.
func FetchRulebookFromS3(ctx context.Context, client s3iface.S3API, bucket, key string) (*rules.Rulebook, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name not configured")
	}
	out, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get rulebook s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	rb, err := rules.Decode(out.Body)
	if err != nil {
		return nil, fmt.Errorf("decode rulebook s3://%s/%s: %w", bucket, key, err)
	}
	return rb, nil
}

type RulebookOptions struct {
	Source string
	// Path is the YAML file for the file source and the object key for s3.
	Path string
	S3   S3Config
	DB   *gorm.DB
	// Seed writes the built-in tables into an empty database before loading.
	Seed bool
}

// LoadRulebook resolves the configured rule source.
func LoadRulebook(ctx context.Context, opts RulebookOptions, logger *slog.Logger) (*rules.Rulebook, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Source {
	case "", SourceBuiltin:
		return rules.Default(), nil

	case SourceFile:
		return rules.LoadFile(opts.Path)

	case SourceS3:
		client, err := NewS3Client(opts.S3)
		if err != nil {
			return nil, err
		}
		return FetchRulebookFromS3(ctx, client, opts.S3.Bucket, opts.Path)

	case SourcePostgres:
		if opts.DB == nil {
			return nil, fmt.Errorf("postgres rulebook source needs a database connection")
		}
		store := NewRulebookStore(opts.DB, logger)
		if opts.Seed {
			empty, err := store.Empty(ctx)
			if err != nil {
				return nil, err
			}
			if empty {
				logger.Info("seeding rule tables with built-in rulebook")
				if err := store.Save(ctx, rules.Default()); err != nil {
					return nil, err
				}
			}
		}
		return store.Load(ctx)

	default:
		return nil, fmt.Errorf("unknown rulebook source %q", opts.Source)
	}
}
