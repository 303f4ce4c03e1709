// Package archive uploads a JSON snapshot of every created resource to
// S3-compatible object storage. A failed upload aborts the creation, and an
// uploaded snapshot is deleted again when the creation does not commit.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
)

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Timeout   time.Duration
}

type Subscriber struct {
	opts   Options
	logger logging.Logger

	mu     sync.Mutex
	client *s3.Client
}

func New(opts Options, logger logging.Logger) *Subscriber {
	return &Subscriber{opts: opts, logger: logger.With("module", "archive")}
}

// Snapshot is the archived document. Only the creator's secret is included;
// it stays encrypted.
type Snapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Username    string          `json:"username,omitempty"`
	URI         string          `json:"uri,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	Created     time.Time       `json:"created"`
	Secret      *SnapshotSecret `json:"secret,omitempty"`
}

type SnapshotSecret struct {
	UserID string `json:"user_id"`
	Data   string `json:"data"`
}

func snapshotOf(e *resources.Event) Snapshot {
	r := e.Resource
	snap := Snapshot{
		ID:          r.ID,
		Name:        r.Name,
		Username:    r.Username,
		URI:         r.URI,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		Created:     r.Created,
	}
	for _, s := range r.Secrets {
		if s.UserID == e.AccessControl.UserID {
			snap.Secret = &SnapshotSecret{UserID: s.UserID, Data: s.Data}
			break
		}
	}
	return snap
}

// ObjectKey is where the snapshot of a resource is stored.
func ObjectKey(createdBy, resourceID string) string {
	return path.Join("resources", createdBy, resourceID+".json")
}

func (s *Subscriber) getClient(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.opts.AccessKey,
			s.opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	s.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.Endpoint)
		}
		o.UsePathStyle = true
	})
	return s.client, nil
}

func (s *Subscriber) OnResourceCreated(ctx context.Context, e *resources.Event) error {
	body, err := json.Marshal(snapshotOf(e))
	if err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return fmt.Errorf("archive client: %w", err)
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	key := ObjectKey(e.Resource.CreatedBy, e.Resource.ID)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive upload %s: %w", key, err)
	}

	e.OnRollback(func(ctx context.Context) error {
		return s.remove(ctx, client, key)
	})

	s.logger.Debug(ctx, "resource archived", "bucket", s.opts.Bucket, "key", key)
	return nil
}

func (s *Subscriber) remove(ctx context.Context, client *s3.Client, key string) error {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	_, err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("archive delete %s: %w", key, err)
	}
	s.logger.Info(ctx, "archived snapshot removed after rollback", "bucket", s.opts.Bucket, "key", key)
	return nil
}
