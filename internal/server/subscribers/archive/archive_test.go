package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T, put func(context.Context, *s3.PutObjectInput) error) *int {
	t.Helper()
	origLoad, origNew, origPut, origDelete := loadDefaultAWSConfig, newS3ClientFromConfig, putObject, deleteObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject, deleteObject = origLoad, origNew, origPut, origDelete
	})
	deleteObject = func(*s3.Client, context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		t.Fatal("unexpected delete")
		return nil, nil
	}

	loads := new(int)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		*loads++
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://minio:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	putObject = func(_ *s3.Client, ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if err := put(ctx, in); err != nil {
			return nil, err
		}
		return &s3.PutObjectOutput{}, nil
	}
	return loads
}

func newSubscriber() *Subscriber {
	return New(Options{
		Bucket:    "vault-archive",
		Region:    "eu-west-1",
		Endpoint:  "http://minio:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Timeout:   time.Second,
	}, logging.Nop())
}

func event() *resources.Event {
	return &resources.Event{
		Name: resources.EventResourceAdded,
		Resource: &models.Resource{
			ID: "r-1", Name: "mail", URI: "https://mail.example.com", CreatedBy: "u-1",
			Created: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Secrets: []*models.Secret{{UserID: "u-1", Data: "armored"}},
		},
		AccessControl: identity.AccessControl{UserID: "u-1"},
	}
}

func TestOnResourceCreated_UploadsSnapshot(t *testing.T) {
	var got *s3.PutObjectInput
	var body []byte
	loads := stubAWS(t, func(ctx context.Context, in *s3.PutObjectInput) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		got = in
		var err error
		body, err = io.ReadAll(in.Body)
		return err
	})

	sub := newSubscriber()
	require.NoError(t, sub.OnResourceCreated(context.Background(), event()))
	require.NoError(t, sub.OnResourceCreated(context.Background(), event()))
	assert.Equal(t, 1, *loads, "client is built once")

	require.NotNil(t, got)
	assert.Equal(t, "vault-archive", aws.ToString(got.Bucket))
	assert.Equal(t, "resources/u-1/r-1.json", aws.ToString(got.Key))
	assert.Equal(t, "application/json", aws.ToString(got.ContentType))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "mail", snap.Name)
	require.NotNil(t, snap.Secret)
	assert.Equal(t, "armored", snap.Secret.Data)
}

func TestOnResourceCreated_UploadFailureAborts(t *testing.T) {
	stubAWS(t, func(context.Context, *s3.PutObjectInput) error { return errors.New("503 slow down") })

	err := newSubscriber().OnResourceCreated(context.Background(), event())
	require.ErrorContains(t, err, "archive upload resources/u-1/r-1.json: 503 slow down")

	var verr *resources.ValidationError
	assert.False(t, errors.As(err, &verr), "upload failures are not client errors")
}

func TestOnResourceCreated_RollbackDeletesSnapshot(t *testing.T) {
	stubAWS(t, func(context.Context, *s3.PutObjectInput) error { return nil })
	var deleted []string
	deleteObject = func(_ *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		assert.Equal(t, "vault-archive", aws.ToString(in.Bucket))
		deleted = append(deleted, aws.ToString(in.Key))
		return &s3.DeleteObjectOutput{}, nil
	}

	e := event()
	require.NoError(t, newSubscriber().OnResourceCreated(context.Background(), e))
	assert.Empty(t, deleted, "nothing is removed while the creation can still commit")

	require.NoError(t, e.Rollback(context.Background()))
	assert.Equal(t, []string{"resources/u-1/r-1.json"}, deleted)

	require.NoError(t, e.Rollback(context.Background()))
	assert.Len(t, deleted, 1, "hooks run once")
}

func TestOnResourceCreated_RollbackDeleteError(t *testing.T) {
	stubAWS(t, func(context.Context, *s3.PutObjectInput) error { return nil })
	deleteObject = func(*s3.Client, context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("access denied")
	}

	e := event()
	require.NoError(t, newSubscriber().OnResourceCreated(context.Background(), e))
	require.ErrorContains(t, e.Rollback(context.Background()), "archive delete resources/u-1/r-1.json: access denied")
}

func TestOnResourceCreated_UploadFailureRegistersNoRollback(t *testing.T) {
	stubAWS(t, func(context.Context, *s3.PutObjectInput) error { return errors.New("timeout") })

	e := event()
	require.Error(t, newSubscriber().OnResourceCreated(context.Background(), e))
	require.NoError(t, e.Rollback(context.Background()))
}

func TestOnResourceCreated_ConfigError(t *testing.T) {
	stubAWS(t, func(context.Context, *s3.PutObjectInput) error { return nil })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	err := newSubscriber().OnResourceCreated(context.Background(), event())
	require.ErrorContains(t, err, "archive client: no creds")
}

func TestSnapshotOf_OnlyActingUsersSecret(t *testing.T) {
	e := event()
	e.Resource.Secrets = []*models.Secret{{UserID: "u-2", Data: "other"}, {UserID: "u-1", Data: "mine"}}

	snap := snapshotOf(e)
	require.NotNil(t, snap.Secret)
	assert.Equal(t, "mine", snap.Secret.Data)

	e.Resource.Secrets = nil
	assert.Nil(t, snapshotOf(e).Secret)
}
