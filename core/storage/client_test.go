package storage_test

import (
	"context"
	"errors"
	"testing"

	"device-inventory/core/storage"
	"device-inventory/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "inventory",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, client, "inventory", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(false, nil)
		client.On("MakeBucket", ctx, "inventory", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, client, "inventory", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(ctx, client, "inventory", "")
		assert.ErrorContains(t, err, "failed to check bucket")
	})

	t.Run("CreateFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(false, nil)
		client.On("MakeBucket", ctx, "inventory", mock.Anything).Return(errors.New("quota"))

		err := storage.EnsureBucket(ctx, client, "inventory", "")
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}
