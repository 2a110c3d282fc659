package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements objectAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr         error
	putKey         string
	putBody        []byte
	putContentType string

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, name string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = name
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, _ := io.ReadAll(r)
	f.putKey, f.putBody, f.putContentType = key, body, opts.ContentType
	return minioLib.UploadInfo{Key: key, Size: int64(len(body))}, nil
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.Empty(t, api.madeBucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(context.Background(), api, "bucket")
	require.NoError(t, err)
	assert.Equal(t, "bucket", c.bucket)
	assert.Equal(t, "bucket", api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeMinio
	}{
		{name: "bucket exists error", api: &fakeMinio{bucketExistsErr: errors.New("boom")}},
		{name: "make bucket error", api: &fakeMinio{makeBucketErr: errors.New("fail")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), tt.api, "bucket")
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
		})
	}
}

func TestClient_Upload(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "b")
	require.NoError(t, err)

	body := []byte("<h4>hi</h4>")
	require.NoError(t, c.Upload(context.Background(), "k.html", bytes.NewReader(body), int64(len(body)), "text/html"))
	assert.Equal(t, "k.html", api.putKey)
	assert.Equal(t, body, api.putBody)
	assert.Equal(t, "text/html", api.putContentType)

	api.putErr = errors.New("denied")
	err = c.Upload(context.Background(), "k.html", bytes.NewReader(body), int64(len(body)), "text/html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload object")
}

func TestClient_Exists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "b")
	require.NoError(t, err)

	ok, err := c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	api.statErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	ok, err = c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	api.statErr = errors.New("network")
	_, err = c.Exists(context.Background(), "k")
	require.Error(t, err)
}
