package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khursands/Online-Pharmacy/config"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "prescriptions/u1/rx.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/prescriptions/u1/rx.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "prescriptions", "u1", "rx.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "root"), "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)
	_, err = os.Stat(filepath.Join(dir, "root", "etc", "passwd"))
	assert.NoError(t, err)

	_, err = s.Save(context.Background(), "/", strings.NewReader("x"), "")
	assert.Error(t, err)
}

type fakeUploader struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	_, _ = io.ReadAll(in.Body)
	return &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + aws.ToString(in.Key)}, nil
}

func TestS3StoreSave(t *testing.T) {
	up := &fakeUploader{}
	s := &S3Store{uploader: up, bucket: "rx-bucket", prefix: "prescriptions"}

	url, err := s.Save(context.Background(), "u1/rx.jpg", strings.NewReader("jpg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/prescriptions/u1/rx.jpg", url)
	assert.Equal(t, "rx-bucket", aws.ToString(up.in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(up.in.ContentType))

	s.uploader = &fakeUploader{err: errors.New("denied")}
	_, err = s.Save(context.Background(), "u1/rx.jpg", strings.NewReader("jpg"), "")
	assert.Error(t, err)
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
