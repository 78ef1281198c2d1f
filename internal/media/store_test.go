package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestUploadStreamsObjectUnderPrefix(t *testing.T) {
	client := &fakeObjectClient{}
	store := NewStore(client, "vidtube-media")

	header := buildFileHeader(t, "thumbnail", "thumb.png", []byte("png-bytes"))
	objectName, err := store.Upload(context.Background(), "thumbnails", header)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(objectName, "thumbnails/"))
	require.Equal(t, "vidtube-media", client.putBucket)
	require.Equal(t, objectName, client.putObject)
	require.Equal(t, []byte("png-bytes"), client.putPayload)
}

func TestUploadRejectsNilHeader(t *testing.T) {
	store := NewStore(&fakeObjectClient{}, "vidtube-media")

	_, err := store.Upload(context.Background(), "videos", nil)
	require.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestUploadClassifiesUpstreamFailure(t *testing.T) {
	client := &fakeObjectClient{putErr: errors.New("connection refused")}
	store := NewStore(client, "vidtube-media")

	header := buildFileHeader(t, "video", "clip.mp4", []byte("mp4"))
	_, err := store.Upload(context.Background(), "videos", header)
	require.True(t, apperr.IsKind(err, apperr.Upstream))
}

func TestRemoveSkipsEmptyObjectName(t *testing.T) {
	client := &fakeObjectClient{}
	store := NewStore(client, "vidtube-media")

	require.NoError(t, store.Remove(context.Background(), ""))
	require.Zero(t, client.removeCount)

	require.NoError(t, store.Remove(context.Background(), "videos/abc"))
	require.Equal(t, 1, client.removeCount)
}

func buildFileHeader(t *testing.T, fieldName, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(int64(len(content))+1024))

	return req.MultipartForm.File[fieldName][0]
}

type fakeObjectClient struct {
	putBucket   string
	putObject   string
	putPayload  []byte
	putErr      error
	removeCount int
}

func (f *fakeObjectClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	payload, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.putBucket = bucketName
	f.putObject = objectName
	f.putPayload = payload
	return minio.UploadInfo{Size: int64(len(payload))}, nil
}

func (f *fakeObjectClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.removeCount++
	return nil
}
