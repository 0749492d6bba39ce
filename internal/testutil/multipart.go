package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// MultipartBody encodes fields and at most one file as multipart/form-data.
// It returns the body and its content type.
func MultipartBody(t *testing.T, fields map[string]string, fileField, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// FileHeader builds an uploaded file header as a handler would receive it
func FileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, nil, "file", filename, content)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}
