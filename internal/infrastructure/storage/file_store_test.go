package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store := &FileStore{Root: t.TempDir(), BaseURL: "http://host:3000"}

	rel, err := store.Save(fileHeader(t, "Photo.JPG", "data"), "posts", ImageExtensions, VideoExtensions)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "uploads/posts/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	onDisk := filepath.Join(store.Root, "posts", filepath.Base(rel))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove(rel), "removing twice is fine")
}

func TestWriteFileRemovesPartialUpload(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "broken.png")
	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("connection reset")))

	err := writeFile(dst, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write upload")

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "partial file is removed")
}

func TestWriteFileReportsCreateFailure(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "a.png")
	assert.Error(t, writeFile(dst, strings.NewReader("x")))
}

func TestSaveRejectsExtension(t *testing.T) {
	store := &FileStore{Root: t.TempDir()}
	_, err := store.Save(fileHeader(t, "run.exe", "x"), "posts", ImageExtensions)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestURL(t *testing.T) {
	store := &FileStore{BaseURL: "http://host:3000"}
	assert.Equal(t, "", store.URL(""))
	assert.Equal(t, "http://host:3000/uploads/a.png", store.URL("/uploads/a.png"))
	assert.Equal(t, "http://host:3000/uploads/b.png", store.URL(`uploads\b.png`))
	assert.Equal(t, "https://cdn/x.png", store.URL("https://cdn/x.png"))
}

func TestMediaKinds(t *testing.T) {
	assert.True(t, IsImage("a.PNG"))
	assert.True(t, IsVideo("clip.webm"))
	assert.False(t, IsImage("clip.mp4"))
	assert.False(t, IsVideo("doc.pdf"))
}
