package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}

func TestDiskStore_SaveUpload(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.SaveUpload("cins", fileHeader(t, "cin", "carte.jpg", []byte("image bytes")))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "http://localhost:8080/storage/cins/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(root, "cins", name))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestDiskStore_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	first, err := store.SaveUpload("uploads", fileHeader(t, "image", "same.jpg", []byte("a")))
	require.NoError(t, err)
	second, err := store.SaveUpload("uploads", fileHeader(t, "image", "same.jpg", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
