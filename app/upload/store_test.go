package upload

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

func multipartImage(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func TestSaveKeepsExtensionAndContent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	file, header := multipartImage(t, "Funny.PNG", []byte("fake png bytes"))
	defer file.Close()

	url, err := store.Save(file, header)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, URLPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"), "extension lowercased: %s", url)
	assert.NotContains(t, url, "Funny", "original name is not reused")

	data, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	file1, header1 := multipartImage(t, "same.jpg", []byte("one"))
	defer file1.Close()
	file2, header2 := multipartImage(t, "same.jpg", []byte("two"))
	defer file2.Close()

	url1, err := store.Save(file1, header1)
	require.NoError(t, err)
	url2, err := store.Save(file2, header2)
	require.NoError(t, err)
	assert.NotEqual(t, url1, url2)
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
