package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":             "report.pdf",
		"../../etc/passwd":       "passwd",
		`..\..\windows\boot.ini`: "boot.ini",
		"my file (1).png":        "my_file__1_.png",
		"..hidden..":             "hidden",
		"résumé.txt":             "r_sum_.txt",
	}
	for input, want := range cases {
		require.Equal(t, want, SanitizeFilename(input), "input=%q", input)
	}
}

func multipartHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStore_SaveAndResolve(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	fh := multipartHeader(t, "../sneaky/../notes v1.txt", "content here")
	name, err := store.Save(fh)
	require.NoError(t, err)
	require.Equal(t, "notes_v1.txt", name)

	path, ok := store.Resolve(name)
	require.True(t, ok)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content here", string(data))

	// Resolve never escapes the upload dir
	_, ok = store.Resolve("../" + filepath.Base(path))
	require.True(t, ok, "base name is extracted before lookup")

	_, ok = store.Resolve("does-not-exist.bin")
	require.False(t, ok)
}

func TestLocalStore_SaveOverwritesSameName(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Save(multipartHeader(t, "dup.txt", "first"))
	require.NoError(t, err)
	name, err := store.Save(multipartHeader(t, "dup.txt", "second"))
	require.NoError(t, err)

	path, ok := store.Resolve(name)
	require.True(t, ok)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestLocalStore_RejectsEmptySanitizedName(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Save(multipartHeader(t, "...", "x"))
	require.Error(t, err)
}
