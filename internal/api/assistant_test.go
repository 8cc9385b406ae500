package api

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/swasthaai/swastha-cli/internal/errors"
)

func TestQuery_ReturnsAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chatbot/query", r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"answer":"Take it with food.","citations":["leaflet"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	answer, err := client.Query(context.Background(), "how should I take amlodipine?")
	require.NoError(t, err)
	assert.Equal(t, "Take it with food.", answer.Answer)
	assert.Equal(t, []string{"leaflet"}, answer.Citations)
}

func TestQueryWithFile_MultipartAndChecksum(t *testing.T) {
	content := []byte("patient: Asha Verma\nmedication: amlodipine 5mg\n")
	path := filepath.Join(t.TempDir(), "prescription.txt")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chatbot/query-with-file", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "what is this prescription for?", r.FormValue("query"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "prescription.txt", header.Filename)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"answer":"Blood pressure medication."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	answer, receipt, err := client.QueryWithFile(context.Background(), "what is this prescription for?", path)
	require.NoError(t, err)
	assert.Equal(t, "Blood pressure medication.", answer.Answer)

	hasher := blake3.New()
	_, _ = hasher.Write(content)
	assert.Equal(t, "prescription.txt", receipt.Name)
	assert.Equal(t, int64(len(content)), receipt.Size)
	assert.Equal(t, hex.EncodeToString(hasher.Sum(nil)), receipt.Checksum)
}

func TestQueryWithFile_MissingFile(t *testing.T) {
	client := NewClient("http://unused", nil, nil)
	_, _, err := client.QueryWithFile(context.Background(), "q", "/nonexistent/receipt.pdf")
	require.Error(t, err)

	var clientErr *errors.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors.ErrCodeFileNotFound, clientErr.Code)
}
