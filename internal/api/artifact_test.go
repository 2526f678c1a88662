package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSU-ITMO-2025-2/team7/internal/api"
	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func TestDownloadArtifact(t *testing.T) {
	payload := []byte("\x80\x04binary-model-bytes")
	artifacts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/11/model", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Disposition", `attachment; filename="model-11.pkl"`)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))
	defer artifacts.Close()

	client, store := newTestClient(t, emptyServer(t), artifacts)
	require.NoError(t, store.SetToken("tok"))

	stream, err := client.DownloadArtifact(context.Background(), 11, models.ArtifactModel)
	require.NoError(t, err)
	defer stream.Body.Close()

	assert.Equal(t, "model-11.pkl", stream.Filename)
	assert.Equal(t, int64(len(payload)), stream.Size)

	body, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestDownloadArtifact_DefaultFilename(t *testing.T) {
	artifacts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/3/results", r.URL.Path)
		w.Write([]byte("rmse,r2\n0.1,0.9\n"))
	}))
	defer artifacts.Close()

	client, store := newTestClient(t, emptyServer(t), artifacts)
	require.NoError(t, store.SetToken("tok"))

	stream, err := client.DownloadArtifact(context.Background(), 3, models.ArtifactResults)
	require.NoError(t, err)
	defer stream.Body.Close()

	assert.Equal(t, "run-3-results", stream.Filename)
}

func TestDownloadArtifact_NotProducedYet(t *testing.T) {
	artifacts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "artifact not found"}`))
	}))
	defer artifacts.Close()

	client, store := newTestClient(t, emptyServer(t), artifacts)
	require.NoError(t, store.SetToken("tok"))

	_, err := client.DownloadArtifact(context.Background(), 11, models.ArtifactModel)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestDownloadArtifact_UnknownKind(t *testing.T) {
	client, store := newTestClient(t, emptyServer(t), emptyServer(t))
	require.NoError(t, store.SetToken("tok"))

	_, err := client.DownloadArtifact(context.Background(), 11, models.ArtifactKind("logs"))
	assert.Error(t, err)
}
