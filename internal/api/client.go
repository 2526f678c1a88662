// Package api is the single choke point for every call to the platform
// backends: the control API (auth, runs), the artifacts API (datasets,
// produced files) and the model catalog.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CSU-ITMO-2025-2/team7/internal/config"
	"github.com/CSU-ITMO-2025-2/team7/internal/models"
	"github.com/CSU-ITMO-2025-2/team7/internal/session"
)

type Client interface {
	// Register creates a new account. Does not log in.
	Register(ctx context.Context, login, password string) (models.User, error)

	// Login exchanges credentials for a bearer token and stores it in the
	// session store.
	Login(ctx context.Context, login, password string) (models.Token, error)

	// CurrentUser returns the account owning the session token.
	CurrentUser(ctx context.Context) (models.User, error)

	// UploadDataset registers a csv file under the given name. The filename
	// extension is checked before anything is sent.
	UploadDataset(ctx context.Context, name string, userID int, filename string, file io.Reader) (models.Dataset, error)

	// ListDatasets returns the user's datasets, newest first.
	ListDatasets(ctx context.Context, userID int) ([]models.Dataset, error)

	// ListModels returns the trainable-model catalog.
	ListModels(ctx context.Context) ([]models.ModelSpec, error)

	// CreateRun submits a training run and returns it with its initial
	// status.
	CreateRun(ctx context.Context, req models.RunCreate) (models.Run, error)

	// ListRuns returns the user's runs, newest first.
	ListRuns(ctx context.Context) ([]models.Run, error)

	// GetRun returns one run by id.
	GetRun(ctx context.Context, runID int) (models.Run, error)

	// DownloadArtifact opens the produced file of the given kind for a run.
	// The caller owns the returned stream and must close it. A 404 from the
	// server means the artifact is not produced yet and is reported as an
	// *APIError with that status.
	DownloadArtifact(ctx context.Context, runID int, kind models.ArtifactKind) (*ArtifactStream, error)
}

// ArtifactStream is one downloadable run byproduct.
type ArtifactStream struct {
	// Filename suggested by the server, or a derived default.
	Filename string

	// Size in bytes, -1 when unknown.
	Size int64

	Body io.ReadCloser
}

type client struct {
	httpclient *http.Client
	session    session.Store

	controlAPI   string
	artifactsAPI string
	modelsAPI    string
}

func New(cfg *config.Config, store session.Store) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &client{
		httpclient:   new(http.Client),
		session:      store,
		controlAPI:   strings.TrimSuffix(cfg.ControlAPIURL, "/"),
		artifactsAPI: strings.TrimSuffix(cfg.ArtifactsAPIURL, "/"),
		modelsAPI:    strings.TrimSuffix(cfg.ModelsURL(), "/"),
	}, nil
}

// build URL with path below an origin
func apipath(origin string, path ...string) string {
	parts := append([]string{origin}, path...)
	for i, p := range parts[1:] {
		parts[i+1] = strings.Trim(p, "/")
	}
	return strings.Join(parts, "/")
}
