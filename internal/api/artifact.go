package api

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func (c *client) DownloadArtifact(ctx context.Context, runID int, kind models.ArtifactKind) (*ArtifactStream, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}

	u := apipath(c.artifactsAPI, "runs", strconv.Itoa(runID), string(kind))
	req, err := c.newRequest(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}

	logrus.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.asError(resp)
	}

	return &ArtifactStream{
		Filename: artifactFilename(resp, runID, kind),
		Size:     resp.ContentLength,
		Body:     resp.Body,
	}, nil
}

// artifactFilename takes the server's suggestion from Content-Disposition,
// falling back to a name derived from the run and kind.
func artifactFilename(resp *http.Response, runID int, kind models.ArtifactKind) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return fmt.Sprintf("run-%d-%s", runID, kind)
}
