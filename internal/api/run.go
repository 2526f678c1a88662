package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func (c *client) CreateRun(ctx context.Context, req models.RunCreate) (models.Run, error) {
	var run models.Run
	if err := c.doJSON(ctx, http.MethodPost, apipath(c.controlAPI, "runs"), req, &run); err != nil {
		return models.Run{}, err
	}
	return run, nil
}

func (c *client) ListRuns(ctx context.Context) ([]models.Run, error) {
	var runs []models.Run
	if err := c.doJSON(ctx, http.MethodGet, apipath(c.controlAPI, "runs"), nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (c *client) GetRun(ctx context.Context, runID int) (models.Run, error) {
	var run models.Run
	if err := c.doJSON(ctx, http.MethodGet, apipath(c.controlAPI, "runs", strconv.Itoa(runID)), nil, &run); err != nil {
		return models.Run{}, err
	}
	return run, nil
}
