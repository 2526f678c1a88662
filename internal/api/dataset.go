package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

// ErrNotCSV is reported before any upload when the file is not a .csv.
var ErrNotCSV = errors.New("only .csv files are supported")

func (c *client) UploadDataset(ctx context.Context, name string, userID int, filename string, file io.Reader) (models.Dataset, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrNotCSV, filename)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("dataset_name", name); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to encode upload form: %w", err)
	}
	if err := writer.WriteField("user_id", strconv.Itoa(userID)); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to encode upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to encode upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to encode upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, apipath(c.artifactsAPI, "datasets"), body, writer.FormDataContentType())
	if err != nil {
		return models.Dataset{}, err
	}

	var dataset models.Dataset
	if err := c.do(req, &dataset); err != nil {
		return models.Dataset{}, err
	}
	return dataset, nil
}

func (c *client) ListDatasets(ctx context.Context, userID int) ([]models.Dataset, error) {
	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))

	var datasets []models.Dataset
	u := apipath(c.artifactsAPI, "datasets") + "?" + query.Encode()
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}
