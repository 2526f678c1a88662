package api

import (
	"context"
	"net/http"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

// ListModels fetches the trainable-model catalog. The bearer header is
// attached when a token is present, but the catalog endpoint does not
// require one in every deployment.
func (c *client) ListModels(ctx context.Context) ([]models.ModelSpec, error) {
	var catalog models.ModelCatalog
	if err := c.doJSON(ctx, http.MethodGet, apipath(c.modelsAPI, "models"), nil, &catalog); err != nil {
		return nil, err
	}
	return catalog.Models, nil
}
