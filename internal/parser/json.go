package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func ParseJSONParams(reader io.Reader) (map[string]string, error) {
	var data models.ParametersFile
	decoder := json.NewDecoder(reader)

	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON parameters: %w", err)
	}

	return data.Hyperparameters, nil
}
