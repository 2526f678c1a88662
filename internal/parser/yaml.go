package parser

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func ParseYAMLParams(reader io.Reader) (map[string]string, error) {
	var data models.ParametersFile
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse YAML parameters: %w", err)
	}

	return data.Hyperparameters, nil
}
