package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseParamsFile reads a hyperparameter override file, dispatching on the
// file extension.
func ParseParamsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameters file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONParams(f)
	case ".yaml", ".yml":
		return ParseYAMLParams(f)
	default:
		return nil, fmt.Errorf("unsupported parameters file format: %s (valid: .json, .yaml, .yml)", path)
	}
}
