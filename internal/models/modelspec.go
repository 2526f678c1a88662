package models

import (
	"encoding/json"
	"strings"
)

// ParamType mirrors the catalog's parameter type tags. The catalog splits
// numeric parameters into int and float; both behave as a single numeric
// kind on the client.
type ParamType string

const (
	ParamInt   ParamType = "int"
	ParamFloat ParamType = "float"
	ParamEnum  ParamType = "enum"
	ParamBool  ParamType = "bool"
)

func (t ParamType) Numeric() bool {
	return t == ParamInt || t == ParamFloat
}

// ParamSpec describes one configurable parameter of a trainable model.
// Default and Options keep the server's raw JSON so numeric literals keep
// their lexical form ("1.0" stays "1.0", not "1").
type ParamSpec struct {
	Name     string            `json:"name"`
	Type     ParamType         `json:"type"`
	Default  json.RawMessage   `json:"default,omitempty"`
	Options  []json.RawMessage `json:"options,omitempty"`
	Min      *float64          `json:"min,omitempty"`
	Max      *float64          `json:"max,omitempty"`
	Step     *float64          `json:"step,omitempty"`
	Nullable bool              `json:"nullable,omitempty"`
}

type ModelSpec struct {
	Name       string      `json:"name"`
	Parameters []ParamSpec `json:"parameters"`
}

type ModelCatalog struct {
	Models []ModelSpec `json:"models"`
}

// Param returns the spec of the named parameter, if declared.
func (m ModelSpec) Param(name string) (ParamSpec, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// RawValueString renders a raw JSON scalar the way the form layer encodes
// values: strings unquoted, numbers and booleans verbatim, null as "".
func RawValueString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err == nil {
			return unquoted
		}
	}
	return s
}
