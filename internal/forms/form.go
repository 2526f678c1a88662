// Package forms derives an editable hyperparameter set from a model's
// catalog entry. It is a pure map transform: no rendering, no network.
package forms

import (
	"fmt"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

// Values maps parameter name to its string-encoded value. Values are
// treated as immutable; Apply returns a fresh map instead of mutating.
type Values map[string]string

// Defaults builds the initial value set for a model: every declared
// parameter keyed to its default's string form, or "" when the catalog
// declares no default. Switching models means calling Defaults again for
// the new spec; nothing carries over.
func Defaults(spec models.ModelSpec) Values {
	values := make(Values, len(spec.Parameters))
	for _, p := range spec.Parameters {
		values[p.Name] = models.RawValueString(p.Default)
	}
	return values
}

// Apply sets one parameter, leaving every other entry untouched. The input
// map is never mutated. Unknown names and enum/bool values outside the
// declared options are rejected.
func Apply(spec models.ModelSpec, values Values, name, value string) (Values, error) {
	param, ok := spec.Param(name)
	if !ok {
		return nil, fmt.Errorf("model %s has no parameter %q", spec.Name, name)
	}
	if err := checkOptions(param, value); err != nil {
		return nil, err
	}

	next := make(Values, len(values))
	for k, v := range values {
		next[k] = v
	}
	next[name] = value
	return next, nil
}

// Serialize copies the current values into a run configuration. Values stay
// string-encoded on the wire; the backend coerces them per parameter type.
func Serialize(spec models.ModelSpec, values Values) models.RunConfiguration {
	hyperparameters := make(map[string]string, len(values))
	for k, v := range values {
		hyperparameters[k] = v
	}
	return models.RunConfiguration{
		Model:           spec.Name,
		Hyperparameters: hyperparameters,
	}
}

func checkOptions(param models.ParamSpec, value string) error {
	if len(param.Options) == 0 {
		return nil
	}
	if value == "" && param.Nullable {
		return nil
	}
	for _, opt := range param.Options {
		if models.RawValueString(opt) == value {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for parameter %s", value, param.Name)
}
