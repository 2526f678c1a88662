package models

// ParametersFile is the shape of a hyperparameter override file passed to
// run submission.
type ParametersFile struct {
	Hyperparameters map[string]string `json:"hyperparameters" yaml:"hyperparameters"`
}
