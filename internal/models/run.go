package models

import "time"

type RunStatus string

const (
	RunStatusInQueue    RunStatus = "in queue"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// Valid run statuses
var validRunStatuses = map[RunStatus]bool{
	RunStatusInQueue:    true,
	RunStatusProcessing: true,
	RunStatusCompleted:  true,
	RunStatusFailed:     true,
}

func (s RunStatus) Valid() bool {
	return validRunStatuses[s]
}

// RunConfiguration is built client-side from the selected model's spec and
// the current form values. Hyperparameters stay string-valued on the wire;
// the backend interprets them per the catalog's parameter types.
type RunConfiguration struct {
	Model           string            `json:"model"`
	Hyperparameters map[string]string `json:"hyperparameters"`
}

type Run struct {
	ID            int              `json:"id"`
	UserID        int              `json:"user_id"`
	DatasetID     int              `json:"dataset_id"`
	Status        RunStatus        `json:"status"`
	Configuration RunConfiguration `json:"configuration"`
	CreatedAt     time.Time        `json:"created_at"`
}

type RunCreate struct {
	DatasetID     int              `json:"dataset_id"`
	Configuration RunConfiguration `json:"configuration"`
}

// ArtifactKind selects which byproduct of a completed run to download.
type ArtifactKind string

const (
	ArtifactModel   ArtifactKind = "model"
	ArtifactResults ArtifactKind = "results"
)

var validArtifactKinds = map[ArtifactKind]bool{
	ArtifactModel:   true,
	ArtifactResults: true,
}

func (k ArtifactKind) Valid() bool {
	return validArtifactKinds[k]
}
