// Package orchestrator coordinates the run-submission flow: loading
// datasets, the model catalog and the run list, tracking the selected
// dataset and model, and turning the current form values into a submitted
// run.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/CSU-ITMO-2025-2/team7/internal/api"
	"github.com/CSU-ITMO-2025-2/team7/internal/forms"
	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

// Validation failures, detected before any network call.
var (
	ErrNoDatasetSelected = errors.New("no dataset selected")
	ErrNoModelSelected   = errors.New("no model selected")
	ErrModelsNotLoaded   = errors.New("model catalog is not loaded")
)

// ErrArtifactNotReady distinguishes "the run has not produced this file
// yet" from hard failures.
var ErrArtifactNotReady = errors.New("artifact is not available yet")

type Orchestrator struct {
	client api.Client

	user     *Slot[models.User]
	datasets *Slot[[]models.Dataset]
	catalog  *Slot[[]models.ModelSpec]
	runs     *Slot[[]models.Run]

	selectedDataset int // 0 means none
	selectedModel   string
	values          forms.Values
}

func New(client api.Client) *Orchestrator {
	return &Orchestrator{
		client:   client,
		user:     NewSlot[models.User](),
		datasets: NewSlot[[]models.Dataset](),
		catalog:  NewSlot[[]models.ModelSpec](),
		runs:     NewSlot[[]models.Run](),
	}
}

// Refresh loads every resource. The catalog and run loaders are
// independent and run concurrently; datasets depend on the current user's
// id, so that pair is sequenced. One loader failing does not stop the
// others; failures land in the owning slot.
func (o *Orchestrator) Refresh(ctx context.Context) {
	g := new(errgroup.Group)
	g.Go(func() error {
		o.loadCatalog(ctx)
		return nil
	})
	g.Go(func() error {
		o.loadRuns(ctx)
		return nil
	})
	g.Go(func() error {
		o.loadDatasets(ctx)
		return nil
	})
	g.Wait()
}

func (o *Orchestrator) loadCatalog(ctx context.Context) {
	gen, err := o.catalog.Begin(ctx)
	if err != nil {
		return
	}
	specs, err := o.client.ListModels(ctx)
	if !o.catalog.Complete(ctx, gen, specs, err) || err != nil {
		return
	}
	o.autoSelectModel(specs)
}

func (o *Orchestrator) loadRuns(ctx context.Context) {
	gen, err := o.runs.Begin(ctx)
	if err != nil {
		return
	}
	runs, err := o.client.ListRuns(ctx)
	o.runs.Complete(ctx, gen, runs, err)
}

// loadDatasets resolves the owning user first; the dataset listing is
// scoped by user id.
func (o *Orchestrator) loadDatasets(ctx context.Context) {
	ugen, err := o.user.Begin(ctx)
	if err != nil {
		return
	}
	user, err := o.client.CurrentUser(ctx)
	if !o.user.Complete(ctx, ugen, user, err) {
		return
	}
	if err != nil {
		// the dependent load fails with its prerequisite
		if dgen, berr := o.datasets.Begin(ctx); berr == nil {
			o.datasets.Complete(ctx, dgen, nil, fmt.Errorf("cannot resolve current user: %w", err))
		}
		return
	}

	dgen, err := o.datasets.Begin(ctx)
	if err != nil {
		return
	}
	datasets, err := o.client.ListDatasets(ctx, user.ID)
	o.datasets.Complete(ctx, dgen, datasets, err)
}

// autoSelectModel keeps the previously selected model when the catalog
// still lists it, otherwise takes the first entry, and rebuilds the form
// values from that model's defaults.
func (o *Orchestrator) autoSelectModel(specs []models.ModelSpec) {
	if len(specs) == 0 {
		return
	}
	name := specs[0].Name
	for _, spec := range specs {
		if spec.Name == o.selectedModel {
			name = spec.Name
			break
		}
	}
	o.SelectModel(name)
}

// SelectModel switches the form to the named model. The whole value set is
// rebuilt from the model's defaults; nothing carries over from the
// previously selected model.
func (o *Orchestrator) SelectModel(name string) error {
	spec, err := o.resolveModel(name)
	if err != nil {
		return err
	}
	o.selectedModel = spec.Name
	o.values = forms.Defaults(spec)
	return nil
}

func (o *Orchestrator) resolveModel(name string) (models.ModelSpec, error) {
	specs, ok := o.catalog.Get()
	if !ok {
		return models.ModelSpec{}, ErrModelsNotLoaded
	}
	for _, spec := range specs {
		if spec.Name == name {
			return spec, nil
		}
	}
	return models.ModelSpec{}, fmt.Errorf("unknown model: %s", name)
}

// SelectedModel returns the spec of the currently selected model.
func (o *Orchestrator) SelectedModel() (models.ModelSpec, bool) {
	if o.selectedModel == "" {
		return models.ModelSpec{}, false
	}
	spec, err := o.resolveModel(o.selectedModel)
	if err != nil {
		return models.ModelSpec{}, false
	}
	return spec, true
}

// SetParam edits one hyperparameter of the selected model.
func (o *Orchestrator) SetParam(name, value string) error {
	spec, ok := o.SelectedModel()
	if !ok {
		return ErrNoModelSelected
	}
	values, err := forms.Apply(spec, o.values, name, value)
	if err != nil {
		return err
	}
	o.values = values
	return nil
}

// Values exposes the current form values.
func (o *Orchestrator) Values() forms.Values {
	return o.values
}

func (o *Orchestrator) SelectDataset(id int) {
	o.selectedDataset = id
}

func (o *Orchestrator) SelectedDataset() (int, bool) {
	return o.selectedDataset, o.selectedDataset != 0
}

func (o *Orchestrator) User() (models.User, bool)          { return o.user.Get() }
func (o *Orchestrator) Datasets() ([]models.Dataset, bool) { return o.datasets.Get() }
func (o *Orchestrator) Models() ([]models.ModelSpec, bool) { return o.catalog.Get() }
func (o *Orchestrator) Runs() ([]models.Run, bool)         { return o.runs.Get() }

func (o *Orchestrator) DatasetsErr() error { return o.datasets.Err() }
func (o *Orchestrator) ModelsErr() error   { return o.catalog.Err() }
func (o *Orchestrator) RunsErr() error     { return o.runs.Err() }

// Submit validates the selection, creates the run, clears the dataset
// selection and reloads the run list. Validation failures never reach the
// network; a gateway failure leaves every selection as it was.
func (o *Orchestrator) Submit(ctx context.Context) (models.Run, error) {
	datasetID, ok := o.SelectedDataset()
	if !ok {
		return models.Run{}, ErrNoDatasetSelected
	}
	spec, ok := o.SelectedModel()
	if !ok {
		return models.Run{}, ErrNoModelSelected
	}

	run, err := o.client.CreateRun(ctx, models.RunCreate{
		DatasetID:     datasetID,
		Configuration: forms.Serialize(spec, o.values),
	})
	if err != nil {
		return models.Run{}, err
	}

	o.selectedDataset = 0
	o.loadRuns(ctx)
	return run, nil
}

// OpenArtifact checks the run has completed and opens the produced file.
// A 404 from the artifact service means the file has not landed yet and is
// reported as ErrArtifactNotReady.
func (o *Orchestrator) OpenArtifact(ctx context.Context, runID int, kind models.ArtifactKind) (*api.ArtifactStream, error) {
	run, err := o.client.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != models.RunStatusCompleted {
		return nil, fmt.Errorf("run %d is %q; artifacts appear when it completes", runID, run.Status)
	}

	stream, err := o.client.DownloadArtifact(ctx, runID, kind)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: run %d has no %s file", ErrArtifactNotReady, runID, kind)
		}
		return nil, err
	}
	return stream, nil
}
