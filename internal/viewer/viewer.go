package viewer

import (
	"context"

	"dataviewer/internal/hub"
	"dataviewer/internal/llm"
	"dataviewer/internal/logging"
	"dataviewer/internal/runner"
)

// Viewer orchestrates one invocation: load the dataset and its card, drive
// generation (or reuse the cached artifact), and hand the script to the
// rendering runtime.
type Viewer struct {
	hub    *hub.Client
	gen    *Generator
	runner runner.Runner

	dataset *hub.Dataset
	card    string
}

// New creates a viewer from its collaborators.
func New(client llm.Client, hubClient *hub.Client, r runner.Runner) *Viewer {
	return &Viewer{
		hub:    hubClient,
		gen:    NewGenerator(client),
		runner: r,
	}
}

// SetProgressCallback forwards to the generator.
func (v *Viewer) SetProgressCallback(fn func()) {
	v.gen.SetProgressCallback(fn)
}

// Load fetches the dataset table and, best effort, its card. A card fetch
// failure of any kind is recorded as "no documentation available" and never
// surfaced; a misconfigured token is indistinguishable from a missing file
// here, and that is deliberate.
func (v *Viewer) Load(ctx context.Context, name string) error {
	ds, err := v.hub.LoadDataset(ctx, name)
	if err != nil {
		return err
	}
	v.dataset = ds

	card, err := v.hub.FetchCard(ctx, name)
	if err != nil {
		logging.DatasetWarn("no dataset card for %s: %v", name, err)
		card = ""
	}
	v.card = card
	return nil
}

// Dataset returns the loaded dataset handle, nil before Load.
func (v *Viewer) Dataset() *hub.Dataset {
	return v.dataset
}

// Card returns the dataset card text, empty when unavailable.
func (v *Viewer) Card() string {
	return v.card
}

// Generate produces (or reuses) the viewer artifact for a split.
func (v *Viewer) Generate(ctx context.Context, split, extraPrompt string, force bool) (string, error) {
	if v.dataset == nil {
		return "", ErrNoDataset
	}
	return v.gen.Generate(ctx, GenerateRequest{
		Dataset:     v.dataset.Name,
		Source:      v.dataset,
		Card:        v.card,
		Split:       split,
		ExtraPrompt: extraPrompt,
		Force:       force,
	})
}

// Run hands an already-generated artifact to the rendering runtime.
func (v *Viewer) Run(ctx context.Context, path string) error {
	return v.runner.Run(ctx, path)
}

// GenerateAndRun generates (or reuses) the artifact, then launches it in the
// rendering runtime. The subprocess is not supervised.
func (v *Viewer) GenerateAndRun(ctx context.Context, split, extraPrompt string, force bool) error {
	path, err := v.Generate(ctx, split, extraPrompt, force)
	if err != nil {
		return err
	}
	return v.runner.Run(ctx, path)
}
