// Package viewer generates Streamlit viewer scripts for hub datasets. The
// pipeline is: sample the split, build a prompt, ask the model for a
// display_instance function, strip markdown fences, embed the code in the
// fixed navigation template, and write the artifact next to the working
// directory. The artifact file doubles as the cache.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dataviewer/internal/hub"
	"dataviewer/internal/llm"
	"dataviewer/internal/logging"
)

var (
	// ErrNoDataset is returned when generation is requested before a
	// dataset is loaded.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrNoClient is returned when no language model is configured.
	ErrNoClient = errors.New("no language model configured")
)

// SampleSource supplies the first instance of a split. *hub.Dataset
// implements it; tests supply fixtures.
type SampleSource interface {
	FirstRow(ctx context.Context, split string) (hub.Instance, error)
}

// GenerateRequest carries one generation job.
type GenerateRequest struct {
	Dataset     string       // vendor-qualified dataset identifier
	Source      SampleSource // sample rows for the dataset
	Card        string       // dataset card text, empty when unavailable
	Split       string       // split to visualize
	ExtraPrompt string       // additional user requirements, may be empty
	Force       bool         // regenerate even when the artifact exists
	Dir         string       // output directory, default "."
}

// Generator turns a dataset sample into a runnable viewer script.
type Generator struct {
	client   llm.Client
	progress func()
}

// NewGenerator creates a generator backed by the given model client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// SetProgressCallback registers a callback fired once, immediately after the
// model call completes. The command surface uses it to stop the spinner.
func (g *Generator) SetProgressCallback(fn func()) {
	g.progress = fn
}

// ArtifactPath derives the viewer filename for a dataset and split. Pure in
// its inputs; path separators in the identifier are replaced so the artifact
// lands in a single directory.
func ArtifactPath(dataset, split string) string {
	return fmt.Sprintf("view_%s_%s.py", strings.ReplaceAll(dataset, "/", "_"), split)
}

// Generate produces the viewer artifact and returns its path. When the
// artifact already exists and Force is unset, the existing path is returned
// without contacting the model. The cache is file existence only; there is
// no staleness check.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Source == nil {
		return "", ErrNoDataset
	}
	if g.client == nil {
		return "", ErrNoClient
	}

	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ArtifactPath(req.Dataset, req.Split))

	if !req.Force {
		if _, err := os.Stat(path); err == nil {
			logging.Generator("using existing viewer at %s", path)
			return path, nil
		}
	}

	requestID := uuid.NewString()[:8]
	logging.Generator("[%s] generating viewer for %s split=%s force=%v", requestID, req.Dataset, req.Split, req.Force)

	sample, err := req.Source.FirstRow(ctx, req.Split)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(req.Dataset, req.Card, sample, req.ExtraPrompt)
	logging.GeneratorDebug("[%s] prompt_len=%d card_len=%d features=%d", requestID, len(prompt), len(req.Card), len(sample))

	code, err := g.client.CompleteWithSystem(ctx, systemMessage, prompt)
	if err != nil {
		return "", err
	}

	if g.progress != nil {
		g.progress()
	}

	code = stripCodeFence(code)

	script, err := renderViewer(req.Dataset, req.Split, code)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("failed to write viewer: %w", err)
	}

	logging.Generator("[%s] wrote %s (%d bytes)", requestID, path, len(script))
	return path, nil
}

// stripCodeFence removes a leading ```lang line and a trailing ``` line from
// model output. Exact prefix/suffix match only, and idempotent: code without
// fences passes through unchanged.
func stripCodeFence(code string) string {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, "```") {
		if idx := strings.Index(code, "\n"); idx != -1 {
			code = code[idx+1:]
		} else {
			code = ""
		}
	}
	if strings.HasSuffix(code, "\n```") {
		code = code[:len(code)-len("\n```")]
	}
	return code
}
