// Package runner launches generated viewer scripts in the external rendering
// runtime. It does not speak the Streamlit protocol; it only shells out.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"dataviewer/internal/logging"
)

// Runner hands a generated artifact to the rendering runtime.
type Runner interface {
	Run(ctx context.Context, scriptPath string) error
}

// Streamlit runs viewer scripts with `streamlit run <path>`.
type Streamlit struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewStreamlit creates a runner using the given binary, default "streamlit".
func NewStreamlit(binary string) *Streamlit {
	if binary == "" {
		binary = "streamlit"
	}
	return &Streamlit{
		Binary: binary,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run launches the viewer and blocks until it exits. The subprocess is not
// supervised: a non-zero exit (typically the user closing the app) is not an
// error, only a failure to launch is.
func (s *Streamlit) Run(ctx context.Context, scriptPath string) error {
	logging.Runner("launching %s run %s", s.Binary, scriptPath)

	cmd := exec.CommandContext(ctx, s.Binary, "run", scriptPath)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logging.Runner("%s exited with status %d", s.Binary, exitErr.ExitCode())
			return nil
		}
		logging.RunnerError("failed to launch %s: %v", s.Binary, err)
		return fmt.Errorf("failed to launch %s: %w", s.Binary, err)
	}
	return nil
}
