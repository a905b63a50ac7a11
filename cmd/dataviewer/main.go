package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dataviewer/cmd/dataviewer/ui"
	"dataviewer/internal/config"
	"dataviewer/internal/hub"
	"dataviewer/internal/llm"
	"dataviewer/internal/logging"
	"dataviewer/internal/runner"
	"dataviewer/internal/viewer"
)

var (
	// Global flags
	verbose bool
	model   string
	timeout time.Duration

	// View flags
	split       string
	extraPrompt string
	force       bool

	// Logger
	logger *zap.Logger
)

// rootCmd generates and runs a viewer for a hub dataset.
var rootCmd = &cobra.Command{
	Use:   "dataviewer [dataset]",
	Short: "AI-generated Streamlit viewers for Hugging Face datasets",
	Long: `dataviewer asks a language model to write a Streamlit script that
visualizes instances of a Hugging Face dataset, then launches it.

The backend is selected from the environment: ANTHROPIC_API_KEY wins over
OPENAI_API_KEY, which wins over GEMINI_API_KEY. Generated scripts are cached
as view_<dataset>_<split>.py next to the working directory; pass --force to
regenerate.

Example:
  dataviewer mnist
  dataviewer princeton-nlp/SWE-bench -s test -p "show the patch as a diff"`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if wd, err := os.Getwd(); err == nil {
			if err := logging.Initialize(wd); err != nil {
				logger.Warn("debug logging unavailable", zap.Error(err))
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runView,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Override the model used for generation")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout for the whole run (0 = none)")

	rootCmd.Flags().StringVarP(&split, "split", "s", "train", "Dataset split to visualize")
	rootCmd.Flags().StringVarP(&extraPrompt, "prompt", "p", "", "Additional requirements for the visualization")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Force regeneration of the viewer")

	rootCmd.AddCommand(infoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if isInvalidArgument(err) {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("invalid argument: "+err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("error: "+err.Error()))
		}
		os.Exit(1)
	}
}

// isInvalidArgument reports whether the error belongs to the precondition /
// configuration class, which gets the distinct presentation.
func isInvalidArgument(err error) bool {
	return errors.Is(err, llm.ErrNoCredentials) ||
		errors.Is(err, viewer.ErrNoDataset) ||
		errors.Is(err, viewer.ErrNoClient)
}

// commandContext returns the run context, honoring --timeout and SIGINT.
func commandContext() (context.Context, context.CancelFunc) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// runView drives the fixed sequence: resolve client, load dataset,
// generate-or-reuse, launch.
func runView(cmd *cobra.Command, args []string) error {
	dataset := args[0]

	ctx, cancel := commandContext()
	defer cancel()

	// The model client must resolve before any dataset work happens.
	client, err := llm.NewClientFromEnv()
	if err != nil {
		return err
	}
	if model != "" {
		if m, ok := client.(interface{ SetModel(string) }); ok {
			m.SetModel(model)
		}
	}

	userCfg, err := config.LoadUserConfig(config.DefaultUserConfigPath())
	if err != nil {
		logger.Warn("ignoring unreadable config", zap.Error(err))
		userCfg = &config.UserConfig{}
	}

	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("🔧 Setting up dataviewer for %s", dataset)))

	hubClient := hub.NewClientWithConfig(hub.Config{Token: userCfg.GetHFToken()})
	v := viewer.New(client, hubClient, runner.NewStreamlit(userCfg.GetStreamlit()))

	fmt.Println(ui.InfoStyle.Render("📚 Loading dataset..."))
	if err := v.Load(ctx, dataset); err != nil {
		return err
	}

	path := viewer.ArtifactPath(dataset, split)
	_, statErr := os.Stat(path)
	cached := statErr == nil && !force

	if cached {
		fmt.Println(ui.SuccessStyle.Render("📋 Using cached viewer (pass --force to regenerate)"))
	} else {
		fmt.Println(ui.WarnStyle.Render("🤖 Generating Streamlit viewer..."))
		path, err = generateWithSpinner(ctx, v)
		if err != nil {
			return err
		}
		fmt.Println(ui.SuccessStyle.Render("✨ Viewer generated successfully!"))
	}

	fmt.Println(ui.SuccessStyle.Render("🚀 Launching Streamlit..."))
	return v.Run(ctx, path)
}

type generateResult struct {
	path string
	err  error
}

// generateWithSpinner runs generation while a spinner repaints the status
// line. The generator's progress callback posts the completion message as
// soon as the model call returns; the error path posts it as well, so the
// spinner can never outlive the generation.
func generateWithSpinner(ctx context.Context, v *viewer.Viewer) (string, error) {
	wait := ui.NewWait("Waiting for the model to write the visualization code")
	p := tea.NewProgram(wait, tea.WithoutSignalHandler())

	v.SetProgressCallback(func() {
		p.Send(ui.DoneMsg{})
	})
	defer v.SetProgressCallback(nil)

	resultCh := make(chan generateResult, 1)
	go func() {
		path, err := v.Generate(ctx, split, extraPrompt, force)
		resultCh <- generateResult{path: path, err: err}
		p.Send(ui.DoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// Spinner failure is cosmetic; generation still decides the outcome.
		logger.Debug("spinner terminated", zap.Error(err))
	}

	res := <-resultCh
	return res.path, res.err
}
