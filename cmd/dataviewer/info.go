package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"dataviewer/cmd/dataviewer/ui"
	"dataviewer/internal/config"
	"dataviewer/internal/hub"
)

// infoCmd prints the split inventory and renders the dataset card without
// touching the model.
var infoCmd = &cobra.Command{
	Use:   "info [dataset]",
	Short: "Show splits and the dataset card for a hub dataset",
	Long: `Fetches the split inventory and the dataset card (README) from the
Hugging Face hub and prints them. No model call is made.

Example:
  dataviewer info mnist`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	dataset := args[0]

	ctx, cancel := commandContext()
	defer cancel()

	userCfg, err := config.LoadUserConfig(config.DefaultUserConfigPath())
	if err != nil {
		userCfg = &config.UserConfig{}
	}
	hubClient := hub.NewClientWithConfig(hub.Config{Token: userCfg.GetHFToken()})

	ds, err := hubClient.LoadDataset(ctx, dataset)
	if err != nil {
		return err
	}

	fmt.Println(ui.SuccessStyle.Render("Dataset: " + ds.Name))
	for _, s := range ds.Splits {
		line := fmt.Sprintf("  %s/%s", s.Config, s.Name)
		if s.NumRows > 0 {
			line = fmt.Sprintf("%s (%d rows)", line, s.NumRows)
		}
		fmt.Println(ui.InfoStyle.Render(line))
	}

	card, err := hubClient.FetchCard(ctx, dataset)
	if err != nil {
		fmt.Println(ui.MutedStyle.Render("No dataset card available."))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(card)
		return nil
	}
	out, err := renderer.Render(card)
	if err != nil {
		fmt.Println(card)
		return nil
	}
	fmt.Print(out)
	return nil
}
