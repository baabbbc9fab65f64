package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"slidecraft/internal/app"
	"slidecraft/pkg/config"
)

var (
	convertStyle  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <deck.json>",
	Short: "Re-render saved deck data as a styled HTML deck",
	Long: `Re-render deck data written by "batch --json" in another HTML style
without calling the model again. Also writes the converted PowerPoint
file. Works offline; no API key is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertStyle, "style", "s", "", "HTML style: vibrant, modern or dark")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file name")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	pipeline := app.NewPipeline(app.BuildRenderService(cfg))

	result, err := pipeline.Convert(ctx, app.ConvertRequest{
		InputPath: args[0],
		Style:     convertStyle,
		FileName:  convertOutput,
	})
	if err != nil {
		return err
	}

	slog.Info("Deck converted",
		"title", result.Title,
		"style", result.Style,
		"html", result.HTMLPath,
		"pptx", result.PPTXPath)
	return nil
}
