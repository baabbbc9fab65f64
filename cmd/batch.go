package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"slidecraft/internal/app"
	"slidecraft/pkg/config"
)

var (
	batchTopic    string
	batchSlides   int
	batchTheme    string
	batchFormat   string
	batchStyle    string
	batchFileName string
	batchUpload   bool
	batchArchive  bool
	batchJSON     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a whole deck in one call, no review",
	Long: `Generate every slide from a single model call and write the deck
without stopping for feedback. Suited for scripting and quick drafts.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchTopic, "topic", "t", "", "Presentation topic (required)")
	batchCmd.Flags().IntVarP(&batchSlides, "slides", "n", 0, "Number of slides (3-20)")
	batchCmd.Flags().StringVar(&batchTheme, "theme", "", "Theme key for PowerPoint output")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", app.FormatPPTX, "Output format: pptx or html")
	batchCmd.Flags().StringVar(&batchStyle, "style", "", "HTML style: vibrant, modern or dark")
	batchCmd.Flags().StringVarP(&batchFileName, "output", "o", "", "Output file name")
	batchCmd.Flags().BoolVarP(&batchUpload, "upload", "u", false, "Upload the deck to Google Drive")
	batchCmd.Flags().BoolVar(&batchArchive, "archive", false, "Archive the deck to Cloud Storage")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Also write the deck data as JSON")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if batchTopic == "" {
		return errors.New("please provide --topic")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline := app.NewPipeline(service)

	result, err := pipeline.Generate(ctx, app.BatchRequest{
		Topic:      batchTopic,
		SlideCount: batchSlides,
		Theme:      batchTheme,
		Format:     batchFormat,
		FileName:   batchFileName,
		Style:      batchStyle,
		SaveJSON:   batchJSON,
	})
	if err != nil {
		return err
	}

	slog.Info("Deck generated",
		"title", result.Title,
		"slides", result.SlideCount,
		"path", result.PPTXPath)
	if result.HTMLPath != "" {
		slog.Info("HTML deck written", "style", result.Style, "path", result.HTMLPath)
	}
	if result.JSONPath != "" {
		slog.Info("Deck data written", "path", result.JSONPath)
	}
	printReview(result.Review)

	if batchArchive {
		objects, err := pipeline.Archive(ctx, result.PPTXPath, result.HTMLPath)
		if err != nil {
			return err
		}
		slog.Info("Deck archived", "objects", len(objects))
	}

	if batchUpload {
		response, err := pipeline.Publish(ctx, app.PublishRequest{
			FilePath:    result.PPTXPath,
			Name:        result.Title,
			Description: "Generated presentation on " + batchTopic,
		})
		if err != nil {
			return err
		}
		slog.Info("Upload complete", "url", response.URL)
	}

	return nil
}
