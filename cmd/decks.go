package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"slidecraft/internal/storage"
	"slidecraft/pkg/config"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Browse the Cloud Storage deck archive",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived deck files",
	RunE:  runDecksList,
}

var decksPullCmd = &cobra.Command{
	Use:   "pull <object>",
	Short: "Download an archived deck file to the output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecksPull,
}

func init() {
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksPullCmd)
	rootCmd.AddCommand(decksCmd)
}

func runDecksList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	archive, _, err := openArchive(ctx)
	if err != nil {
		return err
	}

	entries, err := archive.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(infoStyle.Render("Archive is empty"))
		return nil
	}

	fmt.Println(titleStyle.Render("Archived decks"))
	for _, entry := range entries {
		fmt.Printf("  %-60s %9s  %s\n", entry.Name, formatSize(entry.Size), entry.Created.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDecksPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	archive, cfg, err := openArchive(ctx)
	if err != nil {
		return err
	}

	path, err := archive.Download(ctx, args[0], cfg.Output.Dir)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ Downloaded to: " + path))
	return nil
}

func openArchive(ctx context.Context) (storage.Archive, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cfg.GCSBucket == "" {
		return nil, nil, errors.New("deck archive is not configured (set GCS_BUCKET)")
	}

	archive, err := storage.NewGCSArchive(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("init deck archive: %w", err)
	}
	return archive, cfg, nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
