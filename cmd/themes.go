package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"slidecraft/internal/html"
	"slidecraft/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List PowerPoint themes and HTML styles",
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("PowerPoint themes"))
	for _, th := range theme.All() {
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Color(theme.RolePrimary).Hex())).
			Render("██")
		marker := "  "
		if th.Key == theme.DefaultKey {
			marker = successStyle.Render("* ")
		}
		fmt.Printf("%s%s %-18s %s\n", marker, swatch, th.Key, th.Name)
	}
	fmt.Println()

	fmt.Println(titleStyle.Render("HTML styles"))
	for _, key := range html.Styles() {
		marker := "  "
		if key == html.DefaultStyle {
			marker = successStyle.Render("* ")
		}
		fmt.Printf("%s%s\n", marker, key)
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Pick one with: slidecraft new --theme <key>"))
	return nil
}
