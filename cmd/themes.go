package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/dbug/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Long: `List the built-in theme presets. Set one with 'theme.preset' in the
config file, pass --theme, or press t in the viewer to cycle through them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		writeThemes(cmd.OutOrStdout(), cfg.Theme.Preset)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

// writeThemes lists presets with a swatch of their outline colors. current
// is marked with an asterisk.
func writeThemes(w io.Writer, current string) {
	if current == "" {
		current = styles.DefaultPreset.Name
	}

	width := 0
	for _, name := range styles.PresetNames() {
		width = max(width, lipgloss.Width(name))
	}

	for _, name := range styles.PresetNames() {
		preset := styles.Presets[name]
		marker := " "
		if name == current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %-*s  %s  %s\n", marker, width, name, swatch(preset), preset.Description)
	}
}

func swatch(p styles.Preset) string {
	tokens := []styles.ColorToken{
		styles.TokenPrimaryBase,
		styles.TokenSecondaryBase,
		styles.TokenSuccessBase,
		styles.TokenBackgroundStrong,
	}
	var out string
	for _, tok := range tokens {
		hex, ok := p.Colors[tok]
		if !ok {
			hex = styles.DefaultPreset.Colors[tok]
		}
		out += lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
	}
	return out
}
