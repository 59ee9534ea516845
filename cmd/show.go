package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/jsonview"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/ui/jsonblock"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one payload as an outline",
	Long: `Print a stored payload as the viewer would draw it.

Lines named by --fold are collapsed. Line numbers are 1-based, as shown in
the gutter. Colors are dropped with --plain or when stdout is not a
terminal.

Example:
  dbug show 01J8Z3...            # full outline
  dbug show 01J8Z3... --fold 2,9 # collapse the blocks opening on lines 2 and 9
  dbug show 01J8Z3... --plain    # indented text only`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntSlice("fold", nil, "1-based line numbers to collapse")
	showCmd.Flags().Bool("plain", false, "print uncolored text without a gutter")
}

func runShow(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if err := applyTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	st, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.svc.Get(cmd.Context(), args[0])
	if err != nil {
		if payload.IsNotFound(err) {
			return fmt.Errorf("no payload with id %q", args[0])
		}
		return err
	}

	folds, _ := cmd.Flags().GetIntSlice("fold")
	plain, _ := cmd.Flags().GetBool("plain")
	writeOutline(cmd.OutOrStdout(), p, folds, plain, cfg.UI)
	return nil
}

// writeOutline renders p with the 1-based lines in folds collapsed.
func writeOutline(w io.Writer, p *payload.Payload, folds []int, plain bool, ui config.UIConfig) {
	collapsed := jsonview.NewCollapsedSet()
	for _, n := range folds {
		collapsed.Add(n - 1)
	}

	theme := styles.CurrentPalette()
	lines := jsonview.Render(jsonview.NewDocument(p.Pretty()), collapsed, theme)
	if plain {
		_, _ = io.WriteString(w, jsonview.Plain(lines, ui.IndentSize))
		return
	}
	_, _ = fmt.Fprintln(w, jsonblock.RenderString(lines, jsonblock.Options{
		IndentSize:  ui.IndentSize,
		LineNumbers: ui.LineNumbers,
		Theme:       theme,
	}))
}
