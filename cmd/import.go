package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/dbug/internal/legacy"
	"github.com/zjrosen/dbug/internal/paths"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import payloads saved by the desktop app",
	Long: `Import the data.json written by the previous dbug desktop app.

Without a path, ~/.dbug/data.json is read. Imported payloads keep their
original receive time and are listed under the path /imported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cleanupLog, err := initDebugLog(debugEnabled(), "dbug-import")
	if err != nil {
		return err
	}
	defer cleanupLog()

	src := paths.LegacyDataFile()
	if len(args) == 1 {
		src = paths.ExpandHome(args[0])
	}

	st, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := legacy.Import(cmd.Context(), st.svc, src)
	if err != nil {
		return fmt.Errorf("importing %s: %w", src, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d payloads from %s", res.Imported, src)
	if res.Skipped > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped)", res.Skipped)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
