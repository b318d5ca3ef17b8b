package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/transcode"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every scenario to CSV or XLSX",
	Long: "Export every scenario as one row per category. Scenarios without categories " +
		"have no rows and are left out of the file.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "csv or xlsx (default: from --out, else csv)")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file, or - for stdout (default: budgetflow_data.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func exportFormat() (transcode.Format, error) {
	if flagExportFormat != "" {
		return transcode.ParseFormat(flagExportFormat)
	}
	if ext := filepath.Ext(flagExportOut); ext != "" {
		if f, err := transcode.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return transcode.FormatCSV, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := exportFormat()
	if err != nil {
		return err
	}
	out := flagExportOut
	if out == "" {
		out = format.DefaultFilename()
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	scenarios := ws.Scenarios()
	if empty := transcode.EmptyScenarios(scenarios); len(empty) > 0 {
		fmt.Fprintln(os.Stderr, cli.RenderWarning("Not exported (no categories): "+strings.Join(empty, ", ")))
	}

	if out == "-" {
		return transcode.Encode(os.Stdout, format, scenarios)
	}
	if err := writeExport(out, format, scenarios); err != nil {
		return err
	}

	var cats int
	for _, s := range scenarios {
		cats += len(s.Categories)
	}
	infof("  Exported %d scenarios (%d categories) to %s\n", len(scenarios), cats, out)
	return nil
}

// writeExport encodes into a temp file beside path and renames it into place.
func writeExport(path string, format transcode.Format, scenarios []model.Scenario) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".budgetflow-export-*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := transcode.Encode(tmp, format, scenarios); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
