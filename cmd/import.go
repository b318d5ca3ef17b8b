package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/transcode"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all scenarios with the contents of a CSV or XLSX file",
	Long: "Import scenarios from a CSV or XLSX export. The file type is detected from its " +
		"content. Every existing scenario is replaced; nothing changes if the file fails to parse. " +
		"Use - to read from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	name := args[0]
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	scenarios, err := transcode.Decode(r, name, ws.NewID)
	if err != nil {
		return fmt.Errorf("import failed, nothing changed: %w", err)
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("import failed, nothing changed: %s has no category rows", name)
	}

	var cats int
	for _, s := range scenarios {
		cats += len(s.Categories)
	}
	log.Debug().Str("file", name).Int("scenarios", len(scenarios)).Int("categories", cats).Msg("decoded import")

	if !flagYes {
		ok := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Replace %d scenarios with %d from %s?", len(ws.Scenarios()), len(scenarios), name)).
			Description(fmt.Sprintf("%d categories will be imported. Current data is discarded.", cats)).
			Affirmative("Import").
			Negative("Cancel").
			Value(&ok).
			Run()
		if err != nil {
			if aborted(err) {
				return nil
			}
			return err
		}
		if !ok {
			infof("  Import cancelled.\n")
			return nil
		}
	}

	if err := ws.ReplaceAll(cmd.Context(), scenarios); err != nil {
		return err
	}
	infof("  Imported %d scenarios (%d categories)\n", len(scenarios), cats)
	if active, ok := ws.Active(); ok {
		fmt.Println(cli.RenderMuted("  Active scenario: " + active.Name))
	}
	return nil
}
