package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/core/services"
)

// ImportCatalogCmd creates the importCatalog command
func ImportCatalogCmd(app *AppContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "importCatalog",
		Short: "Load the configured catalog and store it in the database",
		Long: `Load the catalog from the configured source and upsert every usable player into
the database, so later runs can use the postgres catalog source.

Inside an interactive session this also refreshes the catalog later commands use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("importCatalog command", zap.Bool("dry_run", dryRun))

			if app.Cfg.Catalog.Source == "postgres" {
				return fmt.Errorf("catalog source is already postgres; configure a file, http or sheets source to import from")
			}

			source, err := app.CatalogSource()
			if err != nil {
				return err
			}
			// import the current catalog, not the copy cached earlier in the session
			source.Reset()

			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.ImportCatalog(app.Ctx, source, database, app.Logger, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\nRead %d rows, excluded %d\n", result.Report.Rows, result.Report.Excluded)
			if result.DryRun {
				fmt.Println("Dry run - nothing saved")
			} else {
				fmt.Printf("Imported %d players\n", result.Imported)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the catalog without saving")

	return cmd
}
