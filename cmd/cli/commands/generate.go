package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/core/services"
	"github.com/fantaelite/draftmaster/pkg/db"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		opts    services.GenerateRosterOptions
		seed    uint64
		output  string
		publish bool
		record  bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a roster that fills every role within the budget band",
		Long: `Generate a 25-player roster (3 goalkeepers, 8 defenders, 8 midfielders, 6 forwards
by default) whose total cost lands inside the budget band.

Flags override the generation defaults from the config file. A roster that misses the
band after every attempt is reported as best effort; a roster that cannot be completed
at all is reported as failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Seed = nil
			if cmd.Flags().Changed("seed") {
				s := seed
				opts.Seed = &s
			}

			app.Logger.Debug("generate command",
				zap.String("strategy", opts.Strategy),
				zap.Float64("budget", opts.Budget),
				zap.Bool("publish", publish),
				zap.Bool("record", record),
				zap.Bool("dry_run", dryRun))

			source, err := app.CatalogSource()
			if err != nil {
				return err
			}

			var history db.GenerationStore
			if record {
				database, err := app.Database()
				if err != nil {
					return err
				}
				history = database
			}

			result, err := services.GenerateRoster(app.Ctx, source, history, app.Cfg, app.Logger, opts, dryRun)
			if err != nil {
				return err
			}

			outcome := result.Outcome
			app.LastOutcome = outcome
			fmt.Print(formatOutcome(outcome))

			if outcome.Status == roster.StatusFailed {
				return fmt.Errorf("no roster generated: %w", outcome.Reason)
			}

			if output != "" {
				if err := services.ExportRoster(outcome, output, app.Cfg.Delimiter(), app.Logger); err != nil {
					return err
				}
				fmt.Printf("\nExported to %s\n", output)
			}

			if publish && !dryRun {
				client, err := app.Sheets()
				if err != nil {
					return err
				}
				tab, err := services.PublishRoster(app.Ctx, client, app.Cfg, outcome, app.Logger)
				if err != nil {
					return err
				}
				fmt.Printf("\nPublished to tab %q\n", tab)
			}

			if result.Saved {
				fmt.Printf("\nRecorded generation %s\n", outcome.ID)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "Strategy name (see listStrategies)")
	cmd.Flags().Float64VarP(&opts.Budget, "budget", "b", 0, "Budget in credits, or target percentage with --percentage")
	cmd.Flags().BoolVar(&opts.Percentage, "percentage", false, "Treat costs and budget as percentages of the reference budget")
	cmd.Flags().Float64Var(&opts.MinPct, "min-pct", 0, "Lower bound of the budget band in percent")
	cmd.Flags().Float64Var(&opts.MaxPct, "max-pct", 0, "Upper bound of the budget band in percent")
	cmd.Flags().IntVar(&opts.MaxAttempts, "attempts", 0, "Maximum build attempts (1-1000)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible roster")
	cmd.Flags().StringVar(&opts.Reference, "reference", "", "Cost reference: baseline or pool_max")
	cmd.Flags().Float64Var(&opts.Baseline, "baseline", 0, "Baseline budget the catalog is priced against")
	cmd.Flags().StringVar(&opts.MultiRole, "multi-role", "", "Multi-role players: first or any")
	cmd.Flags().IntVar(&opts.MaxPerClub, "max-per-club", 0, "Maximum players from one club (0 for no limit)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export the roster to this file")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the roster to the configured spreadsheet")
	cmd.Flags().BoolVar(&record, "record", false, "Record the generation in the database")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not record or publish anything")

	return cmd
}
