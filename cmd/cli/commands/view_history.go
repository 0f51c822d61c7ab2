package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/core/services"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	var (
		limit int
		picks bool
	)

	cmd := &cobra.Command{
		Use:   "viewHistory",
		Short: "View recorded roster generations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("viewHistory command", zap.Int("limit", limit))

			database, err := app.Database()
			if err != nil {
				return err
			}

			details, err := services.ViewHistory(app.Ctx, database, app.Logger, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d generations:\n\n", len(details))
			for _, d := range details {
				g := d.Generation
				fmt.Printf("%s  %s  %-18s %-10s %7.2f / %7.2f  (%d attempts)\n",
					g.CreatedAt.Local().Format("2006-01-02 15:04"), g.ID, g.Strategy, g.Status, g.TotalCost, g.Budget, g.Attempts)
				if g.Reason != "" {
					fmt.Printf("    %s\n", g.Reason)
				}
				if picks {
					for _, p := range d.Picks {
						fmt.Printf("    %s %-24s %-12s %7.2f\n", p.Role, p.PlayerName, p.Club, p.Cost)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of generations to show (0 for all)")
	cmd.Flags().BoolVar(&picks, "picks", false, "Show the players of each roster")

	return cmd
}
