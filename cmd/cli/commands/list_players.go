package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/services"
)

// ListPlayersCmd creates the listPlayers command
func ListPlayersCmd(app *AppContext) *cobra.Command {
	var (
		role  string
		club  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "listPlayers",
		Short: "List catalog players, most expensive first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := services.PlayerFilter{Club: club, Limit: limit}
			if role != "" {
				r, err := model.ParseRole(role)
				if err != nil {
					return err
				}
				filter.Role = r
			}

			app.Logger.Debug("listPlayers command",
				zap.String("role", role),
				zap.String("club", club),
				zap.Int("limit", limit))

			source, err := app.CatalogSource()
			if err != nil {
				return err
			}

			players, err := services.ListPlayers(app.Ctx, source, app.Logger, filter)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d players:\n\n", len(players))
			for _, p := range players {
				fmt.Printf("- %-24s %-12s %-22s %7.2f  mv %.2f  fm %.2f  pv %d\n",
					p.Name, p.Club, p.RoleLabel(), p.Cost, p.SeasonAverageRating, p.FantasyAverage, p.Appearances)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Only players eligible for this role (P, D, C, A)")
	cmd.Flags().StringVarP(&club, "club", "c", "", "Only players of this club")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of players to list")

	return cmd
}
