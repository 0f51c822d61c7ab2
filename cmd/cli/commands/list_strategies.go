package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantaelite/draftmaster/pkg/core/services"
)

// ListStrategiesCmd creates the listStrategies command
func ListStrategiesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStrategies",
		Short: "List the built-in and configured strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listStrategies command")

			strategies, err := services.ListStrategies(app.Cfg)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d strategies:\n\n", len(strategies))
			for _, s := range strategies {
				fmt.Println(formatStrategy(s))
			}
			return nil
		},
	}
}
