package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantaelite/draftmaster/pkg/core/services"
)

var errNoSessionRoster = errors.New("no roster generated in this session - run generate first")

// PublishRosterCmd creates the publishRoster command, which publishes the last generated roster
func PublishRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster",
		Short: "Publish the last generated roster to the configured spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.LastOutcome == nil {
				return errNoSessionRoster
			}

			client, err := app.Sheets()
			if err != nil {
				return err
			}

			tab, err := services.PublishRoster(app.Ctx, client, app.Cfg, app.LastOutcome, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("Published to tab %q\n", tab)
			return nil
		},
	}
}

// ExportRosterCmd creates the exportRoster command, which writes the last generated roster to a file
func ExportRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "exportRoster <path>",
		Short: "Export the last generated roster to a delimited file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.LastOutcome == nil {
				return errNoSessionRoster
			}

			if err := services.ExportRoster(app.LastOutcome, args[0], app.Cfg.Delimiter(), app.Logger); err != nil {
				return err
			}

			fmt.Printf("Exported to %s\n", args[0])
			return nil
		},
	}
}
