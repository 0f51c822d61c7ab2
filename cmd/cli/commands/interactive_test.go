package commands

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSession_ResetsFlagsBetweenRuns(t *testing.T) {
	var seen []string
	var limit int

	echo := &cobra.Command{
		Use:  "echo",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := "-"
			if len(args) > 0 {
				word = args[0]
			}
			seen = append(seen, word+":"+cmd.Flag("limit").Value.String())
			return nil
		},
	}
	echo.Flags().IntVarP(&limit, "limit", "n", 10, "")

	input := strings.NewReader("echo a -n 3\n\necho b\nunknown\necho x y\nquit\necho never\n")
	require.NoError(t, runSession(input, map[string]*cobra.Command{"echo": echo}))

	assert.Equal(t, []string{"a:3", "b:10"}, seen)
}

func TestSessionCommands_SkipsBuiltins(t *testing.T) {
	root := &cobra.Command{Use: "draftmaster"}
	for _, name := range []string{"generate", "interactive", "listPlayers"} {
		root.AddCommand(&cobra.Command{Use: name, Run: func(*cobra.Command, []string) {}})
	}

	commands := sessionCommands(root)
	assert.Len(t, commands, 2)
	assert.Contains(t, commands, "generate")
	assert.NotContains(t, commands, "interactive")
}

func TestPublishRosterCmd_NeedsSessionRoster(t *testing.T) {
	app := &AppContext{}
	err := PublishRosterCmd(app).RunE(nil, nil)
	assert.ErrorIs(t, err, errNoSessionRoster)

	err = ExportRosterCmd(app).RunE(nil, []string{"out.csv"})
	assert.ErrorIs(t, err, errNoSessionRoster)
}
