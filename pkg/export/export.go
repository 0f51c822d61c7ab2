package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

// DefaultDelimiter matches the catalog format so exports can be re-imported
const DefaultDelimiter = ';'

// TotalLabel marks the trailing summary row
const TotalLabel = "TOTAL"

var ErrNoRoster = errors.New("outcome has no roster")

// Header is the column row written before the picks
var Header = []string{"Name", "Club", "Role", "Rating", "FantasyAverage", "Appearances", "Cost"}

// Rows renders the roster as string rows: header, one row per pick, then the total
func Rows(outcome *roster.Outcome) ([][]string, error) {
	if outcome == nil || outcome.Roster == nil {
		return nil, ErrNoRoster
	}

	rows := make([][]string, 0, outcome.Roster.Size()+2)
	rows = append(rows, Header)

	total := decimal.Zero
	for _, pick := range outcome.Roster.Sorted() {
		cost := decimal.NewFromFloat(pick.Cost())
		total = total.Add(cost)

		rows = append(rows, []string{
			pick.Player.Name,
			pick.Player.Club,
			string(pick.Role),
			formatAverage(pick.Player.SeasonAverageRating),
			formatAverage(pick.Player.FantasyAverage),
			strconv.Itoa(pick.Player.Appearances),
			cost.StringFixed(2),
		})
	}

	rows = append(rows, []string{TotalLabel, "", "", "", "", "", total.StringFixed(2)})
	return rows, nil
}

// WriteCSV writes the roster as delimited text
func WriteCSV(w io.Writer, outcome *roster.Outcome, delimiter rune) error {
	rows, err := Rows(outcome)
	if err != nil {
		return err
	}

	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}

// WriteFile writes the roster to path, replacing any existing file
func WriteFile(path string, outcome *roster.Outcome, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteCSV(f, outcome, delimiter); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatAverage(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
