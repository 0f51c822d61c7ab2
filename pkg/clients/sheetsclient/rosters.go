package sheetsclient

import (
	"fmt"
	"time"

	"github.com/fantaelite/draftmaster/pkg/core/roster"
	"github.com/fantaelite/draftmaster/pkg/export"
)

// PublishRoster writes the roster to its own tab and returns the tab title.
// The tab is created if missing, otherwise its contents are replaced.
func (c *Client) PublishRoster(spreadsheetID string, outcome *roster.Outcome, generatedAt time.Time) (string, error) {
	rows, err := rosterSheetRows(outcome, generatedAt)
	if err != nil {
		return "", err
	}

	tabTitle := rosterTabTitle(outcome, generatedAt)

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return "", err
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, tabTitle); err != nil {
			return "", fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
		return "", fmt.Errorf("failed to create tab: %w", err)
	}

	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("%s!A1", tabTitle), rows); err != nil {
		return "", fmt.Errorf("failed to write roster: %w", err)
	}

	return tabTitle, nil
}

// rosterTabTitle names a tab like "Balanced 2026-10-17 3f2a9c1b"
func rosterTabTitle(outcome *roster.Outcome, generatedAt time.Time) string {
	id := outcome.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s %s %s", outcome.Strategy, generatedAt.Format("2006-01-02"), id)
}

// rosterSheetRows renders a summary line, a blank row, then the export table
func rosterSheetRows(outcome *roster.Outcome, generatedAt time.Time) ([][]interface{}, error) {
	table, err := export.Rows(outcome)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(table)+2)
	rows = append(rows,
		[]interface{}{outcome.Summary(), generatedAt.Format(time.RFC3339)},
		[]interface{}{},
	)
	for _, record := range table {
		row := make([]interface{}, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}
