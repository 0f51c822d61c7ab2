package sheetsclient

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/pkg/catalog"
)

// ListPlayers reads and parses a catalog tab. The first row must be the header.
func (c *Client) ListPlayers(spreadsheetID, tab string) (*catalog.Result, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	result, err := catalog.ParseRows(toStringRows(values))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c.logger.Debug("Read catalog tab",
		zap.String("tab", tab),
		zap.Int("rows", result.Report.Rows),
		zap.Int("players", len(result.Players)))

	return result, nil
}

// toStringRows converts API cells to strings; the API omits trailing empty cells
func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows
}
