package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// DefaultDelimiter is the separator used by the published fantacalcio database
const DefaultDelimiter = ';'

var ErrMissingColumns = errors.New("missing required columns")

// Column identifies a catalog field independent of the header language
type Column string

const (
	ColumnName           Column = "Name"
	ColumnClub           Column = "Club"
	ColumnRole           Column = "Role"
	ColumnRating         Column = "Rating"
	ColumnFantasyAverage Column = "FantasyAverage"
	ColumnCost           Column = "Cost"
	ColumnAppearances    Column = "Appearances"
)

// RequiredColumns lists every column a catalog must provide
var RequiredColumns = []Column{
	ColumnName,
	ColumnClub,
	ColumnRole,
	ColumnRating,
	ColumnFantasyAverage,
	ColumnCost,
	ColumnAppearances,
}

// headerAliases maps normalized header labels onto columns
var headerAliases = map[string]Column{
	"nome":            ColumnName,
	"name":            ColumnName,
	"player":          ColumnName,
	"squadra":         ColumnClub,
	"club":            ColumnClub,
	"team":            ColumnClub,
	"ruolo":           ColumnRole,
	"role":            ColumnRole,
	"media_voto":      ColumnRating,
	"mv":              ColumnRating,
	"rating":          ColumnRating,
	"fantamedia":      ColumnFantasyAverage,
	"fm":              ColumnFantasyAverage,
	"fantasyaverage":  ColumnFantasyAverage,
	"fantasy_average": ColumnFantasyAverage,
	"quotazione":      ColumnCost,
	"qt":              ColumnCost,
	"cost":            ColumnCost,
	"price":           ColumnCost,
	"partite_voto":    ColumnAppearances,
	"pv":              ColumnAppearances,
	"appearances":     ColumnAppearances,
}

// ParseOptions controls how delimited text is read
type ParseOptions struct {
	Delimiter rune
}

// Report describes how raw rows became players
type Report struct {
	// Rows is the number of non-blank data rows read
	Rows int

	// Excluded counts rows dropped because their role could not be resolved
	Excluded      int
	ExcludedNames []string

	// Imputed counts filled-in values per column
	Imputed map[Column]int
}

// Result is a parsed catalog with its report
type Result struct {
	Players []model.Player
	Report  Report
}

// Clone returns a copy that shares no players, names or counts with r
func (r *Result) Clone() *Result {
	players := make([]model.Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = p.Clone()
	}

	report := r.Report
	report.ExcludedNames = append([]string(nil), r.Report.ExcludedNames...)
	report.Imputed = make(map[Column]int, len(r.Report.Imputed))
	for col, n := range r.Report.Imputed {
		report.Imputed[col] = n
	}

	return &Result{Players: players, Report: report}
}

// Parse reads a delimited catalog. The first record must be the header row.
func Parse(r io.Reader, opts ParseOptions) (*Result, error) {
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return ParseRows(records)
}

// ParseRows converts a header row followed by data rows into players
func ParseRows(rows [][]string) (*Result, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: no header row found", ErrMissingColumns)
	}

	indexes, err := columnIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	getField := func(col Column, row []string) string {
		index := indexes[col]
		if index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	result := &Result{Report: Report{Imputed: make(map[Column]int)}}
	var raws []rawPlayer

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		name := getField(ColumnName, row)
		// Skip blank rows
		if name == "" {
			continue
		}
		result.Report.Rows++

		roles := model.ParseRoles(getField(ColumnRole, row))
		if len(roles) == 0 {
			result.Report.Excluded++
			result.Report.ExcludedNames = append(result.Report.ExcludedNames, name)
			continue
		}

		raws = append(raws, rawPlayer{
			name:        name,
			club:        getField(ColumnClub, row),
			roles:       roles,
			rating:      parseNumber(getField(ColumnRating, row)),
			fantasy:     parseNumber(getField(ColumnFantasyAverage, row)),
			cost:        parseNumber(getField(ColumnCost, row)),
			appearances: parseNumber(getField(ColumnAppearances, row)),
		})
	}

	result.Players = impute(raws, result.Report.Imputed)
	return result, nil
}

// columnIndexes resolves the header row, reporting every missing column at once
func columnIndexes(header []string) (map[Column]int, error) {
	indexes := make(map[Column]int)
	found := make([]string, 0, len(header))

	for i, cell := range header {
		label := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		found = append(found, label)

		col, ok := headerAliases[normalizeHeader(label)]
		if !ok {
			continue
		}
		if _, seen := indexes[col]; !seen {
			indexes[col] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := indexes[col]; !ok {
			missing = append(missing, string(col))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s (found columns: %s)", ErrMissingColumns,
			strings.Join(missing, ", "), strings.Join(found, ", "))
	}

	return indexes, nil
}

func normalizeHeader(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

// parseNumber coerces a cell to a number. Comma decimals and grouped thousands
// ("1.234,5" or "1,234.5") are accepted; anything unparsable is reported as missing.
func parseNumber(cell string) optional {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return optional{}
	}
	value, err := strconv.ParseFloat(normalizeDecimal(cell), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return optional{}
	}
	return optional{value: value, ok: true}
}

// normalizeDecimal rewrites a number so '.' is the decimal separator.
// The last of ',' and '.' is the decimal mark unless it repeats; every other
// separator groups thousands.
func normalizeDecimal(cell string) string {
	comma := strings.LastIndex(cell, ",")
	dot := strings.LastIndex(cell, ".")
	if comma < 0 && dot < 0 {
		return cell
	}

	decimal, grouping := ".", ","
	if comma > dot {
		decimal, grouping = ",", "."
	}

	cell = strings.ReplaceAll(cell, grouping, "")
	if strings.Count(cell, decimal) > 1 {
		return strings.ReplaceAll(cell, decimal, "")
	}
	return strings.ReplaceAll(cell, decimal, ".")
}
