package history

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// dateLayouts are the accepted formats for the first column. The source file
// is an export of a spreadsheet, so both ISO and slash layouts show up.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"01/02/2006",
	time.RFC3339,
}

// LoadCSV parses a tabular price file where the first column is a date and
// every other column is one asset, with the column header used verbatim as
// the asset display name.
//
// Rows whose date fails to parse are dropped. Prices that fail to parse
// become NaN for that asset only. Rows are sorted by date and duplicate
// dates dropped so the table invariant (strictly increasing dates) holds.
// Returns an error when the file is missing, malformed, or has zero valid
// rows.
func LoadCSV(path string, log zerolog.Logger) (*PriceTable, error) {
	log = log.With().Str("component", "history").Logger()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse price file: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("price file %s has no data rows", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("price file %s has no asset columns", path)
	}

	assets := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		assets = append(assets, strings.TrimSpace(name))
	}

	type row struct {
		date   time.Time
		prices []float64
	}

	rows := make([]row, 0, len(records)-1)
	dropped := 0

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		date, ok := parseDate(record[0])
		if !ok {
			dropped++
			continue
		}

		prices := make([]float64, len(assets))
		for i := range assets {
			prices[i] = math.NaN()
			if i+1 < len(record) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64); err == nil {
					prices[i] = v
				}
			}
		}

		rows = append(rows, row{date: date, prices: prices})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("price file %s has zero valid rows", path)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})

	dates := make([]time.Time, 0, len(rows))
	series := make(map[string][]float64, len(assets))
	for _, name := range assets {
		series[name] = make([]float64, 0, len(rows))
	}

	for _, r := range rows {
		// Duplicate dates would break the strictly-increasing invariant.
		if len(dates) > 0 && !r.date.After(dates[len(dates)-1]) {
			dropped++
			continue
		}
		dates = append(dates, r.date)
		for i, name := range assets {
			series[name] = append(series[name], r.prices[i])
		}
	}

	if dropped > 0 {
		log.Warn().
			Int("dropped_rows", dropped).
			Msg("Dropped rows with unparseable or duplicate dates")
	}

	log.Info().
		Str("path", path).
		Int("rows", len(dates)).
		Int("assets", len(assets)).
		Msg("Loaded price history from CSV")

	return newPriceTable(dates, assets, series), nil
}

// parseDate tries the accepted date layouts in order.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
