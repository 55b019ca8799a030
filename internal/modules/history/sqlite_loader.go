package history

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LoadSQLite reads the price table from a SQLite history database with a
// daily_prices(asset, date, close) table, where date is a Unix timestamp in
// seconds. This is the same shape the sync tooling writes, so the service
// can run directly off a history database instead of a CSV export.
//
// Asset columns are ordered by first appearance in the result set. Assets
// without a price on a given date get NaN for that row.
func LoadSQLite(path string, log zerolog.Logger) (*PriceTable, error) {
	log = log.With().Str("component", "history").Logger()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT asset, date, close
		FROM daily_prices
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	type cell struct {
		asset string
		date  time.Time
		close float64
	}

	var cells []cell
	assets := make([]string, 0)
	seen := make(map[string]bool)

	for rows.Next() {
		var asset string
		var dateUnix int64
		var closePrice float64
		if err := rows.Scan(&asset, &dateUnix, &closePrice); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}

		date := time.Unix(dateUnix, 0).UTC().Truncate(24 * time.Hour)
		cells = append(cells, cell{asset: asset, date: date, close: closePrice})

		if !seen[asset] {
			seen[asset] = true
			assets = append(assets, asset)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}

	if len(cells) == 0 {
		return nil, fmt.Errorf("history database %s has zero valid rows", path)
	}

	dateSet := make(map[time.Time]bool)
	for _, c := range cells {
		dateSet[c.date] = true
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rowIndex := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowIndex[d] = i
	}

	series := make(map[string][]float64, len(assets))
	for _, name := range assets {
		s := make([]float64, len(dates))
		for i := range s {
			s[i] = math.NaN()
		}
		series[name] = s
	}

	for _, c := range cells {
		series[c.asset][rowIndex[c.date]] = c.close
	}

	log.Info().
		Str("path", path).
		Int("rows", len(dates)).
		Int("assets", len(assets)).
		Msg("Loaded price history from SQLite")

	return newPriceTable(dates, assets, series), nil
}
