package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
)

// BuildExportTable merges the statistics onto rows by position. A statistic
// shorter than rows leaves NaN in the missing cells.
func BuildExportTable(rows []entity.TrendPoint, spread, zscore, correlation []float64) entity.ExportTable {
	t := entity.ExportTable{
		Columns: append([]string(nil), entity.ExportColumns...),
		Rows:    make([]entity.ExportRow, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = entity.ExportRow{
			TrendPoint:  r,
			Spread:      at(spread, i),
			Zscore:      at(zscore, i),
			Correlation: at(correlation, i),
		}
	}
	return t
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return math.NaN()
}

// WriteCSV serializes t with a header row. Times are RFC 3339 UTC, numbers use
// the shortest exact decimal form and NaN cells are left empty.
func WriteCSV(w io.Writer, t entity.ExportTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	rec := make([]string, len(entity.ExportColumns))
	for _, r := range t.Rows {
		rec[0] = r.Time.UTC().Format(time.RFC3339)
		rec[1] = formatCell(r.Low)
		rec[2] = formatCell(r.High)
		rec[3] = formatCell(r.Open)
		rec[4] = formatCell(r.Close)
		rec[5] = formatCell(r.Volume)
		rec[6] = formatCell(r.SMA20)
		rec[7] = formatCell(r.EMA20)
		rec[8] = formatCell(r.DailyRange)
		rec[9] = formatCell(r.Spread)
		rec[10] = formatCell(r.Zscore)
		rec[11] = formatCell(r.Correlation)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
