package visits

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const counterName = "visitas"

// Plain UPDATE then SELECT: no RETURNING, so older bundled SQLite builds work
// too. The UPDATE row lock serializes concurrent callers until commit.
const (
	bumpCounterSQL   = `UPDATE contadores_informe SET ultimo = ultimo + 1 WHERE nombre = ?`
	createCounterSQL = `INSERT INTO contadores_informe (nombre, ultimo) VALUES (?, 0) ON CONFLICT (nombre) DO NOTHING`
	readCounterSQL   = `SELECT ultimo FROM contadores_informe WHERE nombre = ?`
)

// ReportNumbers hands out INF-<year>-<seq> identifiers from the database
// counter. The sequence is global, the year is only the issue date.
type ReportNumbers struct {
	now func() time.Time
}

// Next must run inside the transaction that inserts the visit, so the
// counter bump and the row commit or roll back together.
func (g ReportNumbers) Next(tx *gorm.DB) (string, error) {
	res := tx.Exec(bumpCounterSQL, counterName)
	if res.Error != nil {
		return "", fmt.Errorf("bump report counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// counter row was removed; start over from zero
		if err := tx.Exec(createCounterSQL, counterName).Error; err != nil {
			return "", fmt.Errorf("create report counter: %w", err)
		}
		if err := tx.Exec(bumpCounterSQL, counterName).Error; err != nil {
			return "", fmt.Errorf("bump report counter: %w", err)
		}
	}

	var n int64
	if err := tx.Raw(readCounterSQL, counterName).Scan(&n).Error; err != nil {
		return "", fmt.Errorf("read report counter: %w", err)
	}
	return FormatReportNumber(g.now().Year(), n), nil
}

func FormatReportNumber(year int, seq int64) string {
	return fmt.Sprintf("INF-%d-%03d", year, seq)
}
