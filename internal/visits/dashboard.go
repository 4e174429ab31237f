package visits

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

// MonthlyTarget is the number of visits expected per month.
const MonthlyTarget = 30

var ErrInvalidMonth = errors.New("month must be YYYY-MM")

// Count is one bucket of a breakdown.
type Count struct {
	Key   string
	Total int64
}

type Dashboard struct {
	Visits    []models.Visit
	Month     string // the applied filter, empty for none
	Total     int64
	ThisMonth int64
	// Progress is ThisMonth against MonthlyTarget in percent. Not clamped.
	Progress float64
	ByLevel  map[string]int64
	ByType   map[string]int64
}

// ValidMonth reports whether m is a YYYY-MM token.
func ValidMonth(m string) bool {
	if len(m) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", m)
	return err == nil
}

func monthCriteria(c Criteria, month string) (Criteria, error) {
	if month == "" {
		return c, nil
	}
	if !ValidMonth(month) {
		return c, ErrInvalidMonth
	}
	return c.HasPrefix("fecha", month), nil
}

// Dashboard aggregates the visits the viewer may see. With a month filter the
// "this month" figure is the filtered total; without one it is the current
// calendar month.
func (s *Store) Dashboard(ctx context.Context, viewer Viewer, month string) (*Dashboard, error) {
	return s.aggregate(ctx, viewer.criteria(), month)
}

// Summary reports office-wide figures: totals, progress and breakdowns count
// every visit. The listed records still follow the viewer's visibility.
func (s *Store) Summary(ctx context.Context, viewer Viewer, month string) (*Dashboard, error) {
	d, err := s.aggregate(ctx, Criteria{}, month)
	if err != nil {
		return nil, err
	}
	crit, err := monthCriteria(viewer.criteria(), month)
	if err != nil {
		return nil, err
	}
	if d.Visits, err = s.list(ctx, crit); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) aggregate(ctx context.Context, base Criteria, month string) (*Dashboard, error) {
	crit, err := monthCriteria(base, month)
	if err != nil {
		return nil, err
	}

	list, err := s.list(ctx, crit)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Visits: list,
		Month:  month,
		Total:  int64(len(list)),
	}

	if month != "" {
		d.ThisMonth = d.Total
	} else {
		current := base.HasPrefix("fecha", s.now().Format("2006-01"))
		if d.ThisMonth, err = s.count(ctx, current); err != nil {
			return nil, err
		}
	}
	d.Progress = float64(d.ThisMonth) / MonthlyTarget * 100

	if d.ByLevel, err = s.breakdown(ctx, crit, "nivel"); err != nil {
		return nil, err
	}
	if d.ByType, err = s.breakdown(ctx, crit, "tipo_visita"); err != nil {
		return nil, err
	}
	return d, nil
}

// breakdown counts visits per distinct value of column.
func (s *Store) breakdown(ctx context.Context, crit Criteria, column string) (map[string]int64, error) {
	if _, ok := filterable[column]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	scope, err := crit.Scope()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Grupo string
		Total int64
	}
	err = s.db.WithContext(ctx).
		Model(&models.Visit{}).
		Scopes(scope).
		Select(column + " AS grupo, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group visits by %s: %w", column, err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Grupo] += r.Total
	}
	return out, nil
}

// Sorted orders a breakdown by count, largest first, then by key.
func Sorted(m map[string]int64) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Key < out[j].Key
	})
	return out
}
