package visits

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var ErrUnknownColumn = errors.New("column is not filterable")

// filterable is the allow-list of visit columns a Criteria may touch.
var filterable = map[string]struct{}{
	"usuario_id":  {},
	"fecha":       {},
	"nivel":       {},
	"tipo_visita": {},
}

type predicate struct {
	sql string
	arg any
}

// Criteria is an immutable list of parameterized predicates over visit
// columns. The first invalid column poisons the whole value; Scope reports it.
type Criteria struct {
	preds []predicate
	err   error
}

func (c Criteria) with(column, sql string, arg any) Criteria {
	if c.err != nil {
		return c
	}
	if _, ok := filterable[column]; !ok {
		c.err = fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		return c
	}
	// full slice expression so siblings never share a backing array
	c.preds = append(c.preds[:len(c.preds):len(c.preds)], predicate{sql: sql, arg: arg})
	return c
}

func (c Criteria) Equal(column string, value any) Criteria {
	return c.with(column, column+" = ?", value)
}

// HasPrefix matches rows whose column starts with prefix, taken literally.
func (c Criteria) HasPrefix(column, prefix string) Criteria {
	return c.with(column, column+` LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
}

func (c Criteria) Err() error { return c.err }

// Scope turns the criteria into a gorm scope.
func (c Criteria) Scope() (func(*gorm.DB) *gorm.DB, error) {
	if c.err != nil {
		return nil, c.err
	}
	preds := c.preds
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range preds {
			db = db.Where(p.sql, p.arg)
		}
		return db
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
