package todopager

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// Sign returns 1 for DirectionASC and -1 otherwise.
func (o Direction) Sign() int {
	return lo.Ternary(o == DirectionASC, 1, -1)
}

// ParseDirection accepts "asc"/"desc" in any case. An empty string means
// DirectionASC.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DirectionASC, nil
	}

	d := Direction(strings.ToUpper(s))
	if !d.Valid() {
		return "", fmt.Errorf("invalid ordering direction '%s'", s)
	}

	return d, nil
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external sort keys (the sortBy query value) to
	// column names. Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Column names end up in raw SQL.
	if o.Column == "" || !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// ToSQL converts Orderings to "<col_1> <dir_1>, <col_2> <dir_2>".
//
// Example: for [{"created_at", "DESC"}, {"id", "ASC"}] returns
// "created_at DESC, id ASC".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(ordering OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
	}), ", ")
}

// Apply applies the ordering to a gorm query.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	for _, ordering := range o {
		err := ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseOrdering resolves a sortBy/order pair, as sent by the todos API, into
// a single OrderBy. The alias must exist in columnMapping; the error names
// the closest known alias otherwise.
func ParseOrdering(sortBy, order string, columnMapping ColumnMapping) (OrderBy, error) {
	columnName, ok := columnMapping[strings.TrimSpace(sortBy)]
	if !ok {
		return OrderBy{}, fmt.Errorf(
			"invalid sort key '%s'. closest: '%s'", sortBy, closestAlias(sortBy, lo.Keys(columnMapping)),
		)
	}

	direction, err := ParseDirection(order)
	if err != nil {
		return OrderBy{}, err
	}

	return OrderBy{Column: columnName, Direction: direction}, nil
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make(Orderings, 0, len(stringsOrderings))

	for _, stringOrdering := range stringsOrderings {
		parts := strings.Fields(stringOrdering)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		ordering, err := ParseOrdering(parts[0], parts[1], columnMapping)
		if err != nil {
			return nil, err
		}

		ret = append(ret, ordering)
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
