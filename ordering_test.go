package todopager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var taskColumns = ColumnMapping{
	"created_at": "created_at",
	"starts_at":  "starts_at",
	"title":      "title",
	"id":         "id",
}

func Test_Direction_Valid_And_Sign(t *testing.T) {
	tests := []struct {
		name  string
		in    Direction
		valid bool
		sign  int
	}{
		{"ASC valid and positive", DirectionASC, true, 1},
		{"DESC valid and negative", DirectionDESC, true, -1},
		{"lowercase is not valid", "asc", false, -1},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
		if got := tt.in.Sign(); got != tt.sign {
			t.Errorf("%s: Sign=%v want %v", tt.name, got, tt.sign)
		}
	}
}

func Test_ParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"", DirectionASC, true},
		{"asc", DirectionASC, true},
		{" Desc ", DirectionDESC, true},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if !tt.ok {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_Orderings_validate(t *testing.T) {
	tests := []struct {
		name string
		ord  Orderings
		ok   bool
	}{
		{"empty returns error", Orderings{}, false},
		{"invalid direction", Orderings{{Column: "id", Direction: "bad"}}, false},
		{"forbidden symbols", Orderings{{Column: "id; DROP TABLE todos", Direction: DirectionASC}}, false},
		{"empty column", Orderings{{Column: "", Direction: DirectionASC}}, false},
		{"valid list", Orderings{{Column: "created_at", Direction: DirectionDESC}}, true},
	}
	for _, tt := range tests {
		if err := tt.ord.validate(); (err == nil) != tt.ok {
			t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
		}
	}
}

func Test_Orderings_ToSQL(t *testing.T) {
	ord := Orderings{
		{Column: "created_at", Direction: DirectionDESC},
		{Column: "id", Direction: DirectionASC},
	}

	require.Equal(t, "created_at DESC, id ASC", ord.ToSQL())
	require.Equal(t, "", Orderings{}.ToSQL())
}

func Test_ParseOrdering(t *testing.T) {
	got, err := ParseOrdering("created_at", "desc", taskColumns)
	require.NoError(t, err)
	require.Equal(t, OrderBy{Column: "created_at", Direction: DirectionDESC}, got)

	_, err = ParseOrdering("createdat", "desc", taskColumns)
	require.ErrorContains(t, err, "closest: 'created_at'")

	_, err = ParseOrdering("title", "up", taskColumns)
	require.Error(t, err)
}

func Test_ParseSort(t *testing.T) {
	mapping := ColumnMapping{
		"id":   "t.id",
		"name": "t.name",
	}

	tests := []struct {
		name  string
		in    []string
		ok    bool
		first OrderBy
	}{
		{"invalid format", []string{"id"}, false, OrderBy{}},
		{"unknown alias", []string{"idx asc"}, false, OrderBy{}},
		{"invalid direction", []string{"id up"}, false, OrderBy{}},
		{"valid asc", []string{"id asc"}, true, OrderBy{Column: "t.id", Direction: DirectionASC}},
		{"valid desc", []string{"name desc"}, true, OrderBy{Column: "t.name", Direction: DirectionDESC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.in, mapping)
			if (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
				return
			}
			if tt.ok {
				if len(got) == 0 || got[0] != tt.first {
					t.Errorf("%s: first=%v want %v", tt.name, got, tt.first)
				}
			}
		})
	}
}

func Test_closestAlias(t *testing.T) {
	aliases := []ColumnAlias{"id", "title", "created_at"}
	tests := []struct {
		name string
		in   ColumnAlias
		out  ColumnAlias
	}{
		{"closest to id", "idx", "id"},
		{"closest to title", "titel", "title"},
		{"closest to created_at", "createdat", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closestAlias(tt.in, aliases); got != tt.out {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.out)
			}
		})
	}
}
