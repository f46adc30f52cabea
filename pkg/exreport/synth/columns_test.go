package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

func TestInferHeadersSortedUnion(t *testing.T) {
	t.Parallel()
	rows := models.Rows{obj("a", 1), obj("b", 2)}

	src, err := ResolveColumns(nil, rows)
	require.NoError(t, err)

	assert.True(t, src.Inferred())
	assert.Equal(t, []string{"a", "b"}, InferHeaders(rows))
	assert.Equal(t, []models.Value{models.Number(1), models.Null{}}, src.Cells(rows[0]))
	assert.Equal(t, []models.Value{models.Null{}, models.Number(2)}, src.Cells(rows[1]))
}

func TestInferHeadersDeterministic(t *testing.T) {
	t.Parallel()
	forward := models.Rows{obj("zeta", 1, "alpha", 2), obj("mid", 3, "alpha", 4), models.String("skip")}
	backward := models.Rows{forward[2], forward[1], forward[0]}

	first := InferHeaders(forward)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, first)
	assert.Equal(t, first, InferHeaders(forward))
	assert.Equal(t, first, InferHeaders(backward))
}

func TestInferTypes(t *testing.T) {
	t.Parallel()
	rows := models.Rows{
		obj("qty", 1, "name", "a", "note", nil),
		obj("qty", nil, "name", 2),
	}

	src, err := ResolveColumns(nil, rows)
	require.NoError(t, err)

	types := map[string]models.ColumnType{}
	for _, c := range src.Columns() {
		types[c.Name] = c.Type
	}
	assert.Equal(t, models.ColumnNumber, types["qty"])
	assert.Equal(t, models.ColumnString, types["name"])
	assert.Equal(t, models.ColumnString, types["note"])
}

func TestExplicitColumnsCopySpecs(t *testing.T) {
	t.Parallel()
	specs := []models.ColumnSpec{{Name: "b"}, {Name: "a", Type: models.ColumnNumber}}

	src, err := ResolveColumns(specs, nil)
	require.NoError(t, err)

	cols := src.Columns()
	assert.False(t, src.Inferred())
	assert.Equal(t, models.ColumnString, cols[0].Type)
	cols[0].Name = "changed"
	assert.Equal(t, "b", specs[0].Name)
	assert.Equal(t, models.ColumnType(""), specs[0].Type)
}

func TestExplicitColumnsAlignRows(t *testing.T) {
	t.Parallel()
	specs := []models.ColumnSpec{{Name: "b"}, {Name: "a"}}
	src, err := ResolveColumns(specs, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		row  models.Value
		want []models.Value
	}{
		{"keyed row follows schema order", obj("a", 1, "b", 2, "c", 3), []models.Value{models.Number(2), models.Number(1)}},
		{"missing key is null", obj("a", 1), []models.Value{models.Null{}, models.Number(1)}},
		{"positional row is kept", row("x", "y", "z"), []models.Value{models.String("x"), models.String("y"), models.String("z")}},
		{"scalar row is one cell", models.String("only"), []models.Value{models.String("only")}},
		{"null row is empty", models.Null{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.Cells(tt.row))
		})
	}
}
