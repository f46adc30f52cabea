package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   models.Value
		want surface.CellValue
	}{
		{"string", models.String("hello"), surface.StringCell("hello")},
		{"empty string", models.String(""), surface.StringCell("")},
		{"integer", models.Number(42), surface.NumberCell(42)},
		{"decimal", models.Number(-0.25), surface.NumberCell(-0.25)},
		{"true", models.Bool(true), surface.BoolCell(true)},
		{"false", models.Bool(false), surface.BoolCell(false)},
		{"null", models.Null{}, surface.StringCell("")},
		{"object", obj("a", 1), surface.StringCell("")},
		{"array", row(1, 2), surface.StringCell("")},
		{"nil", nil, surface.StringCell("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyCoversEveryKind(t *testing.T) {
	t.Parallel()
	samples := map[models.Kind]models.Value{
		models.KindString: models.String("x"),
		models.KindNumber: models.Number(1),
		models.KindBool:   models.Bool(true),
		models.KindNull:   models.Null{},
		models.KindObject: obj(),
		models.KindArray:  models.Array{},
	}
	allowed := map[surface.CellKind]bool{
		surface.CellString: true,
		surface.CellNumber: true,
		surface.CellBool:   true,
	}
	for kind, v := range samples {
		require.Equal(t, kind, v.Kind())
		assert.True(t, allowed[Classify(v).Kind], "kind %s", kind)
	}
}

func TestWriteValueWritesOneCell(t *testing.T) {
	t.Parallel()
	rec := surface.NewRecorder()
	pos := surface.Cell{Row: 3, Col: 2}

	require.NoError(t, WriteValue(rec, pos, obj("nested", row(1)), 7))

	assert.Equal(t, []string{"WriteCell"}, rec.OpNames())
	assert.Equal(t, surface.Recorded{Value: surface.StringCell(""), Style: 7}, rec.Cells[pos])
}
