package synth

import (
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// obj builds an object from alternating keys and values.
func obj(kv ...interface{}) *models.Object {
	entries := make([]models.Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, models.Entry{Key: kv[i].(string), Value: val(kv[i+1])})
	}
	return models.NewObject(entries...)
}

func val(v interface{}) models.Value {
	switch t := v.(type) {
	case nil:
		return models.Null{}
	case models.Value:
		return t
	case string:
		return models.String(t)
	case int:
		return models.Number(t)
	case float64:
		return models.Number(t)
	case bool:
		return models.Bool(t)
	}
	panic("unsupported test value")
}

func row(vs ...interface{}) models.Array {
	out := make(models.Array, len(vs))
	for i, v := range vs {
		out[i] = val(v)
	}
	return out
}
