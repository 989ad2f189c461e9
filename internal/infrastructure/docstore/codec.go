package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Conversión dinámica entre structs de dominio y documentos del almacén.
//
// Los campos fecha no se enumeran en ninguna lista fija: cualquier valor cuyo
// tipo en runtime sea time.Time se convierte a Timestamp al escribir, y todo
// Timestamp vuelve como time.Time al leer. Así un campo fecha agregado mañana
// queda cubierto sin tocar el codec.

var timeType = reflect.TypeOf(time.Time{})

// Encode convierte un struct (o puntero a struct) en Document usando las
// etiquetas json como nombres de campo. Los time.Time pasan a Timestamp.
func Encode(v any) (Document, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("codec: se esperaba struct, llegó %T", v)
	}
	doc := Document{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "" {
			continue
		}
		doc[name] = encodeValue(rv.Field(i).Interface())
	}
	return doc, nil
}

// Decode rellena un *struct desde un Document. Los Timestamp vuelven como
// time.Time; los números JSONB (float64) se convierten al tipo del campo.
func Decode(doc Document, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("codec: se esperaba *struct, llegó %T", out)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		raw, ok := doc[name]
		if name == "" || !ok || raw == nil {
			continue
		}
		if err := assign(rv.Field(i), raw); err != nil {
			return fmt.Errorf("codec: campo %q: %w", name, err)
		}
	}
	return nil
}

// ConvertTimes aplica la conversión de escritura a un patch parcial:
// todo valor time.Time pasa a Timestamp, el resto queda igual.
func ConvertTimes(data Document) Document {
	out := make(Document, len(data))
	for k, v := range data {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return NewTimestamp(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return NewTimestamp(*t)
	default:
		return v
	}
}

func assign(field reflect.Value, raw any) error {
	if field.Type() == timeType {
		switch t := raw.(type) {
		case Timestamp:
			field.Set(reflect.ValueOf(t.Time()))
			return nil
		case time.Time:
			field.Set(reflect.ValueOf(t))
			return nil
		}
		return fmt.Errorf("tipo %T no es un instante", raw)
	}
	val := reflect.ValueOf(raw)
	switch {
	case val.Type().AssignableTo(field.Type()):
		field.Set(val)
	case val.Kind() >= reflect.Int && val.Kind() <= reflect.Float64 &&
		field.Kind() >= reflect.Int && field.Kind() <= reflect.Float64:
		field.Set(val.Convert(field.Type()))
	default:
		return fmt.Errorf("tipo %T no asignable a %s", raw, field.Type())
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// ── Ordenamiento ──────────────────────────────────────────────────────────────

// SortDocuments ordena in situ por el campo de Order (estable).
func SortDocuments(docs []Document, order Order) {
	if order.Field == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][order.Field], docs[j][order.Field])
		if order.Descending {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(a, b any) int {
	if ta, ok := a.(Timestamp); ok {
		tb, ok := b.(Timestamp)
		if !ok {
			return 0
		}
		switch {
		case ta.Time().Before(tb.Time()):
			return -1
		case ta.Time().After(tb.Time()):
			return 1
		}
		return 0
	}
	if sa, ok := a.(string); ok {
		sb, _ := b.(string)
		return strings.Compare(sa, sb)
	}
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if oka && okb {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// ── Representación en cable (JSONB) ───────────────────────────────────────────

// Los Timestamp se serializan como {"__ts": {seconds, nanos}} para sobrevivir
// el viaje por JSONB y poder revivirse al leer sin esquema por colección.
const wireTimestampKey = "__ts"

// MarshalDocument serializa un Document para persistirlo como JSONB.
func MarshalDocument(d Document) ([]byte, error) {
	return json.Marshal(wireEncode(map[string]any(d)))
}

// UnmarshalDocument deserializa JSONB reviviendo los Timestamp anidados.
func UnmarshalDocument(b []byte) (Document, error) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("codec: deserializar documento: %w", err)
	}
	revived, _ := wireDecode(m).(map[string]any)
	return Document(revived), nil
}

func wireEncode(v any) any {
	switch t := v.(type) {
	case Document:
		return wireEncode(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = wireEncode(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = wireEncode(val)
		}
		return out
	case Timestamp:
		return map[string]any{wireTimestampKey: map[string]any{
			"seconds": t.Seconds,
			"nanos":   t.Nanos,
		}}
	case time.Time:
		return wireEncode(NewTimestamp(t))
	default:
		return v
	}
}

func wireDecode(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if inner, ok := t[wireTimestampKey].(map[string]any); ok && len(t) == 1 {
			sec, _ := toFloat(inner["seconds"])
			nan, _ := toFloat(inner["nanos"])
			return Timestamp{Seconds: int64(sec), Nanos: int32(nan)}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = wireDecode(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = wireDecode(val)
		}
		return out
	default:
		return v
	}
}
