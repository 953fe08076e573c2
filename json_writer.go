package proforma

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose keys keep the order they are
// written in, so that exported results read top down like the report.
// Its zero value is an empty object.
//
// The first error is kept and returned by MarshalJSON; later writes are
// ignored.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// Append writes key with value encoded by json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
	return w
}

// Number writes a float. NaN and infinities have no JSON representation and
// are written as null: an infinite DSCR or an undefined multiple.
func (w *jsonObjectWriter) Number(key string, value float64) *jsonObjectWriter {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return w.Append(key, nil)
	}
	return w.Append(key, value)
}

// Solved writes a result that may not have been found, like the IRR. A nil
// value is null.
func (w *jsonObjectWriter) Solved(key string, value *float64) *jsonObjectWriter {
	if value == nil {
		return w.Append(key, nil)
	}
	return w.Number(key, *value)
}

// Optional writes key only when value is not the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}
