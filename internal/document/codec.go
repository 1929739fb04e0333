package document

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Value is the set of Go types a document value can be read as or written
// from.
type Value interface {
	int64 | float64 | string | bool
}

// Codec binds a Go type to the document kind it is stored as.
type Codec[T Value] struct {
	kind   Kind
	decode func(gjson.Result) (T, bool)
	encode func(dst []byte, v T) []byte
}

// Kind returns the document kind values of this codec are stored as.
func (c Codec[T]) Kind() Kind {
	return c.kind
}

// Codecs for the four scalar kinds. Reads never convert between kinds: an
// integer is not a Number and a string holding digits is not an Integer.
var (
	Integer = Codec[int64]{kind: KindInteger, decode: decodeInteger, encode: appendInteger}
	Number  = Codec[float64]{kind: KindReal, decode: decodeNumber, encode: appendNumber}
	String  = Codec[string]{kind: KindString, decode: decodeString, encode: gjson.AppendJSONString}
	Boolean = Codec[bool]{kind: KindBoolean, decode: decodeBoolean, encode: strconv.AppendBool}
)

// Get reads the named value as T.
func Get[T Value](d *Document, name string, c Codec[T]) (T, error) {
	var zero T
	r, ok := d.lookup(name)
	if !ok {
		return zero, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	v, ok := c.decode(r)
	if !ok {
		return zero, &KindError{Name: name, Want: c.kind, Got: kindOf(r), Index: -1}
	}
	return v, nil
}

// GetArray reads the named value as an array of T. The read fails as a whole
// if the value is not an array or any element is not of kind T.
func GetArray[T Value](d *Document, name string, c Codec[T]) ([]T, error) {
	r, ok := d.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if !r.IsArray() {
		return nil, &KindError{Name: name, Want: KindArray, Got: kindOf(r), Index: -1}
	}
	elems := r.Array()
	out := make([]T, 0, len(elems))
	for i, e := range elems {
		v, ok := c.decode(e)
		if !ok {
			return nil, &KindError{Name: name, Want: c.kind, Got: kindOf(e), Index: i}
		}
		out = append(out, v)
	}
	return out, nil
}

// Set stores v under name, replacing any previous value of any kind.
func Set[T Value](d *Document, name string, c Codec[T], v T) error {
	return d.setRaw(name, c.encode(nil, v))
}

// SetArray stores vs as an array under name, replacing any previous value.
// A nil slice is stored as an empty array.
func SetArray[T Value](d *Document, name string, c Codec[T], vs []T) error {
	buf := []byte{'['}
	for i, v := range vs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = c.encode(buf, v)
	}
	buf = append(buf, ']')
	return d.setRaw(name, buf)
}

func decodeInteger(r gjson.Result) (int64, bool) {
	if kindOf(r) != KindInteger {
		return 0, false
	}
	v, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func decodeNumber(r gjson.Result) (float64, bool) {
	if kindOf(r) != KindReal {
		return 0, false
	}
	v, err := strconv.ParseFloat(r.Raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func decodeString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

func decodeBoolean(r gjson.Result) (bool, bool) {
	switch r.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	}
	return false, false
}

func appendInteger(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// appendNumber writes v so that it always reads back as a real: a fraction
// or exponent is always present. JSON has no NaN or infinity, so those are
// written as null.
func appendNumber(dst []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(dst, "null"...)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.AppendFloat(dst, v, 'e', -1, 64)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', -1, 64)
	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}
