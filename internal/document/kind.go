package document

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Kind is the dynamic type of a document value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindInteger
	KindReal
	KindString
	KindBoolean
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindAbsent:  "absent",
	KindNull:    "null",
	KindInteger: "integer",
	KindReal:    "real",
	KindString:  "string",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// kindOf classifies a gjson result. Numbers whose literal carries a fraction
// or an exponent are reals; all other numbers are integers.
func kindOf(r gjson.Result) Kind {
	switch r.Type {
	case gjson.Null:
		if r.Raw == "" {
			return KindAbsent
		}
		return KindNull
	case gjson.False, gjson.True:
		return KindBoolean
	case gjson.String:
		return KindString
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return KindReal
		}
		return KindInteger
	case gjson.JSON:
		if r.IsArray() {
			return KindArray
		}
		return KindObject
	}
	return KindAbsent
}
