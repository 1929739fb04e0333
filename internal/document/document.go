// Package document implements the JSON document that backs a single
// configuration file.
//
// A Document is a flat JSON object: values are addressed by their top-level
// name only, so a name such as "window.width" is a literal key and never a
// path. The document is held as compact JSON text; reads go through gjson,
// inserts through sjson, and Pretty renders the on-disk form with pretty.
package document

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// prettyOptions renders documents with 4-space indentation, sorted keys and
// one array element per line.
var prettyOptions = &pretty.Options{Indent: "    ", SortKeys: true}

// Document is an in-memory JSON object of named values.
// The zero value is not usable; use New or Parse.
type Document struct {
	raw []byte // compact JSON object, keys unique
}

// New returns an empty document.
func New() *Document {
	return &Document{raw: []byte("{}")}
}

// Parse decodes data into a Document. Empty input, invalid JSON and JSON whose
// top-level value is not an object all fail with ErrMalformed. When a key
// appears more than once the last value wins.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrMalformed)
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("invalid JSON: %w", ErrMalformed)
	}
	res := gjson.ParseBytes(trimmed)
	if !res.IsObject() {
		return nil, fmt.Errorf("top-level value is %s, want object: %w", kindOf(res), ErrMalformed)
	}

	d := New()
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		err = d.setRaw(key.Str, pretty.Ugly([]byte(value.Raw)))
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Bytes returns the compact JSON encoding of the document.
func (d *Document) Bytes() []byte {
	out := make([]byte, len(d.raw))
	copy(out, d.raw)
	return out
}

// Clone returns an independent copy of d.
func (d *Document) Clone() *Document {
	return &Document{raw: d.Bytes()}
}

// Pretty returns the document as it is written to disk: 4-space indentation,
// keys sorted, terminated by a newline.
func (d *Document) Pretty() []byte {
	return pretty.PrettyOptions(d.raw, prettyOptions)
}

// Contains reports whether name is present.
func (d *Document) Contains(name string) bool {
	_, ok := d.lookup(name)
	return ok
}

// Kind returns the kind of the named value, or KindAbsent.
func (d *Document) Kind(name string) Kind {
	r, ok := d.lookup(name)
	if !ok {
		return KindAbsent
	}
	return kindOf(r)
}

// Names returns the top-level names in document order.
func (d *Document) Names() []string {
	var names []string
	gjson.ParseBytes(d.raw).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.Str)
		return true
	})
	return names
}

// Len returns the number of top-level values.
func (d *Document) Len() int {
	n := 0
	gjson.ParseBytes(d.raw).ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

// Delete removes the named value. It returns ErrNotFound if name is absent.
func (d *Document) Delete(name string) error {
	if !d.Contains(name) {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	out := New()
	var err error
	gjson.ParseBytes(d.raw).ForEach(func(key, value gjson.Result) bool {
		if key.Str != name {
			err = out.setRaw(key.Str, []byte(value.Raw))
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	d.raw = out.raw
	return nil
}

// Equal reports whether d and other hold the same names and values,
// ignoring key order and formatting.
func (d *Document) Equal(other *Document) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(canonical(d.raw), canonical(other.raw))
}

func canonical(raw []byte) []byte {
	return pretty.Ugly(pretty.PrettyOptions(raw, prettyOptions))
}

// lookup finds name by exact key comparison, so names are never interpreted
// as gjson path syntax.
func (d *Document) lookup(name string) (gjson.Result, bool) {
	var found gjson.Result
	var ok bool
	gjson.ParseBytes(d.raw).ForEach(func(key, value gjson.Result) bool {
		if key.Str == name {
			found, ok = value, true
			return false
		}
		return true
	})
	return found, ok
}

// setRaw stores raw (already valid, compact JSON) under name. An existing
// value is replaced where it stands; a new name is appended.
func (d *Document) setRaw(name string, raw []byte) error {
	if cur, ok := d.lookup(name); ok {
		buf := make([]byte, 0, len(d.raw)-len(cur.Raw)+len(raw))
		buf = append(buf, d.raw[:cur.Index]...)
		buf = append(buf, raw...)
		buf = append(buf, d.raw[cur.Index+len(cur.Raw):]...)
		d.raw = buf
		return nil
	}
	out, err := sjson.SetRawBytes(d.raw, keyPath(name), raw)
	if err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	d.raw = out
	return nil
}

// keyPath builds an sjson path addressing name as one literal top-level key.
// The leading ':' stops numeric names from being treated as array indexes.
func keyPath(name string) string {
	return ":" + gjson.Escape(name)
}
