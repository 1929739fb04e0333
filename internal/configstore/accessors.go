package configstore

import (
	"errors"

	"modconfigs/internal/document"

	"github.com/samber/oops"
)

// read fetches a scalar of c's kind from the configuration behind h.
func read[T document.Value](m *Manager, h Handle, name string, c document.Codec[T]) (T, error) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return zero, err
	}
	v, err := document.Get(e.doc, name, c)
	if err != nil {
		return zero, accessFailure(err, e, name)
	}
	return v, nil
}

// readArray fetches an array whose every element has c's kind.
func readArray[T document.Value](m *Manager, h Handle, name string, c document.Codec[T]) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return nil, err
	}
	vs, err := document.GetArray(e.doc, name, c)
	if err != nil {
		return nil, accessFailure(err, e, name)
	}
	return vs, nil
}

// write stores v under name, replacing any previous value of any kind.
func write[T document.Value](m *Manager, h Handle, name string, c document.Codec[T], v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return err
	}
	if err := document.Set(e.doc, name, c, v); err != nil {
		return accessFailure(err, e, name)
	}
	return nil
}

func writeArray[T document.Value](m *Manager, h Handle, name string, c document.Codec[T], vs []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return err
	}
	if err := document.SetArray(e.doc, name, c, vs); err != nil {
		return accessFailure(err, e, name)
	}
	return nil
}

// accessFailure maps a document error onto this package's error kinds.
func accessFailure(err error, e *entry, name string) error {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return failure(ErrObjectNotFound, err, "path", e.path, "name", name)
	case errors.Is(err, document.ErrKindMismatch):
		return failure(ErrUnsupportedKind, err, "path", e.path, "name", name)
	default:
		return oops.In("configstore").With("path", e.path, "name", name).Wrap(err)
	}
}

func (m *Manager) ReadInteger(h Handle, name string) (int64, error) {
	return read(m, h, name, document.Integer)
}

// ReadNumber reads a real. Integer values are not converted.
func (m *Manager) ReadNumber(h Handle, name string) (float64, error) {
	return read(m, h, name, document.Number)
}

func (m *Manager) ReadString(h Handle, name string) (string, error) {
	return read(m, h, name, document.String)
}

func (m *Manager) ReadBoolean(h Handle, name string) (bool, error) {
	return read(m, h, name, document.Boolean)
}

func (m *Manager) ReadIntegerArray(h Handle, name string) ([]int64, error) {
	return readArray(m, h, name, document.Integer)
}

func (m *Manager) ReadNumberArray(h Handle, name string) ([]float64, error) {
	return readArray(m, h, name, document.Number)
}

func (m *Manager) ReadStringArray(h Handle, name string) ([]string, error) {
	return readArray(m, h, name, document.String)
}

func (m *Manager) ReadBooleanArray(h Handle, name string) ([]bool, error) {
	return readArray(m, h, name, document.Boolean)
}

func (m *Manager) WriteInteger(h Handle, name string, v int64) error {
	return write(m, h, name, document.Integer, v)
}

// WriteNumber stores a real. NaN and infinities are stored as null.
func (m *Manager) WriteNumber(h Handle, name string, v float64) error {
	return write(m, h, name, document.Number, v)
}

func (m *Manager) WriteString(h Handle, name string, v string) error {
	return write(m, h, name, document.String, v)
}

func (m *Manager) WriteBoolean(h Handle, name string, v bool) error {
	return write(m, h, name, document.Boolean, v)
}

func (m *Manager) WriteIntegerArray(h Handle, name string, vs []int64) error {
	return writeArray(m, h, name, document.Integer, vs)
}

func (m *Manager) WriteNumberArray(h Handle, name string, vs []float64) error {
	return writeArray(m, h, name, document.Number, vs)
}

func (m *Manager) WriteStringArray(h Handle, name string, vs []string) error {
	return writeArray(m, h, name, document.String, vs)
}

func (m *Manager) WriteBooleanArray(h Handle, name string, vs []bool) error {
	return writeArray(m, h, name, document.Boolean, vs)
}

// Remove deletes the named value from the configuration behind h.
func (m *Manager) Remove(h Handle, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return err
	}
	if err := e.doc.Delete(name); err != nil {
		return accessFailure(err, e, name)
	}
	return nil
}

// Names lists the value names in the configuration behind h.
func (m *Manager) Names(h Handle) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return nil, err
	}
	return e.doc.Names(), nil
}

// Kind reports the kind of the named value, or document.KindAbsent.
func (m *Manager) Kind(h Handle, name string) (document.Kind, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return document.KindAbsent, err
	}
	return e.doc.Kind(name), nil
}
