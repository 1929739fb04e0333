package configstore

import (
	"fmt"
	"slices"

	"modconfigs/internal/document"
)

// Handle identifies one open configuration. The zero Handle is never valid.
// A handle stops being valid when its configuration is closed or the
// manager is destroyed; using it afterwards fails with ErrInvalidParameter,
// even if its slot has since been reused by another Open.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero (null) handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "cfg#nil"
	}
	return fmt.Sprintf("cfg#%d.%d", h.index, h.gen)
}

// entry is one live configuration: a backing file and its document.
type entry struct {
	path string
	doc  *document.Document
}

type slot struct {
	gen   uint32
	entry *entry
}

// insert stores e in a free slot and returns its handle. Caller holds m.mu.
func (m *Manager) insert(e *entry) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{gen: 1})
	}
	m.slots[idx].entry = e
	m.order = append(m.order, idx)
	return Handle{index: idx, gen: m.slots[idx].gen}
}

// entryFor returns the live entry behind h. Caller holds m.mu.
func (m *Manager) entryFor(h Handle) (*entry, error) {
	if h.IsZero() {
		return nil, failure(ErrInvalidParameter, nil, "handle", h.String())
	}
	if int(h.index) >= len(m.slots) {
		return nil, failure(ErrInvalidParameter, fmt.Errorf("unknown handle %s", h), "handle", h.String())
	}
	s := &m.slots[h.index]
	if s.gen != h.gen || s.entry == nil {
		return nil, failure(ErrInvalidParameter, fmt.Errorf("stale handle %s", h), "handle", h.String())
	}
	return s.entry, nil
}

// retire removes h's entry from the live set. Caller holds m.mu and has
// validated h.
func (m *Manager) retire(h Handle) {
	m.clearSlot(h.index)
	if i := slices.Index(m.order, h.index); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// clearSlot drops the slot's entry and bumps its generation so outstanding
// handles to it no longer resolve.
func (m *Manager) clearSlot(idx uint32) {
	s := &m.slots[idx]
	s.entry = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	m.free = append(m.free, idx)
}
