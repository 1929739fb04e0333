// Package configstore implements the configuration manager: it resolves the
// configuration directory beneath the host's install folder, opens named
// JSON files into in-memory documents, hands out handles to them, serves
// typed reads and writes, and writes documents back on Close or Destroy.
//
// Writes only touch memory. A document reaches disk when its handle is
// closed, when Flush is called, or when the manager is destroyed.
package configstore

import (
	"errors"
	"path/filepath"
	"sync"

	"modconfigs/internal/document"
	"modconfigs/internal/hostdir"
	"modconfigs/internal/logger"

	"github.com/spf13/afero"
)

// Directory names appended to the host's install folder.
const (
	ModsDir    = "mods"
	ConfigsDir = "Configs"
)

// Version reported to the host.
const (
	VersionMajor int16 = 1
	VersionMinor int16 = 1
	VersionPatch int16 = 0
)

// Manager owns every open configuration. Handles it returns are only valid
// for the manager that issued them.
type Manager struct {
	resolver hostdir.Resolver
	fs       afero.Fs
	log      *logger.Logger

	mu    sync.Mutex
	slots []slot
	free  []uint32
	order []uint32 // live slot indexes, oldest first
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem configuration files live on. The default is the
// OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithLogger sets the logger. The default is the process logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// New returns a Manager that locates the host's install folder through
// resolver.
func New(resolver hostdir.Resolver, opts ...Option) *Manager {
	m := &Manager{
		resolver: resolver,
		fs:       afero.NewOsFs(),
		log:      logger.Get(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create checks that the configuration directory can be resolved, creating
// it if needed.
func (m *Manager) Create() error {
	if _, err := m.ConfigDirectory(); err != nil {
		return failure(ErrAccessDenied, err)
	}
	return nil
}

// Destroy writes every open configuration back to its file and closes all
// handles, oldest first. Handles are closed even when writing fails; the
// returned error joins every write failure.
func (m *Manager) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, idx := range m.order {
		e := m.slots[idx].entry
		if err := m.save(e); err != nil {
			m.log.WithError(err).WithField("path", e.path).Warn("flush on teardown failed")
			errs = append(errs, failure(ErrPersistFailed, err, "path", e.path))
		}
		m.clearSlot(idx)
	}
	if n := len(m.order); n > 0 {
		m.log.WithField("count", n).Debug("configurations flushed on teardown")
	}
	m.order = m.order[:0]
	return errors.Join(errs...)
}

// QueryVersion returns the version of the configuration interface.
func (m *Manager) QueryVersion() (major, minor, patch int16) {
	return VersionMajor, VersionMinor, VersionPatch
}

// ConfigDirectory returns <install>/mods/Configs, creating it if it does not
// exist. It is resolved afresh on every call.
func (m *Manager) ConfigDirectory() (string, error) {
	base, err := m.resolver.ResolveHostBaseDirectory()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", hostdir.ErrUnresolved
	}

	dir, err := filepath.Abs(filepath.Join(base, ModsDir, ConfigsDir))
	if err != nil {
		return "", err
	}
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		m.log.WithField("dir", dir).Debug("created configuration directory")
	}
	return dir, nil
}

// Open loads filename from the configuration directory and returns a handle
// to it. A missing file is created empty. A file that does not hold a JSON
// object opens as an empty document; its content is replaced on Close.
//
// Opening the same file twice yields two independent documents. Whichever is
// written last wins.
func (m *Manager) Open(filename string) (Handle, error) {
	dir, err := m.ConfigDirectory()
	if err != nil {
		return Handle{}, failure(ErrInternalResolution, err, "filename", filename)
	}

	path := filepath.Join(dir, filename)
	doc, err := m.load(path)
	if err != nil {
		return Handle{}, failure(ErrAccessDenied, err, "path", path)
	}

	m.mu.Lock()
	h := m.insert(&entry{path: path, doc: doc})
	m.mu.Unlock()

	m.log.WithFields(logger.Fields{
		"path":   path,
		"handle": h.String(),
		"values": doc.Len(),
	}).Debug("opened configuration")
	return h, nil
}

// Close writes the configuration behind h to its file and invalidates h.
// If the write fails the handle stays open and ErrPersistFailed is returned,
// so the caller can retry or leave the flush to Destroy.
func (m *Manager) Close(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return err
	}
	if err := m.save(e); err != nil {
		m.log.WithError(err).WithField("path", e.path).Warn("flush on close failed")
		return failure(ErrPersistFailed, err, "path", e.path, "handle", h.String())
	}
	m.retire(h)

	m.log.WithFields(logger.Fields{
		"path":   e.path,
		"handle": h.String(),
	}).Debug("closed configuration")
	return nil
}

// Flush writes the configuration behind h to its file without closing it.
func (m *Manager) Flush(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return err
	}
	if err := m.save(e); err != nil {
		return failure(ErrPersistFailed, err, "path", e.path, "handle", h.String())
	}
	return nil
}

// Path returns the absolute path of the file behind h.
func (m *Manager) Path(h Handle) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return "", err
	}
	return e.path, nil
}

// Len returns the number of open configurations.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Snapshot returns a copy of the document behind h.
func (m *Manager) Snapshot(h Handle) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entryFor(h)
	if err != nil {
		return nil, err
	}
	return e.doc.Clone(), nil
}
