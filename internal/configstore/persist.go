package configstore

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"modconfigs/internal/document"

	"github.com/spf13/afero"
)

// load reads the document at path, creating an empty file if none exists.
// Content that does not parse yields an empty document rather than an error.
func (m *Manager) load(path string) (*document.Document, error) {
	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		f, err := m.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("creating config file: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("creating config file: %w", err)
		}
		return document.New(), nil
	}

	raw, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		if len(bytes.TrimSpace(raw)) > 0 {
			m.log.WithError(err).WithField("path", path).Warn("config file unparsable, starting empty")
		}
		return document.New(), nil
	}
	return doc, nil
}

// save writes e's document to its file.
func (m *Manager) save(e *entry) error {
	return atomicWrite(m.fs, e.path, e.doc.Pretty())
}

// atomicWrite writes data to a file atomically via a temporary file and rename.
func atomicWrite(fs afero.Fs, path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp."+hex.EncodeToString(randBytes))

	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := fs.Rename(tmp, path); err != nil {
		fs.Remove(tmp) // best effort cleanup
		return err
	}
	return nil
}
