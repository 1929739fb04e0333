package hostdir

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest maps opaque host-module identifiers to install folders. It is
// stored as YAML:
//
//	default: game
//	hosts:
//	  game: /opt/game
//	  editor: ../editor   # relative to the manifest's directory
type Manifest struct {
	Default string            `yaml:"default"`
	Hosts   map[string]string `yaml:"hosts"`

	dir string // directory of the manifest file
}

// LoadManifest reads a manifest from path on fs.
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading host manifest: %w", err)
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("parsing host manifest %s: %w", path, err)
	}
	if m.Hosts == nil {
		m.Hosts = make(map[string]string)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving manifest directory: %w", err)
	}
	m.dir = abs
	return m, nil
}

// Lookup returns the install folder registered for id. An empty id selects
// the manifest's default host.
func (m *Manifest) Lookup(id string) (string, error) {
	if id == "" {
		id = m.Default
	}
	if id == "" {
		return "", fmt.Errorf("no host given and manifest has no default: %w", ErrUnresolved)
	}
	dir, ok := m.Hosts[id]
	if !ok || dir == "" {
		return "", fmt.Errorf("host %q not in manifest: %w", id, ErrUnresolved)
	}
	if !filepath.IsAbs(dir) && m.dir != "" {
		dir = filepath.Join(m.dir, dir)
	}
	return dir, nil
}

// Resolver returns a Resolver bound to the host id.
func (m *Manifest) Resolver(id string) Resolver {
	return Func(func() (string, error) {
		return m.Lookup(id)
	})
}
