// Package rows loads flat network-configuration rows from CSV exports of
// the spreadsheet pipeline, optionally translating site-specific column
// headers through a YAML mapping document.
package rows

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ifacegroup/fabricsync/pkg/errors"
)

// Mapping translates input column headers to canonical row field names.
// Keys are the headers as they appear in the file; values are canonical
// names (server_label, switch_ifname, ...). Headers are matched
// case-insensitively after trimming.
type Mapping struct {
	// HeaderRow is the 1-based row the headers live on. Rows above it
	// are skipped. Defaults to 1.
	HeaderRow int `yaml:"header_row"`

	// Mappings maps file headers to canonical field names.
	Mappings map[string]string `yaml:"mappings"`
}

// DefaultMapping maps canonical field names to themselves.
func DefaultMapping() *Mapping {
	return &Mapping{HeaderRow: 1, Mappings: map[string]string{}}
}

// LoadMapping reads a mapping document from a YAML file.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	m := DefaultMapping()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, errors.NewParseError("yaml", path, "invalid mapping document", err)
	}
	if m.HeaderRow < 1 {
		m.HeaderRow = 1
	}
	return m, nil
}

// resolve translates one file header to its canonical field name, falling
// back to the header itself so canonical headers need no mapping entries.
func (m *Mapping) resolve(header string) string {
	header = strings.TrimSpace(header)
	for from, to := range m.Mappings {
		if strings.EqualFold(strings.TrimSpace(from), header) {
			return to
		}
	}
	return strings.ToLower(strings.ReplaceAll(header, " ", "_"))
}
