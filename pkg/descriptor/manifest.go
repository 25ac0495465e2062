package descriptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	errgroup "golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manifest is the hand-off document produced by the extractor: the records
// found in the scanned source and every string-backed enumeration
type Manifest struct {
	Records []Record `json:"records,omitempty" yaml:"records,omitempty"`
	Enums   []Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Extensions which LoadDir picks up
var manifestExt = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadFile reads a manifest from a YAML (.yaml, .yml) or JSON (.json) file
func LoadFile(path string) (*Manifest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !manifestExt[ext] {
		return nil, fnschema.ErrBadParameter.Withf("%s: unsupported manifest extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	manifest, err := Parse(data, ext == ".json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

// LoadDir reads every manifest file directly inside dir. Files are parsed
// concurrently and merged in file name order; a record or enumeration
// declared in more than one file is a conflict.
func LoadDir(ctx context.Context, dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by name
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !manifestExt[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	manifests := make([]*Manifest, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			manifest, err := LoadFile(path)
			if err != nil {
				return err
			}
			manifests[i] = manifest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := new(Manifest)
	for i, manifest := range manifests {
		if err := result.Merge(manifest); err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return result, nil
}

// Parse decodes a manifest from YAML, or from JSON when json is true.
// Unknown keys are rejected so that misspelt attributes such as "optinal"
// are not silently ignored.
func Parse(data []byte, isJSON bool) (*Manifest, error) {
	manifest := new(Manifest)
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(manifest); err != nil && !errors.Is(err, io.EOF) {
			return nil, fnschema.ErrBadParameter.Withf("invalid manifest: %v", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(manifest); err != nil && !errors.Is(err, io.EOF) {
			return nil, fnschema.ErrBadParameter.Withf("invalid manifest: %v", err)
		}
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks that every record, field, enumeration and case is named,
// and that record and enumeration names are unique
func (m *Manifest) Validate() error {
	records := make(map[string]bool, len(m.Records))
	for _, r := range m.Records {
		if r.Name == "" {
			return fnschema.ErrBadParameter.With("record without a name")
		}
		if records[r.Name] {
			return fnschema.ErrConflict.Withf("duplicate record %q", r.Name)
		}
		records[r.Name] = true
		fields := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if f.Name == "" {
				return fnschema.ErrBadParameter.Withf("record %q: field without a name", r.Name)
			}
			if strings.TrimSpace(f.Type) == "" {
				return fnschema.ErrBadParameter.Withf("record %q: field %q without a type", r.Name, f.Name)
			}
			if fields[f.Name] {
				return fnschema.ErrConflict.Withf("record %q: duplicate field %q", r.Name, f.Name)
			}
			fields[f.Name] = true
		}
	}
	enums := make(map[string]bool, len(m.Enums))
	for _, e := range m.Enums {
		if e.Name == "" {
			return fnschema.ErrBadParameter.With("enum without a name")
		}
		if enums[e.Name] {
			return fnschema.ErrConflict.Withf("duplicate enum %q", e.Name)
		}
		enums[e.Name] = true
		for _, c := range e.Cases {
			if c.Name == "" {
				return fnschema.ErrBadParameter.Withf("enum %q: case without a name", e.Name)
			}
		}
	}
	return nil
}

// Merge appends the records and enumerations of other, failing on any name
// which is already present
func (m *Manifest) Merge(other *Manifest) error {
	if other == nil {
		return nil
	}
	merged := Manifest{
		Records: append(append([]Record(nil), m.Records...), other.Records...),
		Enums:   append(append([]Enum(nil), m.Enums...), other.Enums...),
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	*m = merged
	return nil
}

// Select returns the records with the given names in request order. Names
// requested more than once are returned once. Names which are not in the
// manifest are returned in missing.
func (m *Manifest) Select(names ...string) (records []Record, missing []string) {
	index := make(map[string]int, len(m.Records))
	for i, r := range m.Records {
		index[r.Name] = i
	}
	seen := make(map[string]bool, len(names))
	records = make([]Record, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if i, exists := index[name]; exists {
			records = append(records, m.Records[i])
		} else {
			missing = append(missing, name)
		}
	}
	return records, missing
}

// Record returns the record with the given name
func (m *Manifest) Record(name string) (Record, bool) {
	for _, r := range m.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// EnumTable indexes the manifest's enumerations by name
func (m *Manifest) EnumTable() map[string]Enum {
	return EnumTable(m.Enums...)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Manifest) String() string {
	return types.Stringify(m)
}
