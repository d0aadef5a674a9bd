package bindings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/leterax/opal/pkg/input"
)

// document is the on-disk form of a bindings file:
//
//	speed: 12
//	keys:
//	  forward: Up
//	  exit: scan:9
type document struct {
	Speed *float32          `yaml:"speed" toml:"speed"`
	Keys  map[string]string `yaml:"keys" toml:"keys"`
}

// Load reads a bindings file. The format is chosen by extension: .yaml and
// .yml are YAML, .toml is TOML. Actions the file leaves out keep their
// default key.
func Load(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bindings{}, err
	}
	b, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Bindings{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// Parse decodes a bindings document. ext is the file extension naming the
// format, with or without the leading dot.
func Parse(data []byte, ext string) (Bindings, error) {
	var doc document
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and means "all defaults".
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Bindings{}, fmt.Errorf("invalid YAML: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Bindings{}, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return Bindings{}, fmt.Errorf("%q: unsupported bindings format", ext)
	}
	return doc.bindings()
}

func (d document) bindings() (Bindings, error) {
	b := Default()
	if d.Speed != nil {
		if *d.Speed <= 0 {
			return Bindings{}, fmt.Errorf("speed %v: must be positive", *d.Speed)
		}
		b.Speed = *d.Speed
	}

	var errs []error
	for name, key := range d.Keys {
		a := Action(strings.ToLower(strings.TrimSpace(name)))
		if !valid(a) {
			errs = append(errs, fmt.Errorf("%q: unknown action", name))
			continue
		}
		code, err := input.ParseCode(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
			continue
		}
		b.Keys[a] = code
	}
	if err := errors.Join(errs...); err != nil {
		return Bindings{}, err
	}
	return b, nil
}
