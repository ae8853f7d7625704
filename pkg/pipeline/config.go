package pipeline

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/transform"
)

// CurrentVersion is the pipeline file version written by Marshal.
const CurrentVersion = "1"

// File is the YAML form of a pipeline.
type File struct {
	Version  string          `yaml:"version"`
	Priority *PriorityConfig `yaml:"priority,omitempty"`
	Years    *YearsConfig    `yaml:"years,omitempty"`
	Steps    []StepConfig    `yaml:"steps"`
}

// PriorityConfig configures tag-family priority normalization.
type PriorityConfig struct {
	Default             string `yaml:"default"`
	Alternate           string `yaml:"alternate"`
	Suffixes            string `yaml:"suffixes,omitempty"` // primary, secondary, tertiary
	PrioritizeAlternate bool   `yaml:"prioritize_alternate,omitempty"`
}

// YearsConfig configures year extraction.
type YearsConfig struct {
	// Markers replaces the default date-marker list. An explicit empty list
	// disables marker stripping.
	Markers []string `yaml:"markers"`
	// Select lists selectors such as "210d" or "219".
	Select []string `yaml:"select,omitempty"`
}

// StepConfig is one step. Which fields apply depends on Op.
type StepConfig struct {
	Op            string  `yaml:"op"`
	Tag           string  `yaml:"tag,omitempty"`
	Code          string  `yaml:"code,omitempty"`
	Codes         string  `yaml:"codes,omitempty"`
	Order         string  `yaml:"order,omitempty"`
	Pattern       *string `yaml:"pattern,omitempty"` // "" is a valid pattern; nil means absent
	Replace       string  `yaml:"replace,omitempty"`
	Separator     string  `yaml:"separator,omitempty"`
	Value         string  `yaml:"value,omitempty"`
	Position      *int    `yaml:"position,omitempty"`
	Indicators    string  `yaml:"indicators,omitempty"`
	KeepIfMissing *bool   `yaml:"keep_if_missing,omitempty"` // Default: true
}

// keepIfMissing reports whether a delete_fields_matching step keeps fields
// lacking the code. Absent means keep.
func (sc StepConfig) keepIfMissing() bool {
	return sc.KeepIfMissing == nil || *sc.KeepIfMissing
}

// Load reads, parses and compiles a pipeline file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.Wrap(types.ErrKindNotFound, err, "pipeline: read %s", path)
	}
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(f)
}

// Parse parses YAML data into a File and applies defaults. It does not
// validate steps; Compile does.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, types.Wrap(types.ErrKindConfig, err, "pipeline: parse YAML")
	}
	applyDefaults(&f)
	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
	if f.Priority != nil {
		def := transform.DefaultTagFamilies()
		if f.Priority.Default == "" {
			f.Priority.Default = def.Default
		}
		if f.Priority.Alternate == "" {
			f.Priority.Alternate = def.Alternate
		}
		if f.Priority.Suffixes == "" {
			f.Priority.Suffixes = string(def.Suffixes[:])
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return types.Wrap(types.ErrKindConfig, err, "pipeline: marshal")
	}
	return os.WriteFile(path, data, 0o644)
}
