/*
Package config holds the settings of a document processing run.

Settings are read from TOML or YAML files; the format is detected from the
file extension. Values not present in a file keep their defaults:

	language = "ru"
	strict = true

	[trace]
	"mdtree.lexer" = "Debug"

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format int

// Supported formats
const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "auto"
}

// Settings configure the command line tool and the pipeline.
type Settings struct {
	// Language selects the letters designating applications.
	Language string `toml:"language" yaml:"language"`
	// Strict makes error diagnostics fail a run.
	Strict bool `toml:"strict" yaml:"strict"`
	// Resources enables checking files referenced by a document.
	Resources bool `toml:"check_resources" yaml:"check_resources"`
	// Indent formats JSON output.
	Indent       bool              `toml:"indent" yaml:"indent"`
	TraceAdapter string            `toml:"tracing_adapter" yaml:"tracing_adapter"`
	Trace        map[string]string `toml:"trace" yaml:"trace"` // trace key → level
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Language:     "en",
		Indent:       true,
		TraceAdapter: "go",
		Trace: map[string]string{
			"mdtree.lexer":    "Error",
			"mdtree.macro":    "Error",
			"mdtree.resolve":  "Error",
			"mdtree.pipeline": "Info",
		},
	}
}

// Load reads settings from a file, detecting its format from the extension.
func Load(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.WrapError(err, core.EMISSING, "config file not found: %s", path)
	} else if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read config file %s", path)
	}
	return Parse(content, DetectFormat(path))
}

// DetectFormat derives the format from a file name. Unknown extensions
// default to TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Parse reads settings from file content. Keys not present keep their
// default values; trace levels are merged with the defaults.
func Parse(content []byte, format Format) (*Settings, error) {
	s := Default()
	defaults := s.Trace
	s.Trace = nil
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, s)
	default:
		err = toml.Unmarshal(content, s)
	}
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse %s configuration", format)
	}
	for key, level := range defaults {
		if _, ok := s.Trace[key]; !ok {
			if s.Trace == nil {
				s.Trace = make(map[string]string, len(defaults))
			}
			s.Trace[key] = level
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values which cannot be used.
func (s *Settings) Validate() error {
	if _, err := language.Parse(s.Language); err != nil {
		return core.WrapError(err, core.EINVALID, "invalid language %q", s.Language)
	}
	return nil
}

// Tag returns the language of the settings.
func (s *Settings) Tag() language.Tag {
	tag, err := language.Parse(s.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// TraceConf returns the tracing part of the settings in the form expected by
// schuko's tracing configuration.
func (s *Settings) TraceConf() testconfig.Conf {
	conf := testconfig.Conf{}
	conf["tracing.adapter"] = s.TraceAdapter
	for key, level := range s.Trace {
		conf["trace."+key] = level
	}
	return conf
}
