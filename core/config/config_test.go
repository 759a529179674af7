package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/mdtree/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(`
language = "ru"
strict = true

[trace]
"mdtree.lexer" = "Debug"
`), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, language.Russian, s.Tag())
	assert.True(t, s.Strict)
	assert.True(t, s.Indent, "defaults are kept")
	assert.Equal(t, "Debug", s.Trace["mdtree.lexer"])
	assert.Equal(t, "Info", s.Trace["mdtree.pipeline"], "trace defaults are merged")
}

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte("language: de\ncheck_resources: true\nindent: false\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, language.German, s.Tag())
	assert.True(t, s.Resources)
	assert.False(t, s.Indent)
	assert.Equal(t, "go", s.TraceAdapter)
	conf := s.TraceConf()
	assert.Equal(t, "go", conf["tracing.adapter"])
	assert.Equal(t, "Error", conf["trace.mdtree.macro"])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("language = \n"), FormatTOML)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Parse([]byte("language = \"not a language tag!\"\n"), FormatTOML)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdtree.yml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\n"), 0644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Strict)
	assert.Equal(t, FormatYAML, DetectFormat(path))
	assert.Equal(t, FormatTOML, DetectFormat("mdtree.conf"))
	//
	_, err = Load(filepath.Join(dir, "none.toml"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}
