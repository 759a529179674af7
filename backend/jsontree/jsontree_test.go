package jsontree

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/npillmayer/mdtree/engine/pipeline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "# Title\n\nSee !PK[a].\n\n!P[a|2cm]\n![Caption](a.png)\n"

func TestMarshal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.jsontree")
	defer teardown()
	//
	r, err := pipeline.Process(doc, "doc.md", nil)
	require.NoError(t, err)
	b, err := Marshal(r.File, r.Diagnostics)
	require.NoError(t, err)
	var back Document
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "doc.md", back.File)
	assert.Equal(t, "File", back.Root.Type)
	require.Len(t, back.Root.Children, 3)
	h := back.Root.Children[0]
	assert.Equal(t, "Heading", h.Type)
	assert.Equal(t, float64(1), h.Attrs["level"])
	assert.Equal(t, "title", h.Attrs["slug"])
	//
	pic := back.Root.Children[2].Children[0]
	assert.Equal(t, "PictureProcessed", pic.Type)
	assert.Equal(t, "a", pic.Attrs["label"])
	assert.Equal(t, float64(1), pic.Attrs["index"])
	assert.Equal(t, "2cm", pic.Attrs["height"])
	require.Len(t, pic.Name, 1)
	assert.Equal(t, "Caption", pic.Name[0].Text)
	key := back.Root.Children[1].Children[1]
	assert.Equal(t, "PictureKey", key.Type)
	assert.Equal(t, true, key.Attrs["resolved"])
}

func TestEncodeDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.jsontree")
	defer teardown()
	//
	r, err := pipeline.Process("Line one\nsee !PK[none]", "bad.md", nil)
	require.Error(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r.File, r.Diagnostics))
	var back Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.Diagnostics, 1)
	d := back.Diagnostics[0]
	assert.Equal(t, "fatal", d.Severity)
	assert.Equal(t, "bad.md", d.File)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 5, d.Column)
	assert.Equal(t, [2]int{13, 22}, d.Span)
}
