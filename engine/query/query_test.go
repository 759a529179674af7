package query

import (
	"testing"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/engine/pipeline"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `# Title

Picture !PK[a] and application !AK[app].

!P[a|3cm]
![Caption](a.png)

## Section

!AC[app|src|main.go|go]

!LAA[]
`

func process(t *testing.T) *node.FileNode {
	r, err := pipeline.Process(doc, "doc.md", nil)
	require.NoError(t, err)
	require.Empty(t, r.Diagnostics)
	return r.File
}

func TestSelectElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.query")
	defer teardown()
	//
	file := process(t)
	headings, err := Select(file, "//Heading")
	require.NoError(t, err)
	require.Len(t, headings, 2)
	assert.Equal(t, 1, headings[0].(*node.HeadingNode).Level)
	//
	h2, err := Select(file, "//Heading[@level='2']")
	require.NoError(t, err)
	require.Len(t, h2, 1)
	assert.Equal(t, "Section", node.TextContent(h2[0]))
}

func TestSelectProcessed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.query")
	defer teardown()
	//
	file := process(t)
	values, err := Values(file, "//PictureProcessed[@label='a']/@index")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, values)
	//
	apps, err := Select(file, "//AllApplications/*")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, node.CodeApplication, apps[0].Type())
	//
	values, err = Values(file, "//ApplicationKey/@designation")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, values)
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.query")
	defer teardown()
	//
	file := process(t)
	v, err := Evaluate(file, "count(//Paragraph)")
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
	//
	_, err = Select(file, "//Heading[")
	assert.Equal(t, core.EINVALID, core.Code(err))
}
