package pipeline

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/engine/resolve"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const report = `// Lab report
# Results

The setup is shown in picture !PK[setup], values are listed in table !TK[values].
The wiring is given in application !AK[wiring].

!P[setup|5cm]
![Experimental setup](img/setup.png)

!T[values|Measured values]

| Run | Value |
| --- | ----: |
| 1   | 4.2   |

!APR[wiring|Wiring scheme|img/wiring.png]

# Applications

!LAA[]
`

func TestProcess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.pipeline")
	defer teardown()
	//
	r, err := Process(report, "report.md", &Options{Language: language.Russian})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, report, token.Text(r.Tokens))
	assert.NoError(t, node.CheckRanges(r.File))
	assert.Empty(t, node.OfType(r.File, node.OpCode))
	keys := node.OfType(r.File, node.ApplicationKey)
	require.Len(t, keys, 1)
	assert.Equal(t, "А", keys[0].(*node.KeyNode).Designation)
}

func TestProcessFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.pipeline")
	defer teardown()
	//
	r, err := Process("See !PK[nowhere].", "a.md", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrUndefinedEntity))
	require.NotNil(t, r)
	assert.True(t, r.Diagnostics.HasFatal())
	assert.Equal(t, "a.md", r.Diagnostics[0].File)
	//
	r, err = Process("Text !Q[x] more.", "b.md", nil)
	assert.NoError(t, err, "unknown macros are errors, not failures")
	assert.Equal(t, 1, r.Diagnostics.Count(diag.Error))
	_, err = Process("Text !Q[x] more.", "b.md", &Options{Strict: true})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestProcessResources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.pipeline")
	defer teardown()
	//
	fsys := fstest.MapFS{"img/setup.png": &fstest.MapFile{Data: []byte("png")}}
	r, err := Process(report, "report.md", &Options{Resources: fsys})
	require.NoError(t, err)
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, diag.Warning, r.Diagnostics[0].Severity)
	assert.Contains(t, r.Diagnostics[0].Message, "img/wiring.png")
}

func TestProcessAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.pipeline")
	defer teardown()
	//
	docs := []Document{
		{ID: "one.md", Text: report},
		{ID: "two.md", Text: "See !TK[missing]."},
		{ID: "three.md", Text: "Just text."},
	}
	outcomes := ProcessAll(context.Background(), docs, nil)
	require.Len(t, outcomes, 3)
	for i, o := range outcomes {
		assert.Equal(t, docs[i].ID, o.ID)
		require.NotNil(t, o.Result)
	}
	assert.NoError(t, outcomes[0].Err)
	assert.True(t, errors.Is(outcomes[1].Err, resolve.ErrUndefinedEntity))
	assert.NoError(t, outcomes[2].Err)
}

func TestPromiseAwaitTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.pipeline")
	defer teardown()
	//
	p := Start(Document{ID: "bad.md", Text: "See !PK[none]."}, nil)
	first := p.Await(context.Background())
	second := p.Await(context.Background())
	assert.True(t, errors.Is(first.Err, resolve.ErrUndefinedEntity))
	assert.True(t, errors.Is(second.Err, resolve.ErrUndefinedEntity))
	assert.Equal(t, "bad.md", second.ID)
	assert.Same(t, first.Result, second.Result)
}
