package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dynoslide/pkg/dyno"
)

func TestFieldsMarkdown(t *testing.T) {
	a, err := dyno.Analyze(`<svg>` +
		`<text id="dyno.propertyAddress"><tspan>1 Main St | Unit 2</tspan><tspan>City</tspan></text>` +
		`<image id="dyno.agentHeadshot" width="100" height="100"/>` +
		`</svg>`)
	require.NoError(t, err)

	md := FieldsMarkdown("Flyer", a)
	assert.True(t, strings.HasPrefix(md, "# Flyer\n"))
	assert.Contains(t, md, "2 field(s)")
	assert.Contains(t, md, "| `agentHeadshot` | image | cover | `dyno.agentHeadshot` |")
	assert.Contains(t, md, "| `propertyAddress` | text | address |")
	assert.Contains(t, md, `1 Main St \| Unit 2`)

	empty, err := dyno.Analyze(`<svg><text id="title">Hi</text></svg>`)
	require.NoError(t, err)
	assert.Contains(t, FieldsMarkdown("Plain", empty), "No dyno placeholders found")
}

func TestReportLines(t *testing.T) {
	lines := ReportLines(dyno.Report{Applied: []string{"price"}, Skipped: []string{"garage"}})
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "applied: price")
	assert.Contains(t, lines[1], "warning: garage")
}

func TestCell(t *testing.T) {
	assert.Equal(t, "a b", cell(" a\n  b "))
	assert.Len(t, cell(strings.Repeat("x", 60)), 40)
}
