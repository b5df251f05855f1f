package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "JSON", "yaml", "csv", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestTitleLabel(t *testing.T) {
	assert.Equal(t, "Full Matches", TitleLabel("full_matches"))
	assert.Equal(t, "Link Speed", TitleLabel("link_speed"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]int{"total": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["total"])
}

func TestEntryTable(t *testing.T) {
	input := types.NetworkRow{
		SwitchLabel:  types.StringPtr("leaf1"),
		SwitchIfname: types.StringPtr("eth1"),
		ServerLabel:  types.StringPtr("server-a"),
		LinkSpeed:    types.StringPtr("25g"),
	}
	pass := reconcile.Normalize("bp-1", []types.NetworkRow{input})
	result := reconcile.NewResultBuilder().
		WithPass(pass).
		WithReport(reconcile.Analyze(pass)).
		WithOrdered(reconcile.Order(pass)).
		Build()

	data := EntryTable(result)
	require.Len(t, data.Rows, 1)
	row := data.Rows[0]
	assert.Equal(t, "server-a", row[0])
	assert.Equal(t, "leaf1", row[1])
	assert.Equal(t, "25g", row[3])
	assert.Equal(t, "input", row[6])
	assert.Equal(t, "input_only", row[7])
}

func TestEntryTableMarksIncomplete(t *testing.T) {
	partial := types.NetworkRow{
		ServerLabel:  types.StringPtr("server-a"),
		SwitchIfname: types.StringPtr("eth1"),
	}
	pass := reconcile.Normalize("bp-1", []types.NetworkRow{partial})
	result := reconcile.NewResultBuilder().
		WithPass(pass).
		WithReport(reconcile.Analyze(pass)).
		WithOrdered(reconcile.Order(pass)).
		Build()

	data := EntryTable(result)
	require.Len(t, data.Rows, 1)
	assert.Contains(t, data.Rows[0][7], "(incomplete)")
}

func TestWriteRowsCSV(t *testing.T) {
	external := true
	rows := []types.NetworkRow{{
		ServerLabel:  types.StringPtr("server-a"),
		SwitchLabel:  types.StringPtr("leaf1"),
		SwitchIfname: types.StringPtr("eth1"),
		LinkSpeed:    types.StringPtr("25g"),
		IsExternal:   &external,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteRowsCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(provisionHeaders, ","), lines[0])
	assert.Contains(t, lines[1], "server-a")
	assert.Contains(t, lines[1], "true")
}
