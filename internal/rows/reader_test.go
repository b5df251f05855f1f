package rows

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifacegroup/fabricsync/pkg/types"
)

func TestReadCanonicalHeaders(t *testing.T) {
	csv := strings.Join([]string{
		"switch_label,switch_ifname,server_label,server_ifname,link_speed,is_external",
		"leaf1,eth1,server-a,ens1,25g,yes",
		"leaf1,eth2,server-b,,10g,",
	}, "\n")

	rows, err := Read(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "leaf1", types.StringValue(rows[0].SwitchLabel))
	assert.Equal(t, "server-a", types.StringValue(rows[0].ServerLabel))
	assert.Equal(t, "25g", types.StringValue(rows[0].LinkSpeed))
	require.NotNil(t, rows[0].IsExternal)
	assert.True(t, *rows[0].IsExternal)

	// Empty cells stay absent, not empty strings.
	assert.Nil(t, rows[1].ServerIfname)
	assert.Nil(t, rows[1].IsExternal)
}

func TestReadHeaderCaseAndSpaces(t *testing.T) {
	csv := strings.Join([]string{
		"Switch Label,Switch Ifname,Server Label",
		"leaf1,eth1,server-a",
	}, "\n")

	rows, err := Read(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "leaf1", types.StringValue(rows[0].SwitchLabel))
	assert.Equal(t, "eth1", types.StringValue(rows[0].SwitchIfname))
}

func TestReadWithMapping(t *testing.T) {
	mapping := &Mapping{
		HeaderRow: 2,
		Mappings: map[string]string{
			"Leaf":      "switch_label",
			"Port":      "switch_ifname",
			"Host":      "server_label",
			"Speed":     "link_speed",
			"Templates": "link_group_ct_names",
		},
	}
	csv := strings.Join([]string{
		"Cabling export 2026-08-30,,,,",
		"Leaf,Port,Host,Speed,Templates",
		"leaf1,eth1,server-a,25g,\"vn-blue,vn-red\"",
	}, "\n")

	rows, err := Read(strings.NewReader(csv), mapping)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "leaf1", types.StringValue(rows[0].SwitchLabel))
	assert.Equal(t, "vn-blue,vn-red", types.StringValue(rows[0].LinkGroupCTNames))
}

func TestReadIgnoresUnknownColumnsAndBlankRows(t *testing.T) {
	csv := strings.Join([]string{
		"switch_label,switch_ifname,rack_location",
		"leaf1,eth1,row 4",
		",,",
		"leaf2,eth2,row 5",
	}, "\n")

	rows, err := Read(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank rows must be dropped")
	assert.Equal(t, "leaf2", types.StringValue(rows[1].SwitchLabel))
}

func TestReadRaggedRecords(t *testing.T) {
	csv := strings.Join([]string{
		"switch_label,switch_ifname,server_label",
		"leaf1,eth1",
		"leaf2,eth2,server-b,extra-cell",
	}, "\n")

	rows, err := Read(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].ServerLabel)
	assert.Equal(t, "server-b", types.StringValue(rows[1].ServerLabel))
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	doc := strings.Join([]string{
		"header_row: 3",
		"mappings:",
		"  Leaf: switch_label",
		"  Port: switch_ifname",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.HeaderRow)
	assert.Equal(t, "switch_label", m.resolve("leaf"))
	assert.Equal(t, "switch_ifname", m.resolve(" Port "))
}

func TestLoadMappingMissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	csv := "switch_label,switch_ifname,server_label\nleaf1,eth1,server-a\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	rows, err := ReadFile(path, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
