package rows

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// ReadFile loads rows from a CSV file using the given mapping. A nil
// mapping uses the default (canonical headers, header row 1).
func ReadFile(path string, mapping *Mapping) ([]types.NetworkRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	rows, err := Read(f, mapping)
	if err != nil {
		return nil, errors.NewParseError("csv", path, "reading rows", err)
	}
	return rows, nil
}

// Read decodes rows from CSV data. Headers are translated through the
// mapping; unknown columns are ignored so extra spreadsheet columns never
// break an import. Empty cells become absent fields.
func Read(r io.Reader, mapping *Mapping) ([]types.NetworkRow, error) {
	if mapping == nil {
		mapping = DefaultMapping()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged exports are common
	cr.TrimLeadingSpace = true

	// Skip to the header row.
	for skip := mapping.HeaderRow - 1; skip > 0; skip-- {
		if _, err := cr.Read(); err != nil {
			return nil, err
		}
	}

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = mapping.resolve(h)
	}

	var rows []types.NetworkRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var row types.NetworkRow
		populated := false
		for i, cell := range record {
			if i >= len(fields) {
				break
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			if setField(&row, fields[i], value) {
				populated = true
			}
		}
		if populated {
			rows = append(rows, row)
		}
	}

	logging.Debug().Int("rows", len(rows)).Msg("read input rows")
	return rows, nil
}

// setField assigns one cell to its canonical row field. Returns false for
// unknown field names.
func setField(row *types.NetworkRow, field, value string) bool {
	switch field {
	case "blueprint":
		row.Blueprint = &value
	case "server_label":
		row.ServerLabel = &value
	case "server_ifname":
		row.ServerIfname = &value
	case "switch_label":
		row.SwitchLabel = &value
	case "switch_ifname":
		row.SwitchIfname = &value
	case "link_speed":
		row.LinkSpeed = &value
	case "link_group_ifname":
		row.LinkGroupIfname = &value
	case "link_group_lag_mode":
		row.LinkGroupLagMode = &value
	case "link_group_ct_names":
		row.LinkGroupCTNames = &value
	case "link_group_tags":
		row.LinkGroupTags = &value
	case "is_external":
		b := types.ParseBool(value)
		row.IsExternal = &b
	case "server_tags":
		row.ServerTags = &value
	case "switch_tags":
		row.SwitchTags = &value
	case "link_tags":
		row.LinkTags = &value
	case "comment":
		row.Comment = &value
	default:
		return false
	}
	return true
}
