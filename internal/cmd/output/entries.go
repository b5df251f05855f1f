package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// EntryTable renders the ordered entry sequence with its per-entry
// classification as table data.
func EntryTable(result *reconcile.Result) Data {
	data := Data{
		Headers: []string{"Server", "Switch", "Interface", "Speed", "LAG", "CT Names", "Source", "Status"},
	}
	for _, entry := range result.Ordered {
		status := ""
		if er, ok := result.Report.Entries[entry.Key]; ok {
			status = string(er.Class)
			if entry.Incomplete {
				status += " (incomplete)"
			}
		}
		data.Rows = append(data.Rows, []string{
			entry.ServerName(),
			entry.Key.Switch,
			entry.Key.Iface,
			entry.LinkSpeed.Prefer(),
			entry.LagIfname.Prefer(),
			entry.CTNames.Prefer(),
			entry.Source.String(),
			status,
		})
	}
	return data
}

// SummaryTable renders the pass summary as table data.
func SummaryTable(summary types.Summary) Data {
	return Data{
		Headers: []string{"Total", TitleLabel("full_matches"), TitleLabel("partial_matches"),
			TitleLabel("input_only"), TitleLabel("fetched_only"), TitleLabel("conflicts"), TitleLabel("incomplete")},
		Rows: [][]string{{
			itoa(summary.Total),
			itoa(summary.FullMatches),
			itoa(summary.PartialMatches),
			itoa(summary.InputOnly),
			itoa(summary.FetchedOnly),
			itoa(summary.Conflicts),
			itoa(summary.Incomplete),
		}},
	}
}

// provisionHeaders is the column order for provisioning row exports.
var provisionHeaders = []string{
	"blueprint", "server_label", "server_ifname", "switch_label", "switch_ifname",
	"link_speed", "link_group_ifname", "link_group_lag_mode", "link_group_ct_names",
	"link_group_tags", "is_external", "server_tags", "switch_tags", "link_tags", "comment",
}

// WriteRowsCSV writes provisioning rows as CSV in canonical column order.
func WriteRowsCSV(w io.Writer, rows []types.NetworkRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(provisionHeaders); err != nil {
		return err
	}
	for i := range rows {
		row := &rows[i]
		external := ""
		if row.IsExternal != nil {
			if *row.IsExternal {
				external = "true"
			} else {
				external = "false"
			}
		}
		record := []string{
			types.StringValue(row.Blueprint),
			types.StringValue(row.ServerLabel),
			types.StringValue(row.ServerIfname),
			types.StringValue(row.SwitchLabel),
			types.StringValue(row.SwitchIfname),
			types.StringValue(row.LinkSpeed),
			types.StringValue(row.LinkGroupIfname),
			types.StringValue(row.LinkGroupLagMode),
			types.StringValue(row.LinkGroupCTNames),
			types.StringValue(row.LinkGroupTags),
			external,
			types.StringValue(row.ServerTags),
			types.StringValue(row.SwitchTags),
			types.StringValue(row.LinkTags),
			types.StringValue(row.Comment),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func itoa(v int) string { return strconv.Itoa(v) }
