package reconcile

import (
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// FlatRows projects selected entries back into the flat record shape the
// provisioning submission step expects, preferring input values where
// present and falling back to fetched values. A nil selection means every
// entry in the ordered sequence. The projection is pure: no I/O, no
// mutation of the entries.
func FlatRows(ordered []*types.ConnectionEntry, selected map[types.ConnectionKey]bool) []types.NetworkRow {
	rows := make([]types.NetworkRow, 0, len(ordered))
	for _, entry := range ordered {
		if selected != nil && !selected[entry.Key] {
			continue
		}
		rows = append(rows, flatten(entry))
	}
	return rows
}

// flatten rebuilds one flat row from an entry.
func flatten(entry *types.ConnectionEntry) types.NetworkRow {
	row := types.NetworkRow{
		Blueprint:        entry.Blueprint.PreferPtr(),
		ServerLabel:      types.StringPtr(entry.Server.Prefer()),
		ServerIfname:     entry.ServerIfname.PreferPtr(),
		SwitchLabel:      types.StringPtr(entry.Key.Switch),
		SwitchIfname:     types.StringPtr(entry.Key.Iface),
		LinkSpeed:        entry.LinkSpeed.PreferPtr(),
		LinkGroupIfname:  entry.LagIfname.PreferPtr(),
		LinkGroupLagMode: entry.LagMode.PreferPtr(),
		LinkGroupCTNames: entry.CTNames.PreferPtr(),
		LinkGroupTags:    entry.LinkGroupTags.PreferPtr(),
		ServerTags:       entry.ServerTags.PreferPtr(),
		SwitchTags:       entry.SwitchTags.PreferPtr(),
		LinkTags:         entry.LinkTags.PreferPtr(),
		Comment:          entry.Comment.PreferPtr(),
	}
	if v := entry.External.Prefer(); v != nil {
		b := *v
		row.IsExternal = &b
	}
	return row
}
