// Package types defines the shared data model for fabricsync: flat
// network-configuration rows as produced by the spreadsheet pipeline,
// connection identity keys, reconciled connection entries with paired
// input/fetched values, raw remote query fragments, and pass summaries.
package types

// NetworkRow is one flat network-configuration record as delivered by the
// input pipeline. Every field is optional; absence means the source never
// supplied the attribute. A reconciliation pass treats its row slice as an
// immutable snapshot.
type NetworkRow struct {
	Blueprint        *string `json:"blueprint,omitempty" yaml:"blueprint,omitempty"`
	ServerLabel      *string `json:"server_label,omitempty" yaml:"server_label,omitempty"`
	ServerIfname     *string `json:"server_ifname,omitempty" yaml:"server_ifname,omitempty"`
	SwitchLabel      *string `json:"switch_label,omitempty" yaml:"switch_label,omitempty"`
	SwitchIfname     *string `json:"switch_ifname,omitempty" yaml:"switch_ifname,omitempty"`
	LinkSpeed        *string `json:"link_speed,omitempty" yaml:"link_speed,omitempty"`
	LinkGroupIfname  *string `json:"link_group_ifname,omitempty" yaml:"link_group_ifname,omitempty"`
	LinkGroupLagMode *string `json:"link_group_lag_mode,omitempty" yaml:"link_group_lag_mode,omitempty"`
	LinkGroupCTNames *string `json:"link_group_ct_names,omitempty" yaml:"link_group_ct_names,omitempty"`
	LinkGroupTags    *string `json:"link_group_tags,omitempty" yaml:"link_group_tags,omitempty"`
	IsExternal       *bool   `json:"is_external,omitempty" yaml:"is_external,omitempty"`
	ServerTags       *string `json:"server_tags,omitempty" yaml:"server_tags,omitempty"`
	SwitchTags       *string `json:"switch_tags,omitempty" yaml:"switch_tags,omitempty"`
	LinkTags         *string `json:"link_tags,omitempty" yaml:"link_tags,omitempty"`
	Comment          *string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Key derives the connection identity for this row. Missing identity fields
// yield a partial key; the row is still reconciled, never dropped.
func (r *NetworkRow) Key() ConnectionKey {
	return NewConnectionKey(StringValue(r.SwitchLabel), StringValue(r.ServerLabel), StringValue(r.SwitchIfname))
}

// StringValue safely dereferences an optional string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is empty. Optional fields
// treat empty and absent identically on input.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
