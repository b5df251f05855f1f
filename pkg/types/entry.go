package types

// Source records which side(s) of the reconciliation have populated an entry.
type Source string

const (
	// SourceInput marks an entry built only from input rows.
	SourceInput Source = "input"
	// SourceFetched marks an entry synthesized only from remote data.
	SourceFetched Source = "fetched"
	// SourceBoth marks an entry populated from both sides.
	SourceBoth Source = "both"
)

// String returns the string representation of a source.
func (s Source) String() string { return string(s) }

// StringPair holds the input and fetched values of one textual attribute.
// Each side is independently nullable; nil means that source never supplied
// the attribute.
type StringPair struct {
	Input   *string `json:"input,omitempty" yaml:"input,omitempty"`
	Fetched *string `json:"fetched,omitempty" yaml:"fetched,omitempty"`
}

// HasInput reports whether the input side carries a non-empty value.
func (p StringPair) HasInput() bool { return p.Input != nil && *p.Input != "" }

// HasFetched reports whether the fetched side carries a non-empty value.
func (p StringPair) HasFetched() bool { return p.Fetched != nil && *p.Fetched != "" }

// Prefer returns the input value when present, else the fetched value,
// else the empty string.
func (p StringPair) Prefer() string {
	if p.HasInput() {
		return *p.Input
	}
	if p.HasFetched() {
		return *p.Fetched
	}
	return ""
}

// PreferPtr is Prefer for callers that must distinguish absent from empty.
func (p StringPair) PreferPtr() *string {
	if p.HasInput() {
		return p.Input
	}
	if p.HasFetched() {
		return p.Fetched
	}
	return nil
}

// BoolPair holds the input and fetched values of one boolean attribute.
type BoolPair struct {
	Input   *bool `json:"input,omitempty" yaml:"input,omitempty"`
	Fetched *bool `json:"fetched,omitempty" yaml:"fetched,omitempty"`
}

// HasInput reports whether the input side was supplied.
func (p BoolPair) HasInput() bool { return p.Input != nil }

// HasFetched reports whether the fetched side was supplied.
func (p BoolPair) HasFetched() bool { return p.Fetched != nil }

// Prefer returns the input value when present, else the fetched value,
// else nil.
func (p BoolPair) Prefer() *bool {
	if p.Input != nil {
		return p.Input
	}
	return p.Fetched
}

// ConnectionEntry is the reconciled record for one connection. It pairs the
// value each source supplied for every comparable attribute. Entries live for
// exactly one reconciliation pass; a new pass starts from a fresh collection.
type ConnectionEntry struct {
	// Key is derived at creation and immutable afterwards.
	Key ConnectionKey `json:"key" yaml:"key"`

	Blueprint     StringPair `json:"blueprint,omitempty" yaml:"blueprint,omitempty"`
	Server        StringPair `json:"server,omitempty" yaml:"server,omitempty"`
	ServerIfname  StringPair `json:"server_ifname,omitempty" yaml:"server_ifname,omitempty"`
	LinkSpeed     StringPair `json:"link_speed,omitempty" yaml:"link_speed,omitempty"`
	LagIfname     StringPair `json:"link_group_ifname,omitempty" yaml:"link_group_ifname,omitempty"`
	LagMode       StringPair `json:"link_group_lag_mode,omitempty" yaml:"link_group_lag_mode,omitempty"`
	CTNames       StringPair `json:"link_group_ct_names,omitempty" yaml:"link_group_ct_names,omitempty"`
	External      BoolPair   `json:"is_external,omitempty" yaml:"is_external,omitempty"`
	ServerTags    StringPair `json:"server_tags,omitempty" yaml:"server_tags,omitempty"`
	SwitchTags    StringPair `json:"switch_tags,omitempty" yaml:"switch_tags,omitempty"`
	LinkGroupTags StringPair `json:"link_group_tags,omitempty" yaml:"link_group_tags,omitempty"`
	LinkTags      StringPair `json:"link_tags,omitempty" yaml:"link_tags,omitempty"`
	Comment       StringPair `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Source tracks provenance: input, fetched, or both.
	Source Source `json:"source" yaml:"source"`

	// Incomplete marks entries whose key is missing switch or server
	// identity. Such entries are retained, never rejected.
	Incomplete bool `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
}

// SwitchName returns the switch identity of the entry.
func (e *ConnectionEntry) SwitchName() string { return e.Key.Switch }

// SwitchIfname returns the switch interface identity of the entry.
func (e *ConnectionEntry) SwitchIfname() string { return e.Key.Iface }

// ServerName resolves the display server name: input value preferred,
// fetched as fallback, the placeholder otherwise.
func (e *ConnectionEntry) ServerName() string {
	if s := e.Server.Prefer(); s != "" {
		return s
	}
	if e.Key.Server != "" {
		return e.Key.Server
	}
	return UnknownServer
}

// UnknownServer is the placeholder server identity for entries that carry no
// server name from either side.
const UnknownServer = "Unknown Server"
