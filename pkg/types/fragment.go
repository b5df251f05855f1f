package types

// Fragment is one raw item from a remote connectivity query, pre-merge.
// The query returns one item per connectivity template attached to a link,
// so several fragments routinely describe the same physical connection and
// any nested object may be absent. Duplication is expected, not an error.
type Fragment struct {
	// Index is the arrival position within the query result. Fragment
	// consolidation folds fragments in Index order so that first-wins
	// merge rules are reproducible regardless of map iteration.
	Index int `json:"-" yaml:"-"`

	Switch     *SystemRef    `json:"switch,omitempty" yaml:"switch,omitempty"`
	Server     *SystemRef    `json:"server,omitempty" yaml:"server,omitempty"`
	SwitchIntf *InterfaceRef `json:"switch_intf,omitempty" yaml:"switch_intf,omitempty"`
	ServerIntf *InterfaceRef `json:"server_intf,omitempty" yaml:"server_intf,omitempty"`
	Link       *LinkRef      `json:"link,omitempty" yaml:"link,omitempty"`
	LagGroup   *LagRef       `json:"lag,omitempty" yaml:"lag,omitempty"`
	CT         *CTRef        `json:"ct,omitempty" yaml:"ct,omitempty"`
}

// SystemRef is the switch or server node referenced by a fragment.
type SystemRef struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Hostname string   `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	External *bool    `json:"external,omitempty" yaml:"external,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Name resolves the identifying name of a system: label preferred, hostname
// as fallback. Tolerates a nil receiver.
func (s *SystemRef) Name() string {
	if s == nil {
		return ""
	}
	if s.Label != "" {
		return s.Label
	}
	return s.Hostname
}

// InterfaceRef is a physical or logical interface node.
type InterfaceRef struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	IfName string `json:"if_name,omitempty" yaml:"if_name,omitempty"`
}

// Name returns the interface name, tolerating a nil receiver.
func (i *InterfaceRef) Name() string {
	if i == nil {
		return ""
	}
	return i.IfName
}

// LinkRef is the link node between switch and server interfaces.
type LinkRef struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Speed      string   `json:"speed,omitempty" yaml:"speed,omitempty"`
	GroupLabel string   `json:"group_label,omitempty" yaml:"group_label,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LagRef is the link aggregation (redundancy) group a link belongs to.
type LagRef struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	IfName  string `json:"if_name,omitempty" yaml:"if_name,omitempty"`
	LagMode string `json:"lag_mode,omitempty" yaml:"lag_mode,omitempty"`
}

// CTRef is one connectivity template attached to the link.
type CTRef struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Key derives the connection identity of the fragment from its nested
// references: switch label-or-hostname, server label-or-hostname, and the
// switch interface name.
func (f *Fragment) Key() ConnectionKey {
	return NewConnectionKey(f.Switch.Name(), f.Server.Name(), f.SwitchIntf.Name())
}
