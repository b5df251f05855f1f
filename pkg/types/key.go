package types

import (
	"fmt"
	"strings"
)

// ConnectionKey identifies one switch<->server connection. It is a plain
// comparable struct rather than a joined string so that separator characters
// appearing inside labels can never collide two distinct connections.
// Components are trimmed at construction and compared case-sensitively.
type ConnectionKey struct {
	Switch string `json:"switch" yaml:"switch"`
	Server string `json:"server" yaml:"server"`
	Iface  string `json:"iface" yaml:"iface"`
}

// NewConnectionKey builds a key from raw (possibly padded, possibly empty)
// identity fields.
func NewConnectionKey(switchLabel, serverLabel, switchIfname string) ConnectionKey {
	return ConnectionKey{
		Switch: strings.TrimSpace(switchLabel),
		Server: strings.TrimSpace(serverLabel),
		Iface:  strings.TrimSpace(switchIfname),
	}
}

// Complete reports whether all three components are present. Only complete
// keys participate in remote-fragment deduplication and joining; a server can
// have parallel links to different switches or interfaces, so joining on
// anything less would merge distinct physical connections.
func (k ConnectionKey) Complete() bool {
	return k.Switch != "" && k.Server != "" && k.Iface != ""
}

// ServerKey collapses the key to server identity only. Used solely for LAG
// group assignment, where LACP-active links of one server are intentionally
// grouped regardless of which switch they land on.
func (k ConnectionKey) ServerKey() ConnectionKey {
	return ConnectionKey{Server: k.Server}
}

// String renders the key for logging and diagnostics.
func (k ConnectionKey) String() string {
	return fmt.Sprintf("%s:%s<->%s", k.Switch, k.Iface, k.Server)
}
