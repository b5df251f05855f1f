package controller

import (
	"encoding/json"

	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// wireItem is one named-node result row from the connectivity query. Node
// names match those assigned in connectivityQuery.
type wireItem struct {
	Switch     *wireSystem    `json:"switch"`
	Server     *wireSystem    `json:"server"`
	SwitchIntf *wireInterface `json:"switch_intf"`
	ServerIntf *wireInterface `json:"server_intf"`
	Link       *wireLink      `json:"link"`
	Lag        *wireInterface `json:"lag"`
	CT         *wirePolicy    `json:"ct"`
}

// wireSystem is a system node as returned by the controller.
type wireSystem struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Hostname string   `json:"hostname"`
	External *bool    `json:"external"`
	Tags     []string `json:"tags"`
}

// wireInterface is an interface node; LAG membership arrives as a composed
// interface with a lag_mode.
type wireInterface struct {
	ID      string `json:"id"`
	IfName  string `json:"if_name"`
	LagMode string `json:"lag_mode"`
}

// wireLink is a link node.
type wireLink struct {
	ID         string   `json:"id"`
	Speed      string   `json:"speed"`
	GroupLabel string   `json:"group_label"`
	Tags       []string `json:"tags"`
}

// wirePolicy is a connectivity-template policy node.
type wirePolicy struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// decodeFragments converts raw query items into fragments, preserving
// arrival order in Fragment.Index. Items that fail to decode are logged and
// skipped; one malformed row must not fail the whole fetch.
func decodeFragments(items []json.RawMessage) []types.Fragment {
	frags := make([]types.Fragment, 0, len(items))
	for i, raw := range items {
		var item wireItem
		if err := json.Unmarshal(raw, &item); err != nil {
			logging.Warn().Err(err).Int("item", i).Msg("skipping undecodable query item")
			continue
		}
		frags = append(frags, item.fragment(len(frags)))
	}
	return frags
}

// fragment maps a wire item onto the engine's fragment model.
func (w *wireItem) fragment(index int) types.Fragment {
	frag := types.Fragment{Index: index}

	if w.Switch != nil {
		frag.Switch = &types.SystemRef{
			ID:       w.Switch.ID,
			Label:    w.Switch.Label,
			Hostname: w.Switch.Hostname,
			External: w.Switch.External,
			Tags:     w.Switch.Tags,
		}
	}
	if w.Server != nil {
		frag.Server = &types.SystemRef{
			ID:       w.Server.ID,
			Label:    w.Server.Label,
			Hostname: w.Server.Hostname,
			External: w.Server.External,
			Tags:     w.Server.Tags,
		}
	}
	if w.SwitchIntf != nil {
		frag.SwitchIntf = &types.InterfaceRef{ID: w.SwitchIntf.ID, IfName: w.SwitchIntf.IfName}
	}
	if w.ServerIntf != nil {
		frag.ServerIntf = &types.InterfaceRef{ID: w.ServerIntf.ID, IfName: w.ServerIntf.IfName}
	}
	if w.Link != nil {
		frag.Link = &types.LinkRef{
			ID:         w.Link.ID,
			Speed:      w.Link.Speed,
			GroupLabel: w.Link.GroupLabel,
			Tags:       w.Link.Tags,
		}
	}
	if w.Lag != nil {
		frag.LagGroup = &types.LagRef{ID: w.Lag.ID, IfName: w.Lag.IfName, LagMode: w.Lag.LagMode}
	}
	if w.CT != nil {
		frag.CT = &types.CTRef{ID: w.CT.ID, Label: w.CT.Label}
	}
	return frag
}
