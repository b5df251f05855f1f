package reconcile

import (
	"sort"
	"strings"

	"github.com/ifacegroup/fabricsync/pkg/constants"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// MergeStats describes what one merge invocation did.
type MergeStats struct {
	// Fragments is the raw fragment count before consolidation.
	Fragments int `json:"fragments"`

	// Consolidated is the distinct connection count after deduplication.
	Consolidated int `json:"consolidated"`

	// Joined counts fragments folded onto existing input entries.
	Joined int `json:"joined"`

	// Synthesized counts entries created for remote-only connections.
	Synthesized int `json:"synthesized"`

	// Skipped counts fragments carrying no usable identity at all.
	Skipped int `json:"skipped"`
}

// Consolidate groups raw fragments by connection identity and folds each
// group into a single fragment per connection. Fragments are folded in
// arrival order so the first-wins rules below are reproducible:
//
//   - structural sub-objects (switch, server, link, interfaces, lag) keep
//     the first non-nil object seen; later fragments only fill gaps, since
//     no single fragment is authoritative for structure but their union is
//   - connectivity-template names are the exception: every fragment's list
//     contributes, split on commas, trimmed, deduplicated case-sensitively,
//     and re-joined in first-seen order. The query returns one fragment per
//     attached template, so last-wins here would silently drop templates.
func Consolidate(frags []types.Fragment) []types.Fragment {
	ordered := make([]types.Fragment, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	merged := make(map[types.ConnectionKey]*types.Fragment)
	ctNames := make(map[types.ConnectionKey][]string)
	var order []types.ConnectionKey

	for i := range ordered {
		frag := &ordered[i]
		key := frag.Key()

		dst, ok := merged[key]
		if !ok {
			dup := *frag
			dup.CT = nil
			merged[key] = &dup
			order = append(order, key)
			dst = &dup
		} else {
			if dst.Switch == nil {
				dst.Switch = frag.Switch
			}
			if dst.Server == nil {
				dst.Server = frag.Server
			}
			if dst.SwitchIntf == nil {
				dst.SwitchIntf = frag.SwitchIntf
			}
			if dst.ServerIntf == nil {
				dst.ServerIntf = frag.ServerIntf
			}
			if dst.Link == nil {
				dst.Link = frag.Link
			}
			if dst.LagGroup == nil {
				dst.LagGroup = frag.LagGroup
			}
		}

		if frag.CT != nil && frag.CT.Label != "" {
			ctNames[key] = unionNames(ctNames[key], frag.CT.Label)
		}
	}

	out := make([]types.Fragment, 0, len(order))
	for _, key := range order {
		frag := merged[key]
		if names := ctNames[key]; len(names) > 0 {
			frag.CT = &types.CTRef{Label: strings.Join(names, constants.CTNameSeparator)}
		}
		out = append(out, *frag)
	}
	return out
}

// unionNames folds a comma-separated name list into an accumulated set,
// preserving first-seen order and dropping empties.
func unionNames(acc []string, list string) []string {
	for _, raw := range strings.Split(list, constants.CTNameSeparator) {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		seen := false
		for _, have := range acc {
			if have == name {
				seen = true
				break
			}
		}
		if !seen {
			acc = append(acc, name)
		}
	}
	return acc
}

// Merge consolidates the given remote fragments and folds them into the
// pass. For each consolidated fragment, a matching entry gets its fetched
// sides populated and its source upgraded to both; a connection with no
// matching entry is synthesized with source=fetched. Input sides are never
// touched. The fold is staged on a clone and committed only when the whole
// merge completes, so callers observing an error see the pre-merge state.
func (p *Pass) Merge(frags []types.Fragment) (MergeStats, error) {
	stats := MergeStats{Fragments: len(frags)}

	consolidated := Consolidate(frags)
	stats.Consolidated = len(consolidated)

	staged := p.Clone()
	for i := range consolidated {
		frag := &consolidated[i]
		key := frag.Key()

		if key.Switch == "" && key.Server == "" && key.Iface == "" {
			stats.Skipped++
			logging.Debug().Int("index", frag.Index).Msg("skipping fragment with no identity")
			continue
		}

		entry, ok := staged.entries[key]
		if ok {
			entry.Source = types.SourceBoth
			stats.Joined++
		} else {
			entry = &types.ConnectionEntry{
				Key:        key,
				Source:     types.SourceFetched,
				Incomplete: key.Switch == "" || key.Server == "",
			}
			staged.entries[key] = entry
			stats.Synthesized++
		}
		applyFetched(entry, frag)
	}

	p.adopt(staged)
	return stats, nil
}

// applyFetched sets the fetched side of every comparable field supplied by a
// consolidated fragment. Absent fragment data leaves the corresponding side
// nil rather than clearing it.
func applyFetched(entry *types.ConnectionEntry, frag *types.Fragment) {
	setFetched(&entry.Server, frag.Server.Name())
	if frag.ServerIntf != nil {
		setFetched(&entry.ServerIfname, frag.ServerIntf.Name())
	}
	if frag.Link != nil {
		setFetched(&entry.LinkSpeed, frag.Link.Speed)
		setFetched(&entry.LinkTags, strings.Join(frag.Link.Tags, constants.CTNameSeparator))
		if frag.LagGroup == nil {
			setFetched(&entry.LagIfname, frag.Link.GroupLabel)
		}
	}
	if frag.LagGroup != nil {
		setFetched(&entry.LagIfname, frag.LagGroup.IfName)
		setFetched(&entry.LagMode, frag.LagGroup.LagMode)
	}
	if frag.CT != nil {
		setFetched(&entry.CTNames, frag.CT.Label)
	}
	if frag.Server != nil {
		setFetched(&entry.ServerTags, strings.Join(frag.Server.Tags, constants.CTNameSeparator))
		if frag.Server.External != nil {
			v := *frag.Server.External
			entry.External.Fetched = &v
		}
	}
	if frag.Switch != nil {
		setFetched(&entry.SwitchTags, strings.Join(frag.Switch.Tags, constants.CTNameSeparator))
	}
}

// setFetched sets the fetched side of a pair, treating empty as absent.
func setFetched(pair *types.StringPair, raw string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	pair.Fetched = &v
}
