package reconcile

import (
	"fmt"
	"sort"

	"github.com/ifacegroup/fabricsync/pkg/constants"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// AssignLagGroups fills in link-group names for LACP-active entries that
// have none from either side. Grouping is deliberately by server identity
// alone: all LACP-active links of one server bond into a single group no
// matter which switch each link lands on, so this is the one place the
// full-key rule does not apply.
//
// Assigned names are deterministic: servers are processed in sorted order
// and numbered from 1. Returns the number of entries that received a name.
func AssignLagGroups(p *Pass) int {
	groups := make(map[types.ConnectionKey][]*types.ConnectionEntry)
	for _, entry := range p.entries {
		if entry.LagMode.Prefer() != constants.LagModeActive {
			continue
		}
		if entry.LagIfname.HasInput() || entry.LagIfname.HasFetched() {
			continue
		}
		if entry.Key.Server == "" {
			continue
		}
		sk := entry.Key.ServerKey()
		groups[sk] = append(groups[sk], entry)
	}

	servers := make([]types.ConnectionKey, 0, len(groups))
	for sk := range groups {
		servers = append(servers, sk)
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Server < servers[j].Server })

	assigned := 0
	for i, sk := range servers {
		name := fmt.Sprintf("%s%d", constants.LagGroupPrefix, i+1)
		for _, entry := range groups[sk] {
			v := name
			entry.LagIfname.Input = &v
			assigned++
		}
	}
	return assigned
}
