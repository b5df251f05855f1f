package reconcile

import (
	"sort"

	"github.com/ifacegroup/fabricsync/pkg/types"
)

// Order returns the pass's entries in their deterministic presentation
// order: server name first (input preferred, fetched fallback, the
// "Unknown Server" placeholder last resort), then switch name, then switch
// interface name. Interface comparison is lexical, so eth10 sorts before
// eth2; that mirrors the upstream behavior and changing it to a natural
// sort is a product decision, not a cleanup.
//
// The order is a pure function of entry contents; two passes over the same
// logical data produce the same sequence regardless of insertion order.
func Order(p *Pass) []*types.ConnectionEntry {
	entries := p.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if as, bs := a.ServerName(), b.ServerName(); as != bs {
			return as < bs
		}
		if a.Key.Switch != b.Key.Switch {
			return a.Key.Switch < b.Key.Switch
		}
		if a.Key.Iface != b.Key.Iface {
			return a.Key.Iface < b.Key.Iface
		}
		// Keys are unique per pass; the key's server component breaks
		// any remaining tie between placeholder-named entries.
		return a.Key.Server < b.Key.Server
	})
	return entries
}
