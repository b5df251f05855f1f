package reconcile_test

import (
	"testing"

	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

func lacpRow(switchLabel, serverLabel, iface string) types.NetworkRow {
	r := row(switchLabel, serverLabel, iface)
	r.LinkGroupLagMode = types.StringPtr("lacp_active")
	return r
}

func TestAssignLagGroupsBondsAcrossSwitches(t *testing.T) {
	// Both links of server-a bond into one group even though they land
	// on different switches.
	rows := []types.NetworkRow{
		lacpRow("leaf1", "server-a", "eth1"),
		lacpRow("leaf2", "server-a", "eth1"),
		lacpRow("leaf1", "server-b", "eth2"),
	}
	p := reconcile.Normalize("bp-1", rows)

	assigned := reconcile.AssignLagGroups(p)
	if assigned != 3 {
		t.Fatalf("assigned = %d, want 3", assigned)
	}

	a1, _ := p.Get(types.NewConnectionKey("leaf1", "server-a", "eth1"))
	a2, _ := p.Get(types.NewConnectionKey("leaf2", "server-a", "eth1"))
	b, _ := p.Get(types.NewConnectionKey("leaf1", "server-b", "eth2"))

	if *a1.LagIfname.Input != *a2.LagIfname.Input {
		t.Errorf("server-a links split across groups: %q vs %q",
			*a1.LagIfname.Input, *a2.LagIfname.Input)
	}
	if *a1.LagIfname.Input == *b.LagIfname.Input {
		t.Error("distinct servers must get distinct groups")
	}

	// Servers are processed in sorted order, numbering from 1.
	if *a1.LagIfname.Input != "ae1" || *b.LagIfname.Input != "ae2" {
		t.Errorf("names = %q, %q", *a1.LagIfname.Input, *b.LagIfname.Input)
	}
}

func TestAssignLagGroupsSkipsNamedAndNonLACP(t *testing.T) {
	named := lacpRow("leaf1", "server-a", "eth1")
	named.LinkGroupIfname = types.StringPtr("ae9")

	static := row("leaf1", "server-b", "eth2")
	static.LinkGroupLagMode = types.StringPtr("static_lag")

	plain := row("leaf1", "server-c", "eth3")

	p := reconcile.Normalize("bp-1", []types.NetworkRow{named, static, plain})
	if assigned := reconcile.AssignLagGroups(p); assigned != 0 {
		t.Errorf("assigned = %d, want 0", assigned)
	}

	entry, _ := p.Get(types.NewConnectionKey("leaf1", "server-a", "eth1"))
	if *entry.LagIfname.Input != "ae9" {
		t.Errorf("existing group name overwritten: %q", *entry.LagIfname.Input)
	}
}

func TestAssignLagGroupsHonorsFetchedName(t *testing.T) {
	p := reconcile.Normalize("bp-1", []types.NetworkRow{lacpRow("leaf1", "server-a", "eth1")})

	frag := fragment(0, "leaf1", "server-a", "eth1")
	frag.LagGroup = &types.LagRef{IfName: "ae42", LagMode: "lacp_active"}
	if _, err := p.Merge([]types.Fragment{frag}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if assigned := reconcile.AssignLagGroups(p); assigned != 0 {
		t.Errorf("fetched-side group name must suppress assignment, assigned = %d", assigned)
	}
}

func TestAssignLagGroupsIsDeterministic(t *testing.T) {
	rows := []types.NetworkRow{
		lacpRow("leaf1", "server-c", "eth1"),
		lacpRow("leaf1", "server-a", "eth2"),
		lacpRow("leaf1", "server-b", "eth3"),
	}
	p := reconcile.Normalize("bp-1", rows)
	reconcile.AssignLagGroups(p)

	want := map[string]string{"server-a": "ae1", "server-b": "ae2", "server-c": "ae3"}
	for _, entry := range p.Entries() {
		if got := *entry.LagIfname.Input; got != want[entry.Key.Server] {
			t.Errorf("%s group = %q, want %q", entry.Key.Server, got, want[entry.Key.Server])
		}
	}
}
