package reconcile_test

import (
	"testing"

	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

func TestFlatRowsPrefersInput(t *testing.T) {
	input := row("leaf1", "server-a", "eth1")
	input.LinkSpeed = types.StringPtr("25g")
	p := reconcile.Normalize("bp-1", []types.NetworkRow{input})

	frag := fragment(0, "leaf1", "server-a", "eth1")
	frag.Link = &types.LinkRef{Speed: "10g"}
	frag.ServerIntf = &types.InterfaceRef{IfName: "ens1"}
	if _, err := p.Merge([]types.Fragment{frag}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	flat := reconcile.FlatRows(reconcile.Order(p), nil)
	if len(flat) != 1 {
		t.Fatalf("expected 1 row, got %d", len(flat))
	}
	if got := types.StringValue(flat[0].LinkSpeed); got != "25g" {
		t.Errorf("input speed must win, got %q", got)
	}
	if got := types.StringValue(flat[0].ServerIfname); got != "ens1" {
		t.Errorf("fetched-only field must fill the gap, got %q", got)
	}
	if got := types.StringValue(flat[0].SwitchLabel); got != "leaf1" {
		t.Errorf("switch label = %q", got)
	}
}

func TestFlatRowsSelection(t *testing.T) {
	rows := []types.NetworkRow{
		row("leaf1", "server-a", "eth1"),
		row("leaf1", "server-b", "eth2"),
		row("leaf2", "server-c", "eth3"),
	}
	p := reconcile.Normalize("bp-1", rows)
	ordered := reconcile.Order(p)

	selected := map[types.ConnectionKey]bool{
		types.NewConnectionKey("leaf1", "server-b", "eth2"): true,
	}
	flat := reconcile.FlatRows(ordered, selected)
	if len(flat) != 1 {
		t.Fatalf("expected 1 selected row, got %d", len(flat))
	}
	if got := types.StringValue(flat[0].ServerLabel); got != "server-b" {
		t.Errorf("wrong row selected: %q", got)
	}

	if got := len(reconcile.FlatRows(ordered, nil)); got != 3 {
		t.Errorf("nil selection must include every entry, got %d", got)
	}

	if got := len(reconcile.FlatRows(ordered, map[types.ConnectionKey]bool{})); got != 0 {
		t.Errorf("empty selection must include nothing, got %d", got)
	}
}

func TestFlatRowsDoesNotMutateEntries(t *testing.T) {
	input := row("leaf1", "server-a", "eth1")
	p := reconcile.Normalize("bp-1", []types.NetworkRow{input})
	ordered := reconcile.Order(p)

	flat := reconcile.FlatRows(ordered, nil)
	*flat[0].ServerLabel = "mutated"

	entry, _ := p.Get(types.NewConnectionKey("leaf1", "server-a", "eth1"))
	if got := entry.Server.Prefer(); got != "server-a" {
		t.Errorf("flattening must not alias entry storage, got %q", got)
	}
}
