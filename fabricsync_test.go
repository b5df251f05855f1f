package fabricsync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ifacegroup/fabricsync"
	syncerrors "github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// fakeExecutor is a scripted QueryExecutor. The optional during hook runs
// while the fetch is notionally in flight, before the result is returned.
type fakeExecutor struct {
	frags  []types.Fragment
	err    error
	during func()

	blueprint string
	labels    []string
	calls     int
}

func (f *fakeExecutor) FetchConnectivity(_ context.Context, blueprint string, switchLabels []string) ([]types.Fragment, error) {
	f.calls++
	f.blueprint = blueprint
	f.labels = switchLabels
	if f.during != nil {
		f.during()
	}
	return f.frags, f.err
}

func inputRow(switchLabel, serverLabel, iface string) types.NetworkRow {
	return types.NetworkRow{
		SwitchLabel:  types.StringPtr(switchLabel),
		ServerLabel:  types.StringPtr(serverLabel),
		SwitchIfname: types.StringPtr(iface),
	}
}

func remoteFragment(switchLabel, serverLabel, iface string) types.Fragment {
	return types.Fragment{
		Switch:     &types.SystemRef{Label: switchLabel},
		Server:     &types.SystemRef{Label: serverLabel},
		SwitchIntf: &types.InterfaceRef{IfName: iface},
	}
}

func TestFetchAndCompare(t *testing.T) {
	executor := &fakeExecutor{
		frags: []types.Fragment{
			remoteFragment("leaf1", "server-a", "eth1"),
			remoteFragment("leaf2", "server-b", "eth2"),
		},
	}
	engine, err := fabricsync.New(fabricsync.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	engine.Normalize("bp-1", []types.NetworkRow{inputRow("leaf1", "server-a", "eth1")})
	result, err := engine.FetchAndCompare(context.Background())
	if err != nil {
		t.Fatalf("FetchAndCompare failed: %v", err)
	}

	if executor.blueprint != "bp-1" {
		t.Errorf("fetched blueprint = %q", executor.blueprint)
	}
	if len(executor.labels) != 1 || executor.labels[0] != "leaf1" {
		t.Errorf("switch labels = %v, want the pass's switches", executor.labels)
	}

	summary := result.Summary()
	if summary.Total != 2 || summary.FullMatches != 1 || summary.FetchedOnly != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if result.Stats.Joined != 1 || result.Stats.Synthesized != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Ordered) != 2 {
		t.Errorf("ordered length = %d", len(result.Ordered))
	}
}

func TestFetchAndCompareFailureLeavesPassIntact(t *testing.T) {
	executor := &fakeExecutor{err: errors.New("controller unreachable")}
	engine, err := fabricsync.New(fabricsync.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	engine.Normalize("bp-1", []types.NetworkRow{inputRow("leaf1", "server-a", "eth1")})
	before := engine.Pass()

	if _, err := engine.FetchAndCompare(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	after := engine.Pass()
	if after != before {
		t.Error("failed fetch must not replace the pass")
	}
	entry, _ := after.Get(types.NewConnectionKey("leaf1", "server-a", "eth1"))
	if entry.Source != types.SourceInput {
		t.Errorf("failed fetch mutated an entry: source = %v", entry.Source)
	}
}

func TestFetchAndCompareSupersededByNewPass(t *testing.T) {
	executor := &fakeExecutor{
		frags: []types.Fragment{remoteFragment("leaf1", "server-a", "eth1")},
	}
	engine, err := fabricsync.New(fabricsync.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// A new pass starts while the fetch is in flight; the stale result
	// must be dropped whole.
	executor.during = func() {
		engine.Normalize("bp-1", []types.NetworkRow{inputRow("leaf9", "server-z", "eth9")})
	}

	engine.Normalize("bp-1", []types.NetworkRow{inputRow("leaf1", "server-a", "eth1")})
	_, err = engine.FetchAndCompare(context.Background())
	if !errors.Is(err, syncerrors.ErrSuperseded) {
		t.Fatalf("err = %v, want ErrSuperseded", err)
	}

	// The replacement pass is untouched by the stale merge.
	entry, ok := engine.Pass().Get(types.NewConnectionKey("leaf9", "server-z", "eth9"))
	if !ok || entry.Source != types.SourceInput {
		t.Error("stale fetch result leaked into the new pass")
	}
	if engine.Pass().Len() != 1 {
		t.Errorf("pass length = %d, want 1", engine.Pass().Len())
	}
}

func TestCompareOffline(t *testing.T) {
	engine, err := fabricsync.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	engine.Normalize("bp-1", []types.NetworkRow{
		inputRow("leaf1", "server-a", "eth1"),
		inputRow("leaf1", "server-b", "eth2"),
	})

	result, err := engine.Compare()
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got := result.Summary().InputOnly; got != 2 {
		t.Errorf("InputOnly = %d, want 2", got)
	}
}

func TestCompareRequiresPass(t *testing.T) {
	engine, err := fabricsync.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := engine.Compare(); err == nil {
		t.Error("Compare before Normalize must fail")
	}
	if _, err := engine.Provision(nil); err == nil {
		t.Error("Provision before Normalize must fail")
	}
}

func TestFetchAndCompareRequiresExecutor(t *testing.T) {
	engine, err := fabricsync.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	engine.Normalize("bp-1", nil)
	if _, err := engine.FetchAndCompare(context.Background()); err == nil {
		t.Error("expected error without an executor")
	}
}

func TestProvisionSelection(t *testing.T) {
	engine, err := fabricsync.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	engine.Normalize("bp-1", []types.NetworkRow{
		inputRow("leaf1", "server-a", "eth1"),
		inputRow("leaf1", "server-b", "eth2"),
	})

	selected := map[types.ConnectionKey]bool{
		types.NewConnectionKey("leaf1", "server-a", "eth1"): true,
	}
	flat, err := engine.Provision(selected)
	if err != nil {
		t.Fatalf("Provision failed: %v", err)
	}
	if len(flat) != 1 {
		t.Fatalf("expected 1 row, got %d", len(flat))
	}
	if got := types.StringValue(flat[0].ServerLabel); got != "server-a" {
		t.Errorf("selected row = %q", got)
	}

	all, err := engine.Provision(nil)
	if err != nil {
		t.Fatalf("Provision failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("nil selection must project every entry, got %d", len(all))
	}
}

func TestLagAutoAssignOption(t *testing.T) {
	lacp := inputRow("leaf1", "server-a", "eth1")
	lacp.LinkGroupLagMode = types.StringPtr("lacp_active")

	executor := &fakeExecutor{}
	engine, err := fabricsync.New(
		fabricsync.WithExecutor(executor),
		fabricsync.WithLagAutoAssign(false),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	engine.Normalize("bp-1", []types.NetworkRow{lacp})
	if _, err := engine.FetchAndCompare(context.Background()); err != nil {
		t.Fatalf("FetchAndCompare failed: %v", err)
	}

	entry, _ := engine.Pass().Get(types.NewConnectionKey("leaf1", "server-a", "eth1"))
	if entry.LagIfname.HasInput() {
		t.Error("auto-assign disabled but a group name was assigned")
	}
}

func TestWithSwitchLabelsOverridesDiscovery(t *testing.T) {
	executor := &fakeExecutor{}
	engine, err := fabricsync.New(
		fabricsync.WithExecutor(executor),
		fabricsync.WithSwitchLabels("leaf7", "leaf8"),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	engine.Normalize("bp-1", []types.NetworkRow{inputRow("leaf1", "server-a", "eth1")})
	if _, err := engine.FetchAndCompare(context.Background()); err != nil {
		t.Fatalf("FetchAndCompare failed: %v", err)
	}
	if len(executor.labels) != 2 || executor.labels[0] != "leaf7" {
		t.Errorf("labels = %v, want configured override", executor.labels)
	}
}
