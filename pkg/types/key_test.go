package types_test

import (
	"testing"

	"github.com/ifacegroup/fabricsync/pkg/types"
)

func TestNewConnectionKeyTrims(t *testing.T) {
	key := types.NewConnectionKey("  leaf1 ", "server-a", " eth1\t")
	if key.Switch != "leaf1" || key.Server != "server-a" || key.Iface != "eth1" {
		t.Errorf("unexpected key components: %+v", key)
	}
}

func TestConnectionKeyComplete(t *testing.T) {
	tests := []struct {
		key  types.ConnectionKey
		want bool
	}{
		{types.NewConnectionKey("leaf1", "server-a", "eth1"), true},
		{types.NewConnectionKey("", "server-a", "eth1"), false},
		{types.NewConnectionKey("leaf1", "", "eth1"), false},
		{types.NewConnectionKey("leaf1", "server-a", ""), false},
	}
	for _, tt := range tests {
		if got := tt.key.Complete(); got != tt.want {
			t.Errorf("Complete(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConnectionKeyNoSeparatorCollision(t *testing.T) {
	// Labels containing the rendering separator must still be distinct keys.
	a := types.NewConnectionKey("leaf1:eth1", "server", "")
	b := types.NewConnectionKey("leaf1", "server", "eth1")
	if a == b {
		t.Error("keys with separator-bearing labels collided")
	}
}

func TestConnectionKeyString(t *testing.T) {
	key := types.NewConnectionKey("leaf1", "server-a", "eth1")
	if got := key.String(); got != "leaf1:eth1<->server-a" {
		t.Errorf("String() = %q", got)
	}
}

func TestRowKey(t *testing.T) {
	row := types.NetworkRow{
		SwitchLabel:  types.StringPtr("leaf1"),
		SwitchIfname: types.StringPtr("eth1"),
	}
	key := row.Key()
	if key.Switch != "leaf1" || key.Iface != "eth1" || key.Server != "" {
		t.Errorf("unexpected key: %+v", key)
	}
	if key.Complete() {
		t.Error("key without server must not be complete")
	}
}

func TestServerName(t *testing.T) {
	entry := &types.ConnectionEntry{Key: types.NewConnectionKey("leaf1", "", "eth1")}
	if got := entry.ServerName(); got != types.UnknownServer {
		t.Errorf("ServerName() = %q, want placeholder", got)
	}

	fetched := "server-b"
	entry.Server.Fetched = &fetched
	if got := entry.ServerName(); got != "server-b" {
		t.Errorf("ServerName() = %q, want fetched fallback", got)
	}

	input := "server-a"
	entry.Server.Input = &input
	if got := entry.ServerName(); got != "server-a" {
		t.Errorf("ServerName() = %q, want input preference", got)
	}
}

func TestStringPairPrefer(t *testing.T) {
	var pair types.StringPair
	if pair.Prefer() != "" || pair.PreferPtr() != nil {
		t.Error("empty pair must prefer nothing")
	}

	fetched := "remote"
	pair.Fetched = &fetched
	if pair.Prefer() != "remote" {
		t.Error("fetched value must surface when input is absent")
	}

	input := "local"
	pair.Input = &input
	if pair.Prefer() != "local" {
		t.Error("input value must win over fetched")
	}
}
