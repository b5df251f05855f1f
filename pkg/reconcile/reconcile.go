// Package reconcile implements the fabricsync reconciliation engine: it
// normalizes flat input rows into keyed connection entries, merges remote
// connectivity fragments into them without data loss, classifies per-field
// agreement, and produces a deterministic ordering for display and selection.
package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ifacegroup/fabricsync/pkg/types"
)

// QueryExecutor is the remote collaborator the engine consumes. It fetches
// connectivity for one blueprint restricted to a switch-label set, returning
// either the raw fragment sequence or a failure. The engine never constructs
// or parses the underlying query language.
type QueryExecutor interface {
	FetchConnectivity(ctx context.Context, blueprint string, switchLabels []string) ([]types.Fragment, error)
}

// Pass owns the mutable entry collection for one reconciliation run. A new
// pass always starts from a fresh collection built from the current input
// rows; entries are never shared across passes.
type Pass struct {
	// Blueprint is the controller blueprint this pass reconciles against.
	Blueprint string

	// Token identifies this pass for supersession checks.
	Token string

	// CreatedAt records when the pass was started.
	CreatedAt time.Time

	entries map[types.ConnectionKey]*types.ConnectionEntry
}

// NewPass creates an empty pass for a blueprint.
func NewPass(blueprint string) *Pass {
	return &Pass{
		Blueprint: blueprint,
		Token:     uuid.NewString(),
		CreatedAt: time.Now(),
		entries:   make(map[types.ConnectionKey]*types.ConnectionEntry),
	}
}

// Normalize converts a snapshot of flat input rows into a fresh pass, keyed
// by connection identity with source=input. Duplicate rows for the same
// connection fold field-by-field: a later populated value overwrites an
// earlier one, but a present value is never overwritten with an absent one.
// Rows missing switch or server identity are retained under their partial
// key and flagged incomplete; no input row is ever dropped.
func Normalize(blueprint string, rows []types.NetworkRow) *Pass {
	p := NewPass(blueprint)
	for i := range rows {
		p.addRow(&rows[i])
	}
	return p
}

// addRow folds one input row into the entry collection.
func (p *Pass) addRow(row *types.NetworkRow) {
	key := row.Key()

	entry, ok := p.entries[key]
	if !ok {
		entry = &types.ConnectionEntry{
			Key:        key,
			Source:     types.SourceInput,
			Incomplete: key.Switch == "" || key.Server == "",
		}
		p.entries[key] = entry
	}

	setInput(&entry.Blueprint, row.Blueprint)
	setInput(&entry.Server, row.ServerLabel)
	setInput(&entry.ServerIfname, row.ServerIfname)
	setInput(&entry.LinkSpeed, row.LinkSpeed)
	setInput(&entry.LagIfname, row.LinkGroupIfname)
	setInput(&entry.LagMode, row.LinkGroupLagMode)
	setInput(&entry.CTNames, row.LinkGroupCTNames)
	setInput(&entry.ServerTags, row.ServerTags)
	setInput(&entry.SwitchTags, row.SwitchTags)
	setInput(&entry.LinkGroupTags, row.LinkGroupTags)
	setInput(&entry.LinkTags, row.LinkTags)
	setInput(&entry.Comment, row.Comment)
	if row.IsExternal != nil {
		v := *row.IsExternal
		entry.External.Input = &v
	}
}

// setInput sets the input side of a pair from an optional raw value, trimming
// whitespace and treating empty as absent so present values survive.
func setInput(pair *types.StringPair, raw *string) {
	if raw == nil {
		return
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return
	}
	pair.Input = &v
}

// Len returns the number of entries in the pass.
func (p *Pass) Len() int { return len(p.entries) }

// Get looks up the entry for a connection key.
func (p *Pass) Get(key types.ConnectionKey) (*types.ConnectionEntry, bool) {
	e, ok := p.entries[key]
	return e, ok
}

// Entries returns an unordered snapshot of the entry collection. Callers
// needing a stable sequence should use Order.
func (p *Pass) Entries() []*types.ConnectionEntry {
	out := make([]*types.ConnectionEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	return out
}

// Clone deep-copies the pass. Merge stages its changes on a clone so that
// nothing is visible until the whole merge succeeds.
func (p *Pass) Clone() *Pass {
	cp := &Pass{
		Blueprint: p.Blueprint,
		Token:     p.Token,
		CreatedAt: p.CreatedAt,
		entries:   make(map[types.ConnectionKey]*types.ConnectionEntry, len(p.entries)),
	}
	for k, e := range p.entries {
		dup := *e
		cp.entries[k] = &dup
	}
	return cp
}

// adopt replaces the pass's entry collection with another's. Used to commit
// a staged merge.
func (p *Pass) adopt(staged *Pass) {
	p.entries = staged.entries
}
