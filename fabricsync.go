// Package fabricsync reconciles spreadsheet-derived network cabling rows
// against live connectivity fetched from a network-controller API, and
// projects operator-selected entries back into flat rows for provisioning.
package fabricsync

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/reconcile"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// Fabricsync drives reconciliation passes over one blueprint.
type Fabricsync interface {
	// Normalize starts a fresh pass from a snapshot of input rows,
	// discarding any previous pass. An in-flight fetch for the old pass
	// will be dropped when it resolves.
	Normalize(blueprint string, rows []types.NetworkRow)

	// Pass returns the current pass, nil before the first Normalize.
	Pass() *reconcile.Pass

	// Compare analyzes and orders the current pass without fetching.
	Compare() (*reconcile.Result, error)

	// FetchAndCompare fetches remote connectivity, merges it into the
	// current pass, then analyzes and orders. Overlapping invocations
	// are resolved latest-started-wins: a result arriving after a newer
	// invocation (or a new pass) has started is discarded with
	// errors.ErrSuperseded and mutates nothing. A failed fetch likewise
	// mutates nothing.
	FetchAndCompare(ctx context.Context) (*reconcile.Result, error)

	// Provision projects the selected entries of the current pass into
	// flat rows for the provisioning submission step. A nil selection
	// means all entries.
	Provision(selected map[types.ConnectionKey]bool) ([]types.NetworkRow, error)
}

// fabricsync is the internal implementation of the Fabricsync interface.
type fabricsync struct {
	mu       sync.Mutex
	config   *config
	pass     *reconcile.Pass
	inflight string // token of the latest-started fetch
}

// New creates a new Fabricsync instance with the given options.
func New(opts ...Option) (Fabricsync, error) {
	s := &fabricsync{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Normalize starts a fresh pass from the given input snapshot.
func (s *fabricsync) Normalize(blueprint string, rows []types.NetworkRow) {
	pass := reconcile.Normalize(blueprint, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pass = pass
	s.inflight = "" // anything in flight now belongs to a dead pass
	s.config.logger.Info().
		Str("blueprint", blueprint).
		Int("rows", len(rows)).
		Int("entries", pass.Len()).
		Msg("normalized input rows")
}

// Pass returns the current pass.
func (s *fabricsync) Pass() *reconcile.Pass {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pass
}

// Compare analyzes and orders the current pass without fetching.
func (s *fabricsync) Compare() (*reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pass == nil {
		return nil, errors.New("no pass: call Normalize first")
	}
	return s.buildResult(reconcile.MergeStats{}), nil
}

// FetchAndCompare runs one guarded fetch-and-merge invocation.
func (s *fabricsync) FetchAndCompare(ctx context.Context) (*reconcile.Result, error) {
	if s.config.executor == nil {
		return nil, errors.New("no query executor configured")
	}

	s.mu.Lock()
	if s.pass == nil {
		s.mu.Unlock()
		return nil, errors.New("no pass: call Normalize first")
	}
	token := uuid.NewString()
	s.inflight = token
	blueprint := s.pass.Blueprint
	labels := s.switchLabelsLocked()
	s.mu.Unlock()

	log := logging.FromContext(ctx)
	log.Debug().
		Str("blueprint", blueprint).
		Str("token", token).
		Int("switches", len(labels)).
		Msg("fetching connectivity")

	frags, err := s.config.executor.FetchConnectivity(ctx, blueprint, labels)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer invocation or pass started while we were fetching; applying
	// this result would interleave partial merges, so drop it whole.
	if s.inflight != token {
		log.Debug().Str("token", token).Msg("discarding superseded fetch result")
		return nil, errors.ErrSuperseded
	}
	s.inflight = ""

	if err != nil {
		// All-or-nothing: the pass is exactly as it was pre-fetch.
		log.Error().Err(err).Str("blueprint", blueprint).Msg("connectivity fetch failed")
		return nil, err
	}

	stats, err := s.pass.Merge(frags)
	if err != nil {
		return nil, err
	}
	if s.config.assignLagGroups {
		reconcile.AssignLagGroups(s.pass)
	}

	log.Info().
		Int("fragments", stats.Fragments).
		Int("joined", stats.Joined).
		Int("synthesized", stats.Synthesized).
		Msg("merged remote connectivity")

	return s.buildResult(stats), nil
}

// Provision projects selected entries into flat rows.
func (s *fabricsync) Provision(selected map[types.ConnectionKey]bool) ([]types.NetworkRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pass == nil {
		return nil, errors.New("no pass: call Normalize first")
	}
	return reconcile.FlatRows(reconcile.Order(s.pass), selected), nil
}

// buildResult assembles the analysis result for the current pass.
// Caller holds the mutex.
func (s *fabricsync) buildResult(stats reconcile.MergeStats) *reconcile.Result {
	return reconcile.NewResultBuilder().
		WithPass(s.pass).
		WithReport(reconcile.Analyze(s.pass)).
		WithOrdered(reconcile.Order(s.pass)).
		WithStats(stats).
		Build()
}

// switchLabelsLocked collects the distinct switch labels of the current
// pass to restrict the remote query. Caller holds the mutex.
func (s *fabricsync) switchLabelsLocked() []string {
	if len(s.config.switchLabels) > 0 {
		return s.config.switchLabels
	}
	seen := make(map[string]bool)
	for _, entry := range s.pass.Entries() {
		if sw := entry.Key.Switch; sw != "" && !seen[sw] {
			seen[sw] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for sw := range seen {
		labels = append(labels, sw)
	}
	sort.Strings(labels)
	return labels
}
