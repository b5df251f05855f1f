package reconcile

import (
	"time"

	"github.com/ifacegroup/fabricsync/pkg/types"
)

// Result is the complete output of one fetch-and-compare run.
type Result struct {
	// Pass is the entry collection the run operated on.
	Pass *Pass

	// Report is the per-field and per-entry analysis.
	Report *Report

	// Ordered is the deterministic presentation sequence.
	Ordered []*types.ConnectionEntry

	// Stats describes the merge step, zero-valued when no fetch ran.
	Stats MergeStats

	// Errors collects non-fatal issues encountered during the run.
	Errors []error

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Summary is a convenience accessor for the pass summary.
func (r *Result) Summary() types.Summary {
	if r.Report == nil {
		return types.Summary{}
	}
	return r.Report.Summary
}

// ResultBuilder assembles a Result incrementally.
type ResultBuilder struct {
	result    *Result
	startTime time.Time
}

// NewResultBuilder creates a new result builder and starts its clock.
func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result:    &Result{},
		startTime: time.Now(),
	}
}

// WithPass sets the pass.
func (b *ResultBuilder) WithPass(p *Pass) *ResultBuilder {
	b.result.Pass = p
	return b
}

// WithReport sets the analysis report.
func (b *ResultBuilder) WithReport(report *Report) *ResultBuilder {
	b.result.Report = report
	return b
}

// WithOrdered sets the ordered entry sequence.
func (b *ResultBuilder) WithOrdered(ordered []*types.ConnectionEntry) *ResultBuilder {
	b.result.Ordered = ordered
	return b
}

// WithStats sets the merge statistics.
func (b *ResultBuilder) WithStats(stats MergeStats) *ResultBuilder {
	b.result.Stats = stats
	return b
}

// WithError appends a non-fatal error.
func (b *ResultBuilder) WithError(err error) *ResultBuilder {
	if err != nil {
		b.result.Errors = append(b.result.Errors, err)
	}
	return b
}

// Build finalizes and returns the result.
func (b *ResultBuilder) Build() *Result {
	b.result.Duration = time.Since(b.startTime)
	return b.result
}
