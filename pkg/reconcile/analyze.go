package reconcile

import (
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// FieldClass classifies agreement between the two sides of one field.
type FieldClass string

const (
	// FieldAbsent means neither side supplied data; not counted.
	FieldAbsent FieldClass = "absent"
	// FieldInputOnly means only the input side supplied data.
	FieldInputOnly FieldClass = "input-only"
	// FieldFetchedOnly means only the fetched side supplied data.
	FieldFetchedOnly FieldClass = "fetched-only"
	// FieldMatch means both sides supplied equal (normalized) values.
	FieldMatch FieldClass = "match"
	// FieldConflict means both sides supplied unequal values.
	FieldConflict FieldClass = "conflict"
)

// EntryClass classifies one entry for the pass summary.
type EntryClass string

const (
	// EntryFullMatch means every field with any data present matches.
	EntryFullMatch EntryClass = "full_match"
	// EntryPartialMatch means data is present on both sides but at least
	// one field is one-sided or conflicting.
	EntryPartialMatch EntryClass = "partial_match"
	// EntryInputOnly means no remote data was joined to the entry.
	EntryInputOnly EntryClass = "input_only"
	// EntryFetchedOnly means the entry was synthesized purely from
	// remote data.
	EntryFetchedOnly EntryClass = "fetched_only"
)

// FieldDiff is the classification of one comparable field, with the raw
// values so callers can render without recomputation.
type FieldDiff struct {
	Field   string     `json:"field" yaml:"field"`
	Class   FieldClass `json:"class" yaml:"class"`
	Input   string     `json:"input,omitempty" yaml:"input,omitempty"`
	Fetched string     `json:"fetched,omitempty" yaml:"fetched,omitempty"`
}

// EntryReport is the per-entry analysis output.
type EntryReport struct {
	Key       types.ConnectionKey `json:"key" yaml:"key"`
	Class     EntryClass          `json:"class" yaml:"class"`
	Fields    []FieldDiff         `json:"fields" yaml:"fields"`
	Matches   int                 `json:"matches" yaml:"matches"`
	Conflicts int                 `json:"conflicts" yaml:"conflicts"`
	OneSided  int                 `json:"one_sided" yaml:"one_sided"`
}

// Report is the full analysis of one pass: a summary plus per-entry detail.
type Report struct {
	Summary types.Summary                        `json:"summary" yaml:"summary"`
	Entries map[types.ConnectionKey]*EntryReport `json:"entries" yaml:"entries"`
}

// Comparable field names, in presentation order.
const (
	fieldServer       = "server_label"
	fieldServerIfname = "server_ifname"
	fieldLinkSpeed    = "link_speed"
	fieldLagIfname    = "link_group_ifname"
	fieldLagMode      = "link_group_lag_mode"
	fieldCTNames      = "link_group_ct_names"
	fieldExternal     = "is_external"
)

// Analyze classifies every comparable field of every entry and aggregates
// the pass summary. It is a pure read of the entry collection and can run
// before or after a merge.
func Analyze(p *Pass) *Report {
	report := &Report{
		Entries: make(map[types.ConnectionKey]*EntryReport, p.Len()),
	}

	for key, entry := range p.entries {
		er := analyzeEntry(entry)
		report.Entries[key] = er

		report.Summary.Total++
		if entry.Incomplete {
			report.Summary.Incomplete++
		}
		if er.Conflicts > 0 {
			report.Summary.Conflicts++
		}
		switch er.Class {
		case EntryFullMatch:
			report.Summary.FullMatches++
		case EntryPartialMatch:
			report.Summary.PartialMatches++
		case EntryInputOnly:
			report.Summary.InputOnly++
		case EntryFetchedOnly:
			report.Summary.FetchedOnly++
		}
	}

	return report
}

// analyzeEntry classifies all comparable fields of one entry.
func analyzeEntry(entry *types.ConnectionEntry) *EntryReport {
	er := &EntryReport{Key: entry.Key}

	er.addString(fieldServer, entry.Server, equalText)
	er.addString(fieldServerIfname, entry.ServerIfname, equalText)
	er.addString(fieldLinkSpeed, entry.LinkSpeed, types.SpeedEqual)
	er.addString(fieldLagIfname, entry.LagIfname, equalText)
	er.addString(fieldLagMode, entry.LagMode, equalText)
	er.addString(fieldCTNames, entry.CTNames, equalText)
	er.addBool(fieldExternal, entry.External)

	switch entry.Source {
	case types.SourceInput:
		er.Class = EntryInputOnly
	case types.SourceFetched:
		er.Class = EntryFetchedOnly
	default:
		// A both-source entry is a full match only when no field with
		// data present disagrees or is one-sided.
		if er.Conflicts == 0 && er.OneSided == 0 {
			er.Class = EntryFullMatch
		} else {
			er.Class = EntryPartialMatch
		}
	}

	return er
}

// addString classifies one textual pair under the given equality and folds
// it into the report.
func (er *EntryReport) addString(field string, pair types.StringPair, equal func(a, b string) bool) {
	diff := FieldDiff{Field: field}
	if pair.HasInput() {
		diff.Input = *pair.Input
	}
	if pair.HasFetched() {
		diff.Fetched = *pair.Fetched
	}

	switch {
	case !pair.HasInput() && !pair.HasFetched():
		diff.Class = FieldAbsent
	case pair.HasInput() && !pair.HasFetched():
		diff.Class = FieldInputOnly
		er.OneSided++
	case !pair.HasInput() && pair.HasFetched():
		diff.Class = FieldFetchedOnly
		er.OneSided++
	case equal(diff.Input, diff.Fetched):
		diff.Class = FieldMatch
		er.Matches++
	default:
		diff.Class = FieldConflict
		er.Conflicts++
	}

	er.Fields = append(er.Fields, diff)
}

// addBool classifies one boolean pair; comparison is on the parsed value.
func (er *EntryReport) addBool(field string, pair types.BoolPair) {
	diff := FieldDiff{Field: field}
	if pair.HasInput() {
		diff.Input = boolString(*pair.Input)
	}
	if pair.HasFetched() {
		diff.Fetched = boolString(*pair.Fetched)
	}

	switch {
	case !pair.HasInput() && !pair.HasFetched():
		diff.Class = FieldAbsent
	case pair.HasInput() && !pair.HasFetched():
		diff.Class = FieldInputOnly
		er.OneSided++
	case !pair.HasInput() && pair.HasFetched():
		diff.Class = FieldFetchedOnly
		er.OneSided++
	case *pair.Input == *pair.Fetched:
		diff.Class = FieldMatch
		er.Matches++
	default:
		diff.Class = FieldConflict
		er.Conflicts++
	}

	er.Fields = append(er.Fields, diff)
}

// equalText is trimmed, case-sensitive comparison. Trimming happened at
// normalization; comparing the stored values keeps this a pure read.
func equalText(a, b string) bool { return a == b }

// boolString renders a parsed boolean for display.
func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
