package types

// Summary aggregates entry-level classification counts for one
// reconciliation pass. It is derived by the analyzer and recomputed from
// scratch each pass, never mutated incrementally.
type Summary struct {
	// Total is the number of entries in the pass.
	Total int `json:"total" yaml:"total"`

	// FullMatches counts entries where every field with data on either
	// side agrees.
	FullMatches int `json:"full_matches" yaml:"full_matches"`

	// PartialMatches counts entries with at least one matching field and
	// at least one one-sided or conflicting field.
	PartialMatches int `json:"partial_matches" yaml:"partial_matches"`

	// InputOnly counts entries no remote data was joined to.
	InputOnly int `json:"input_only" yaml:"input_only"`

	// FetchedOnly counts entries synthesized purely from remote data.
	FetchedOnly int `json:"fetched_only" yaml:"fetched_only"`

	// Conflicts counts entries with at least one conflicting field.
	Conflicts int `json:"conflicts" yaml:"conflicts"`

	// Incomplete counts entries whose key is missing switch or server
	// identity.
	Incomplete int `json:"incomplete" yaml:"incomplete"`
}
