package messages

import "github.com/cheerioskun/grepninja/internal/models"

// PatternChangedMsg is sent when the search pattern or its flags are edited
type PatternChangedMsg struct {
	Pattern    string
	IgnoreCase bool
	Invert     bool
	Count      bool
}

// SearchCompletedMsg carries the output of one search run
type SearchCompletedMsg struct {
	Seq         int            // Sequence number of the run; stale runs are dropped
	Output      string         // Exactly what the search command would print
	Diagnostics []string       // Per-path and per-source errors
	Summary     models.Summary // Tally of the run
	Err         error          // Fatal error, e.g. an invalid pattern
}

// SourcesResolvedMsg is sent once the path arguments have been resolved
type SourcesResolvedMsg struct {
	Entries []models.Resolved
}
