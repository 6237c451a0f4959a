package models

// MatchResult holds the selected lines of one source. Each line keeps its
// trailing terminator, if it had one.
type MatchResult struct {
	Source Source   `json:"source"`
	Lines  []string `json:"lines,omitempty"` // Empty in count mode
	Count  int      `json:"count"`           // Number of selected lines
}

// NewMatchResult creates a result from a list of selected lines
func NewMatchResult(src Source, lines []string) *MatchResult {
	return &MatchResult{
		Source: src,
		Lines:  lines,
		Count:  len(lines),
	}
}

// NewCountResult creates a result that only carries a count
func NewCountResult(src Source, count int) *MatchResult {
	return &MatchResult{
		Source: src,
		Count:  count,
	}
}

// Summary is the running tally of a search run
type Summary struct {
	Resolved       int `json:"resolved"`         // Readable sources
	Unresolvable   int `json:"unresolvable"`     // Paths that failed resolution
	Failed         int `json:"failed"`           // Sources that failed to open or read
	Searched       int `json:"searched"`         // Sources fully searched
	MatchedLines   int `json:"matched_lines"`    // Selected lines over all searched sources
	SourcesWithHit int `json:"sources_with_hit"` // Searched sources with at least one selected line
}

// Add folds one source result into the summary
func (s *Summary) Add(result *MatchResult) {
	s.Searched++
	s.MatchedLines += result.Count
	if result.Count > 0 {
		s.SourcesWithHit++
	}
}

// Reset clears the summary
func (s *Summary) Reset() {
	*s = Summary{}
}
