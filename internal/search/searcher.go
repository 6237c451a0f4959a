// Package search runs a compiled pattern over every resolved source and
// writes listings or counts, one source at a time.
package search

import (
	"errors"
	"fmt"
	"io"

	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/cheerioskun/grepninja/internal/parser"
	"github.com/cheerioskun/grepninja/internal/scanner"
	"github.com/cheerioskun/grepninja/internal/utils"
	"github.com/spf13/afero"
)

// ErrNoStdin is reported for the "-" source when no standard input is attached
var ErrNoStdin = errors.New("standard input is not available")

// Searcher ties the resolver and the line matcher to output writers
type Searcher struct {
	fs       afero.Fs
	stdin    io.Reader
	out      io.Writer
	reporter *utils.Reporter
	summary  models.Summary
}

// NewSearcher creates a Searcher. Matches go to out, diagnostics to errOut.
func NewSearcher(fs afero.Fs, stdin io.Reader, out, errOut io.Writer) *Searcher {
	return &Searcher{
		fs:       fs,
		stdin:    stdin,
		out:      out,
		reporter: utils.NewReporter(errOut),
	}
}

// Run executes one search. Only a pattern that fails to compile is returned
// as an error; per-path and per-source failures are reported and skipped.
func (s *Searcher) Run(cfg *config.Search) error {
	s.summary.Reset()

	pattern, err := parser.Compile(cfg.Pattern, cfg.IgnoreCase)
	if err != nil {
		return err
	}
	utils.Debug("compiled pattern %q (ignore case: %t)", pattern, pattern.IgnoreCase())

	resolver := scanner.NewResolver(s.fs)
	resolver.SetMaxDepth(cfg.MaxDepth)
	entries := resolver.Resolve(cfg.Paths, cfg.Recursive)

	sourceCount := models.CountReadable(entries)
	s.summary.Resolved = sourceCount
	s.summary.Unresolvable = len(entries) - sourceCount
	utils.Debug("resolved %d sources from %d paths (%d unresolvable)",
		sourceCount, len(cfg.Paths), s.summary.Unresolvable)

	for _, entry := range entries {
		if !entry.Ok() {
			s.reporter.ReportError(entry.Err)
			continue
		}

		result, err := s.searchSource(entry.Source, pattern, cfg)
		if err != nil {
			s.summary.Failed++
			s.reporter.Report("%s: %v", entry.Source.Name, err)
			continue
		}

		s.summary.Add(result)
		if err := s.emit(result, cfg.Count, sourceCount > 1); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	utils.Debug("searched %d sources, %d matched lines, %d diagnostics",
		s.summary.Searched, s.summary.MatchedLines, s.reporter.Count())
	return nil
}

// Summary returns the tally of the last run
func (s *Searcher) Summary() models.Summary {
	return s.summary
}

// searchSource opens one source, matches it and releases it
func (s *Searcher) searchSource(src models.Source, pattern *parser.Pattern, cfg *config.Search) (*models.MatchResult, error) {
	reader, err := s.open(src)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if cfg.Count {
		count, err := parser.CountLines(reader, pattern, cfg.Invert)
		if err != nil {
			return nil, err
		}
		return models.NewCountResult(src, count), nil
	}

	lines, err := parser.MatchLines(reader, pattern, cfg.Invert)
	if err != nil {
		return nil, err
	}
	return models.NewMatchResult(src, lines), nil
}

// open returns a handle for src. Closing the stdin handle leaves stdin open.
func (s *Searcher) open(src models.Source) (io.ReadCloser, error) {
	if src.IsStdin() {
		if s.stdin == nil {
			return nil, ErrNoStdin
		}
		return io.NopCloser(s.stdin), nil
	}

	file, err := s.fs.Open(src.Name)
	if err != nil {
		return nil, errors.New(utils.OSMessage(err))
	}
	return file, nil
}

// emit writes a result as a count line or as its selected lines
func (s *Searcher) emit(result *models.MatchResult, countMode, prefixed bool) error {
	if countMode {
		return s.write(result.Source.Name, fmt.Sprintf("%d\n", result.Count), prefixed)
	}

	for _, line := range result.Lines {
		if err := s.write(result.Source.Name, line, prefixed); err != nil {
			return err
		}
	}
	return nil
}

func (s *Searcher) write(name, val string, prefixed bool) error {
	var err error
	if prefixed {
		_, err = fmt.Fprintf(s.out, "%s:%s", name, val)
	} else {
		_, err = io.WriteString(s.out, val)
	}
	return err
}
