package search

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/parser"
	"github.com/cheerioskun/grepninja/internal/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

type run struct {
	stdout  string
	stderr  string
	err     error
	summary tally
}

// tally is the subset of models.Summary the assertions look at
type tally struct {
	Searched, Failed, Matched int
}

func runSearch(t *testing.T, fs afero.Fs, stdin string, cfg config.Search) run {
	t.Helper()
	require.NoError(t, cfg.Validate())

	var stdout, stderr bytes.Buffer
	s := NewSearcher(fs, strings.NewReader(stdin), &stdout, &stderr)
	err := s.Run(&cfg)

	sum := s.Summary()
	return run{
		stdout:  stdout.String(),
		stderr:  stderr.String(),
		err:     err,
		summary: tally{Searched: sum.Searched, Failed: sum.Failed, Matched: sum.MatchedLines},
	}
}

const lorem = "Lorem\nIpsum\r\nDOLOR"

func TestRunSingleSourceHasNoPrefix(t *testing.T) {
	fs := newFs(t, map[string]string{"lorem.txt": lorem})

	r := runSearch(t, fs, "", config.Search{Pattern: "or", IgnoreCase: true, Paths: []string{"lorem.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "Lorem\nDOLOR", r.stdout)
	assert.Empty(t, r.stderr)
	assert.Equal(t, tally{Searched: 1, Matched: 2}, r.summary)
}

func TestRunMultipleSourcesArePrefixed(t *testing.T) {
	fs := newFs(t, map[string]string{
		"a.txt": lorem,
		"b.txt": "nothing here\nfor you\n",
	})

	r := runSearch(t, fs, "", config.Search{Pattern: "or", Paths: []string{"a.txt", "b.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "a.txt:Lorem\nb.txt:for you\n", r.stdout)

	r = runSearch(t, fs, "", config.Search{Pattern: "o", Invert: true, Paths: []string{"a.txt", "b.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "a.txt:Ipsum\r\na.txt:DOLOR", r.stdout)
}

func TestRunCountMode(t *testing.T) {
	fs := newFs(t, map[string]string{
		"a.txt": lorem,
		"b.txt": "no match\n",
	})

	r := runSearch(t, fs, "", config.Search{Pattern: "or", Count: true, IgnoreCase: true, Paths: []string{"a.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "2\n", r.stdout)

	r = runSearch(t, fs, "", config.Search{Pattern: "or", Count: true, Paths: []string{"a.txt", "b.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "a.txt:1\nb.txt:0\n", r.stdout)
}

func TestRunCountMatchesListing(t *testing.T) {
	fs := newFs(t, map[string]string{"a.txt": "one\ntwo\nthree\nfour\nfive"})

	for _, invert := range []bool{false, true} {
		list := runSearch(t, fs, "", config.Search{Pattern: "o", Invert: invert, Paths: []string{"a.txt"}})
		count := runSearch(t, fs, "", config.Search{Pattern: "o", Invert: invert, Count: true, Paths: []string{"a.txt"}})

		assert.Equal(t, list.summary.Matched, count.summary.Matched)
		lines := strings.SplitAfter(list.stdout, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		assert.Equal(t, strconv.Itoa(len(lines))+"\n", count.stdout)
	}
}

func TestRunStdin(t *testing.T) {
	r := runSearch(t, afero.NewMemMapFs(), lorem, config.Search{Pattern: "or"})
	require.NoError(t, r.err)
	assert.Equal(t, "Lorem\n", r.stdout)
}

func TestRunStdinUnavailable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := NewSearcher(afero.NewMemMapFs(), nil, &stdout, &stderr)

	require.NoError(t, s.Run(&config.Search{Pattern: "x", Paths: []string{"-"}}))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "-: standard input is not available\n", stderr.String())
}

func TestRunInvalidPatternIsFatal(t *testing.T) {
	fs := newFs(t, map[string]string{"a.txt": lorem})

	r := runSearch(t, fs, "", config.Search{Pattern: "*or", Paths: []string{"a.txt", "missing"}})
	require.Error(t, r.err)
	assert.True(t, errors.Is(r.err, parser.ErrInvalidPattern))
	assert.Equal(t, `Invalid pattern "*or"`, r.err.Error())
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr, "nothing is resolved before the pattern compiles")
}

func TestRunPathErrorsAreNotFatal(t *testing.T) {
	fs := newFs(t, map[string]string{
		"a.txt":     lorem,
		"dir/b.txt": "Lorem again\n",
	})

	r := runSearch(t, fs, "", config.Search{Pattern: "Lorem", Paths: []string{"missing.txt", "dir", "a.txt"}})
	require.NoError(t, r.err)
	// Only one source resolved, so no prefix
	assert.Equal(t, "Lorem\n", r.stdout)
	assert.Equal(t, "missing.txt: file does not exist\ndir is a directory\n", r.stderr)

	r = runSearch(t, fs, "", config.Search{Pattern: "Lorem", Recursive: true, Paths: []string{"missing.txt", "dir", "a.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "dir/b.txt:Lorem again\na.txt:Lorem\n", r.stdout)
	assert.Equal(t, "missing.txt: file does not exist\n", r.stderr)
}

func TestRunDecodingErrorSkipsSource(t *testing.T) {
	fs := newFs(t, map[string]string{
		"bad.txt":  "Lorem\n\xff\xfe\n",
		"good.txt": "Lorem\n",
	})

	r := runSearch(t, fs, "", config.Search{Pattern: "Lorem", Paths: []string{"bad.txt", "good.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "good.txt:Lorem\n", r.stdout, "matches before the failure are discarded")
	assert.Equal(t, "bad.txt: line 2: stream did not contain valid UTF-8\n", r.stderr)
	assert.Equal(t, tally{Searched: 1, Failed: 1, Matched: 1}, r.summary)
}

// openFailFs resolves files normally but refuses to open them
type openFailFs struct {
	afero.Fs
	deny string
}

func (fs openFailFs) Open(name string) (afero.File, error) {
	if name == fs.deny {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return fs.Fs.Open(name)
}

func TestRunOpenFailureSkipsSource(t *testing.T) {
	fs := openFailFs{
		Fs:   newFs(t, map[string]string{"a.txt": lorem, "b.txt": lorem}),
		deny: "a.txt",
	}

	r := runSearch(t, fs, "", config.Search{Pattern: "Ipsum", Paths: []string{"a.txt", "b.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, "b.txt:Ipsum\r\n", r.stdout)
	assert.Equal(t, "a.txt: permission denied\n", r.stderr)
}

func TestRunEmptyPatternSelectsEveryLine(t *testing.T) {
	fs := newFs(t, map[string]string{"lorem.txt": lorem})

	r := runSearch(t, fs, "", config.Search{Pattern: "", Paths: []string{"lorem.txt"}})
	require.NoError(t, r.err)
	assert.Equal(t, lorem, r.stdout)
	assert.Equal(t, tally{Searched: 1, Matched: 3}, r.summary)

	r = runSearch(t, fs, "", config.Search{Pattern: "", Invert: true, Paths: []string{"lorem.txt"}})
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
}

func TestRunDebugTrace(t *testing.T) {
	var logs bytes.Buffer
	logger := utils.NewWriterLogger(&logs)
	previous := utils.GetLogger()
	utils.SetDefaultLogger(logger)
	logger.SetDebug(true)
	defer func() {
		logger.SetDebug(false)
		utils.SetDefaultLogger(previous)
	}()

	fs := newFs(t, map[string]string{"a.txt": "error\n"})
	r := runSearch(t, fs, "", config.Search{Pattern: "err", IgnoreCase: true, Paths: []string{"a.txt", "missing", "gone"}})
	require.NoError(t, r.err)

	assert.Contains(t, logs.String(), `compiled pattern "err" (ignore case: true)`)
	assert.Contains(t, logs.String(), "searched 1 sources, 1 matched lines, 2 diagnostics")
}
