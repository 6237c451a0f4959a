package models

import "fmt"

// StdinName is the path sentinel that selects standard input
const StdinName = "-"

// SourceKind distinguishes the two kinds of readable input
type SourceKind int

const (
	StdinSource SourceKind = iota
	FileSource
)

// String returns a human-readable representation of the source kind
func (k SourceKind) String() string {
	switch k {
	case StdinSource:
		return "stdin"
	case FileSource:
		return "file"
	default:
		return "unknown"
	}
}

// Source is a single openable input: standard input or one regular file
type Source struct {
	Kind SourceKind `json:"kind" yaml:"kind"` // Stdin or file
	Name string     `json:"name" yaml:"name"` // "-" for stdin, file path otherwise
}

// NewStdinSource returns the standard input source
func NewStdinSource() Source {
	return Source{Kind: StdinSource, Name: StdinName}
}

// NewFileSource returns a source for the file at path
func NewFileSource(path string) Source {
	return Source{Kind: FileSource, Name: path}
}

// IsStdin reports whether the source reads from standard input
func (s Source) IsStdin() bool {
	return s.Kind == StdinSource
}

// Resolved is the outcome of resolving one path: a readable source or the
// reason it could not be resolved. Exactly one of Source and Err is meaningful.
type Resolved struct {
	Source Source
	Err    error
}

// Readable wraps a source that is known to be openable
func Readable(src Source) Resolved {
	return Resolved{Source: src}
}

// Unresolvable wraps a resolution failure
func Unresolvable(err error) Resolved {
	return Resolved{Err: err}
}

// Ok reports whether the entry resolved to a readable source
func (r Resolved) Ok() bool {
	return r.Err == nil
}

// String returns a one-line listing form of the entry
func (r Resolved) String() string {
	if r.Err != nil {
		return fmt.Sprintf("[ERR]  %s", r.Err)
	}
	return fmt.Sprintf("[%s] %s", r.Source.Kind, r.Source.Name)
}

// CountReadable returns the number of entries that resolved successfully
func CountReadable(entries []Resolved) int {
	count := 0
	for _, entry := range entries {
		if entry.Ok() {
			count++
		}
	}
	return count
}
