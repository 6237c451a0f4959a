package scanner

import (
	"fmt"
	"os"
	"strings"

	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/cheerioskun/grepninja/internal/utils"
	"github.com/spf13/afero"
)

// Resolver turns path arguments into an ordered list of readable sources
type Resolver struct {
	fs       afero.Fs
	maxDepth int
}

// NewResolver creates a new Resolver with the given filesystem
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{
		fs:       fs,
		maxDepth: 0, // Unlimited
	}
}

// SetMaxDepth limits how deep recursive resolution descends. Files directly
// inside a directory argument are at depth 1. Zero means unlimited.
func (r *Resolver) SetMaxDepth(depth int) {
	r.maxDepth = depth
}

// Resolve maps every path to one or more entries, preserving input order.
// A failure on one path never stops resolution of the others.
func (r *Resolver) Resolve(paths []string, recursive bool) []models.Resolved {
	results := make([]models.Resolved, 0, len(paths))

	for _, path := range paths {
		if path == models.StdinName {
			results = append(results, models.Readable(models.NewStdinSource()))
			continue
		}

		info, err := r.fs.Stat(path)
		if err != nil {
			results = append(results, models.Unresolvable(fmt.Errorf("%s: %s", path, utils.OSMessage(err))))
			continue
		}

		switch {
		case info.IsDir():
			if !recursive {
				results = append(results, models.Unresolvable(fmt.Errorf("%s is a directory", path)))
				continue
			}
			results = r.walkDirectory(path, 1, results)
		case info.Mode().IsRegular():
			results = append(results, models.Readable(models.NewFileSource(path)))
		default:
			// Sockets, devices and pipes are not searched
			utils.Debug("skipping %s: not a regular file (%s)", path, info.Mode().Type())
		}
	}

	return results
}

// walkDirectory appends every regular file below dir in lexical order.
// Entries that cannot be read are dropped; enumeration is best-effort.
func (r *Resolver) walkDirectory(dir string, depth int, results []models.Resolved) []models.Resolved {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return results
	}

	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		utils.Debug("skipping unreadable directory %s: %v", dir, err)
		return results
	}

	for _, entry := range entries {
		entryPath := joinEntry(dir, entry.Name())

		switch {
		case entry.IsDir():
			results = r.walkDirectory(entryPath, depth+1, results)
		case entry.Mode().IsRegular():
			results = append(results, models.Readable(models.NewFileSource(entryPath)))
		}
	}

	return results
}

// joinEntry appends name to dir without cleaning dir, so discovered paths
// keep the prefix the caller typed ("./logs/" stays "./logs/a.log").
func joinEntry(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
