package scanner

import (
	"errors"
	"testing"

	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest(t *testing.T) {
	entries := []models.Resolved{
		models.Readable(models.NewStdinSource()),
		models.Unresolvable(errors.New("logs is a directory")),
		models.Readable(models.NewFileSource("a.txt")),
	}

	manifest := NewManifest(entries, false)
	assert.Equal(t, 2, manifest.Readable)
	assert.Equal(t, 1, manifest.Unresolvable)
	assert.Equal(t, []ManifestEntry{
		{Kind: "stdin", Path: "-"},
		{Kind: "error", Error: "logs is a directory"},
		{Kind: "file", Path: "a.txt"},
	}, manifest.Entries)

	data, err := manifest.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "error: logs is a directory")

	decoded, err := DecodeManifest(data)
	require.NoError(t, err)
	assert.Equal(t, manifest, decoded)
}

func TestDecodeManifestInvalid(t *testing.T) {
	_, err := DecodeManifest([]byte("entries: [unterminated"))
	assert.Error(t, err)
}

func TestManifestFromResolver(t *testing.T) {
	entries := NewResolver(newTestFs(t)).Resolve([]string{"logs", "missing"}, true)

	manifest := NewManifest(entries, true)
	assert.True(t, manifest.Recursive)
	assert.Equal(t, 4, manifest.Readable)
	assert.Equal(t, 1, manifest.Unresolvable)
	assert.Equal(t, "error", manifest.Entries[4].Kind)
}
