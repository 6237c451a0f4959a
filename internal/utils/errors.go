package utils

import (
	"errors"
	"io/fs"
)

// OSMessage strips the operation and path from a filesystem error, leaving
// only the operating system's description ("no such file or directory").
func OSMessage(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
