// Package storage contains storage interfaces.
package storage

import (
	"errors"
)

// ErrNotFound means that requested object is not found.
var ErrNotFound = errors.New("not found")
