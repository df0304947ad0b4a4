package keypath

import "errors"

var (
	ErrEmptyPath = errors.New("key path has no components")
	ErrNoPaths   = errors.New("no key paths configured")
)
