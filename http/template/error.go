package template

import "errors"

var (
	ErrNoFiles = errors.New("no files provided")
	ErrNoFS    = errors.New("no filesystems provided")
)
