package control

import "errors"

var (
	ErrNoControl = errors.New("no such control")
	ErrNoView    = errors.New("no view")
)
