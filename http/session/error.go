package session

import (
	"fmt"

	"github.com/xy-planning-network/webbot"
)

var (
	// ErrNoUser is returned by sessions no user is registered in.
	ErrNoUser = fmt.Errorf("%w: no user registered", webbot.ErrNotExist)

	// ErrBadUser is returned when what a session holds for its user is not a user ID.
	ErrBadUser = fmt.Errorf("%w: user ID", webbot.ErrUnexpected)
)
