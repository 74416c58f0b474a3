package auth

import (
	"fmt"

	"github.com/xy-planning-network/webbot"
)

var (
	// ErrNoToken is returned for requests carrying nothing in JWTField.
	ErrNoToken = fmt.Errorf("%w: no %s field", webbot.ErrMissingData, JWTField)

	// ErrBadToken is returned for tokens failing verification, such as forged or expired ones.
	ErrBadToken = fmt.Errorf("%w: token", webbot.ErrNotValid)
)
