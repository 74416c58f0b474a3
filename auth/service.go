package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/webbot"
)

// JWTField names the field of a request carrying its token.
const JWTField = "jwt"

// Service authenticates the tokens an app issues.
type Service struct {
	key    []byte
	parser *jwt.Parser
}

// NewService constructs a *Service verifying tokens signed with jwtKey.
func NewService(jwtKey string) (*Service, error) {
	if jwtKey == "" {
		return nil, fmt.Errorf("%w: jwt key cannot be empty", webbot.ErrBadConfig)
	}

	return &Service{
		key:    []byte(jwtKey),
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Claims are the claims of the tokens a Service issues.
type Claims struct {
	jwt.RegisteredClaims

	// CanEdit grants editing the pages the token is presented to.
	CanEdit bool `json:"canEdit,omitempty"`
}

// Sign issues a token carrying claims.
func (s *Service) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
