package auth

import (
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/webbot/dispatch"
)

var _ dispatch.Authorizer = JWTAuthorizer{}

// AuthenticateJWT decodes jwt claims from the provided fields.
// If no token is set in the fields, AuthenticateJWT returns ErrNoToken;
// a token failing verification is an ErrBadToken.
// Please note that the consuming party needs to pass appToken as a pointer
// so that it can be hydrated by ParseWithClaims.
func (s *Service) AuthenticateJWT(v url.Values, appToken jwt.Claims) (jwt.Claims, error) {
	reqToken := v.Get(JWTField)
	if reqToken == "" {
		return nil, ErrNoToken
	}

	token, err := s.parser.ParseWithClaims(reqToken, appToken, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
	}

	return token.Claims, nil
}

// A JWTAuthorizer lets requests with a valid token view,
// and those whose Claims grant CanEdit edit.
type JWTAuthorizer struct {
	Service *Service
}

func (a JWTAuthorizer) claims(r *dispatch.Request) (*Claims, bool) {
	if a.Service == nil {
		return nil, false
	}

	claims, err := a.Service.AuthenticateJWT(r.Fields, &Claims{})
	if err != nil {
		return nil, false
	}

	c, ok := claims.(*Claims)
	return c, ok
}

func (a JWTAuthorizer) AllowView(r *dispatch.Request) bool {
	_, ok := a.claims(r)
	return ok
}

func (a JWTAuthorizer) AllowEdit(r *dispatch.Request) bool {
	c, ok := a.claims(r)
	return ok && c.CanEdit
}
