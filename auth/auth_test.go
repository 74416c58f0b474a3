package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/auth"
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/http/session"
)

func TestNewService(t *testing.T) {
	// Act
	s, err := auth.NewService("")

	// Assert
	require.ErrorIs(t, err, webbot.ErrBadConfig)
	require.Nil(t, s)
}

func TestAuthenticateJWT(t *testing.T) {
	// Arrange
	s, err := auth.NewService("secret")
	require.Nil(t, err)
	other, err := auth.NewService("other")
	require.Nil(t, err)

	valid, err := s.Sign(&auth.Claims{CanEdit: true})
	require.Nil(t, err)
	forged, err := other.Sign(&auth.Claims{CanEdit: true})
	require.Nil(t, err)
	expired, err := s.Sign(&auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	require.Nil(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.Nil(t, err)

	tcs := []struct {
		name  string
		token string
		err   error
	}{
		{"missing", "", auth.ErrNoToken},
		{"forged", forged, auth.ErrBadToken},
		{"expired", expired, auth.ErrBadToken},
		{"none", none, webbot.ErrNotValid},
		{"valid", valid, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			claims, err := s.AuthenticateJWT(url.Values{auth.JWTField: {tc.token}}, &auth.Claims{})

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.True(t, claims.(*auth.Claims).CanEdit)
			}
		})
	}
}

func TestJWTAuthorizer(t *testing.T) {
	// Arrange
	s, err := auth.NewService("secret")
	require.Nil(t, err)

	editor, err := s.Sign(&auth.Claims{CanEdit: true})
	require.Nil(t, err)
	viewer, err := s.Sign(&auth.Claims{})
	require.Nil(t, err)

	tcs := []struct {
		name  string
		a     auth.JWTAuthorizer
		token string
		view  bool
		edit  bool
	}{
		{"no-service", auth.JWTAuthorizer{}, editor, false, false},
		{"no-token", auth.JWTAuthorizer{Service: s}, "", false, false},
		{"viewer", auth.JWTAuthorizer{Service: s}, viewer, true, false},
		{"editor", auth.JWTAuthorizer{Service: s}, editor, true, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := dispatch.NewRequest(http.MethodPost, url.Values{auth.JWTField: {tc.token}})

			// Act + Assert
			require.Equal(t, tc.view, tc.a.AllowView(r))
			require.Equal(t, tc.edit, tc.a.AllowEdit(r))
		})
	}
}

func withSession(loggedIn bool) *dispatch.Request {
	s, _ := session.NewStub(loggedIn).GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
	r := dispatch.NewRequest(http.MethodPost, nil)
	return r.WithContext(context.WithValue(context.Background(), webbot.SessionKey, s))
}

func TestSessionAuthorizer(t *testing.T) {
	tcs := []struct {
		name string
		a    auth.SessionAuthorizer
		r    *dispatch.Request
		view bool
		edit bool
	}{
		{"no-session", auth.SessionAuthorizer{}, dispatch.NewRequest(http.MethodGet, nil), false, false},
		{"no-user", auth.SessionAuthorizer{}, withSession(false), false, false},
		{"user", auth.SessionAuthorizer{}, withSession(true), true, true},
		{"not-editor", auth.SessionAuthorizer{CanEdit: func(id uint) bool { return id == 2 }}, withSession(true), true, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act + Assert
			require.Equal(t, tc.view, tc.a.AllowView(tc.r))
			require.Equal(t, tc.edit, tc.a.AllowEdit(tc.r))
		})
	}
}

func TestAny(t *testing.T) {
	// Arrange
	s, err := auth.NewService("secret")
	require.Nil(t, err)
	a := auth.Any(auth.SessionAuthorizer{}, auth.JWTAuthorizer{Service: s})

	// Act + Assert
	require.False(t, a.AllowView(dispatch.NewRequest(http.MethodGet, nil)))
	require.True(t, a.AllowView(withSession(true)))
	require.True(t, a.AllowEdit(withSession(true)))
	require.False(t, auth.Any().AllowView(withSession(true)))
}
