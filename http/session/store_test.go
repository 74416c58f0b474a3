package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/session"
)

func TestNewStoreService(t *testing.T) {
	// Arrange
	notHex := "ðŸ˜…"
	hex := "ABCD"

	tcs := []struct {
		name string
		cfg  session.Config
		err  error
	}{
		{"bad-env", session.Config{Env: "nope", SessionName: "s", AuthKey: hex, EncryptKey: hex}, webbot.ErrNotValid},
		{"no-name", session.Config{Env: webbot.Testing, AuthKey: hex, EncryptKey: hex}, webbot.ErrBadConfig},
		{"bad-auth-key", session.Config{Env: webbot.Testing, SessionName: "s", AuthKey: notHex}, webbot.ErrBadConfig},
		{"bad-encrypt-key", session.Config{Env: webbot.Testing, SessionName: "s", AuthKey: hex, EncryptKey: notHex}, webbot.ErrBadConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			svc, err := session.NewStoreService(tc.cfg)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Zero(t, svc)
		})
	}

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	svc, err := session.NewStoreService(session.Config{Env: webbot.Testing, SessionName: "s", AuthKey: hex, EncryptKey: hex}, session.WithMaxAge(60))

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)

	s, err := svc.GetSession(r)
	require.Nil(t, err)

	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)
}

func TestSessionUser(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := session.NewStub(false).GetSession(r)
	require.Nil(t, err)

	// Act
	err = s.RegisterUser(w, r, 7)

	// Assert
	require.Nil(t, err)
	id, err := s.UserID()
	require.Nil(t, err)
	require.Equal(t, uint(7), id)

	// Act
	err = s.DeregisterUser(w, r)

	// Assert
	require.Nil(t, err)
	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)
	require.ErrorIs(t, err, webbot.ErrNotExist)

	// Act
	err = s.Set(w, r, userKey(), "seven")

	// Assert
	require.Nil(t, err)
	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrBadUser)
}

func userKey() string { return "webbot-session-gorilla-user" }

func TestFromContext(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, _ := session.NewStub(true).GetSession(r)

	tcs := []struct {
		name     string
		ctx      context.Context
		expected bool
	}{
		{"empty", context.Background(), false},
		{"wrong-type", context.WithValue(context.Background(), webbot.SessionKey, "session"), false},
		{"zero", context.WithValue(context.Background(), webbot.SessionKey, session.Session{}), false},
		{"ok", context.WithValue(context.Background(), webbot.SessionKey, s), true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, ok := session.FromContext(tc.ctx)

			// Assert
			require.Equal(t, tc.expected, ok)
		})
	}
}
