package session

import (
	"context"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/webbot"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey     = "webbot-session-gorilla" // used by Service
	userSessionKey = sessionKey + "-user"     // used by Session
)

// A Session provides all functionality for managing a session,
// lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession wraps g.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// FromContext retrieves the Session stashed in ctx under webbot.SessionKey.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}

	s, ok := ctx.Value(webbot.SessionKey).(Session)
	if !ok || s.s == nil {
		return Session{}, false
	}

	return s, true
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// DeregisterUser removes the User from the session.
func (s Session) DeregisterUser(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, userSessionKey)
	return s.Save(w, r)
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// RegisterUser stores the user's ID in the session.
func (s Session) RegisterUser(w http.ResponseWriter, r *http.Request, ID uint) error {
	s.s.Values[userSessionKey] = ID
	return s.Save(w, r)
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// UserID gets the user ID out of the session.
// If no user ID can be found, ErrNoUser is returned.
//
// If the value stored is not a uint, ErrBadUser is returned and represents a programming error.
func (s Session) UserID() (uint, error) {
	intfVal, ok := s.s.Values[userSessionKey]
	if !ok {
		return 0, ErrNoUser
	}

	val, ok := intfVal.(uint)
	if !ok {
		return 0, ErrBadUser
	}

	return val, nil
}
