package auth

import (
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/http/session"
)

var _ dispatch.Authorizer = SessionAuthorizer{}

// A SessionAuthorizer lets users registered in the session of a request view.
//
// CanEdit decides which of them may edit; every one may when it is nil.
type SessionAuthorizer struct {
	CanEdit func(userID uint) bool
}

func userID(r *dispatch.Request) (uint, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return 0, false
	}

	id, err := s.UserID()
	return id, err == nil
}

func (a SessionAuthorizer) AllowView(r *dispatch.Request) bool {
	_, ok := userID(r)
	return ok
}

func (a SessionAuthorizer) AllowEdit(r *dispatch.Request) bool {
	id, ok := userID(r)
	if !ok {
		return false
	}

	return a.CanEdit == nil || a.CanEdit(id)
}

// Any lets a request view or edit when one of authorizers does.
func Any(authorizers ...dispatch.Authorizer) dispatch.Authorizer { return anyOf(authorizers) }

type anyOf []dispatch.Authorizer

func (as anyOf) AllowView(r *dispatch.Request) bool {
	for _, a := range as {
		if a.AllowView(r) {
			return true
		}
	}
	return false
}

func (as anyOf) AllowEdit(r *dispatch.Request) bool {
	for _, a := range as {
		if a.AllowEdit(r) {
			return true
		}
	}
	return false
}
