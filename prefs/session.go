package prefs

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionName is the cookie holding visitor preferences.
const SessionName = "homepage_prefs"

// Session is a Store backed by the visitor's session cookie. Writes are
// flushed to the response immediately.
type Session struct {
	c    echo.Context
	sess *sessions.Session
}

// FromContext opens the preference session for the request. The session
// middleware must be installed.
func FromContext(c echo.Context) (*Session, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil, err
	}
	return &Session{c: c, sess: sess}, nil
}

// Get implements Store. Non-string values are treated as absent.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.sess.Values[key].(string)
	return v, ok
}

// Set implements Store.
func (s *Session) Set(key, value string) error {
	s.sess.Values[key] = value
	return s.sess.Save(s.c.Request(), s.c.Response())
}
