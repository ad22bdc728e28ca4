package web

import (
	"net/http"
	"time"

	"github.com/ajramos/invitemate/internal/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	cookieSession  = "session"
	contextSession = "session"
)

// sessionMiddleware attaches the caller's login session to the request
// context, creating one (and issuing the cookie) on first contact.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var sess *auth.Session
		if cookie, err := c.Cookie(cookieSession); err == nil && cookie.Value != "" {
			stored, ok, err := s.sessions.Get(ctx, cookie.Value)
			if err != nil {
				return err
			}
			if ok {
				sess = stored
			}
		}

		if sess == nil {
			sess = auth.NewSession(uuid.NewString())
			if err := s.sessions.Save(ctx, sess); err != nil {
				return err
			}
			c.SetCookie(&http.Cookie{
				Path:     "/",
				Name:     cookieSession,
				Value:    sess.ID,
				HttpOnly: true,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}

		c.Set(contextSession, sess)
		return next(c)
	}
}

// requireAuth halts any request whose session has not completed the login
// flow; nothing past this point renders for unauthenticated callers.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !sessionFrom(c).Authenticated() {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

func sessionFrom(c echo.Context) *auth.Session {
	sess, _ := c.Get(contextSession).(*auth.Session)
	return sess
}

func expireSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Path:    "/",
		Name:    cookieSession,
		Value:   "logout",
		Expires: time.Unix(0, 0),
	})
}
