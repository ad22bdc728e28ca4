// Package web is the rendered UI surface: an echo server exposing the login
// flow, the contact form, the facet filters and the action downloads.
package web

import (
	"embed"
	"html/template"
	"io"
	"log/slog"

	"github.com/ajramos/invitemate/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed views/*.html
var viewsFS embed.FS

// Templates adapts html/template to echo's renderer interface.
type Templates struct {
	*template.Template
}

// Render implements echo.Renderer
func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.ExecuteTemplate(w, name, data)
}

// Server wires the business services to HTTP handlers.
type Server struct {
	echo     *echo.Echo
	sessions services.SessionStore
	auth     services.AuthService
	contacts services.ContactService
	filters  services.FilterService
	actions  services.ActionService
	logger   *slog.Logger
}

// NewServer creates the HTTP surface over the given services.
func NewServer(
	sessions services.SessionStore,
	authSvc services.AuthService,
	contactSvc services.ContactService,
	filterSvc services.FilterService,
	actionSvc services.ActionService,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		sessions: sessions,
		auth:     authSvc,
		contacts: contactSvc,
		filters:  filterSvc,
		actions:  actionSvc,
		logger:   logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Renderer = &Templates{template.Must(template.ParseFS(viewsFS, "views/*.html"))}

	e.Use(s.sessionMiddleware)

	// login flow
	e.GET("/login", s.loginPage)
	e.POST("/send-code", s.sendCode)
	e.POST("/verify", s.verifyCode)
	e.POST("/logout", s.logout)

	// everything below is gated on an authenticated session
	g := e.Group("", s.requireAuth)
	g.GET("/", s.indexPage)
	g.POST("/contacts", s.submitContact)
	g.GET("/actions/mailto", s.mailtoLink)
	g.GET("/actions/invite", s.calendarInvite)

	s.echo = e
	return s
}

// Start begins serving on addr and blocks.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
