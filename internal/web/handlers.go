package web

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ajramos/invitemate/internal/calendar"
	"github.com/ajramos/invitemate/internal/services"
	"github.com/labstack/echo/v4"
)

func (s *Server) loginPage(c echo.Context) error {
	sess := sessionFrom(c)
	if sess.Authenticated() {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login", map[string]interface{}{
		"Step":   string(sess.Step),
		"Email":  sess.Email,
		"Notice": c.QueryParam("notice"),
	})
}

func (s *Server) sendCode(c echo.Context) error {
	sess := sessionFrom(c)

	if err := s.auth.SendCode(c.Request().Context(), sess, c.FormValue("email")); err != nil {
		return s.redirectWithNotice(c, "/login", err)
	}
	return redirectNotice(c, "/login", fmt.Sprintf("Code sent to %s", sess.Email))
}

func (s *Server) verifyCode(c echo.Context) error {
	sess := sessionFrom(c)

	if err := s.auth.VerifyCode(c.Request().Context(), sess, c.FormValue("code")); err != nil {
		return s.redirectWithNotice(c, "/login", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) logout(c echo.Context) error {
	if err := s.auth.Logout(c.Request().Context(), sessionFrom(c)); err != nil {
		s.logger.Error("logout failed", "error", err)
	}
	expireSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

func (s *Server) indexPage(c echo.Context) error {
	sess := sessionFrom(c)

	records, err := s.contacts.ListForUser(c.Request().Context(), sess.Email)
	if err != nil {
		return err
	}

	sel := filterSelection(c)
	visible := s.filters.Apply(records, sel)

	return c.Render(http.StatusOK, "index", map[string]interface{}{
		"User":     sess.Email,
		"Records":  visible,
		"Projects": s.filters.DeriveFacets(records, services.FacetProject),
		"Tags":     s.filters.DeriveFacets(records, services.FacetTag),
		"Teams":    s.filters.DeriveFacets(records, services.FacetTeam),
		"Selected": sel,
		"Notice":   c.QueryParam("notice"),
	})
}

func (s *Server) submitContact(c echo.Context) error {
	sess := sessionFrom(c)

	form := services.ContactForm{
		Emails:  c.FormValue("emails"),
		Project: c.FormValue("project"),
		Tags:    c.FormValue("tags"),
		Teams:   c.FormValue("teams"),
	}

	n, err := s.contacts.Submit(c.Request().Context(), sess.Email, form)
	if err != nil {
		return s.redirectWithNotice(c, "/", err)
	}
	return redirectNotice(c, "/", fmt.Sprintf("Added %d contact(s)", n))
}

func (s *Server) mailtoLink(c echo.Context) error {
	recipients, err := s.filteredRecipients(c)
	if err != nil {
		return err
	}

	link, err := s.actions.MailtoLink(recipients, c.QueryParam("subject"), c.QueryParam("body"))
	if err != nil {
		return s.redirectWithNotice(c, "/", err)
	}
	return c.String(http.StatusOK, link)
}

func (s *Server) calendarInvite(c echo.Context) error {
	recipients, err := s.filteredRecipients(c)
	if err != nil {
		return err
	}

	start, err := parseStart(c.QueryParam("date"), c.QueryParam("time"))
	if err != nil {
		return s.redirectWithNotice(c, "/", fmt.Errorf("%w: %v", services.ErrInvalidInput, err))
	}
	hours := 1
	if h := c.QueryParam("hours"); h != "" {
		if _, err := fmt.Sscanf(h, "%d", &hours); err != nil || hours < 1 {
			return s.redirectWithNotice(c, "/", fmt.Errorf("%w: invalid duration", services.ErrInvalidInput))
		}
	}

	payload, err := s.actions.CalendarInvite(services.InviteOptions{
		Title:    c.QueryParam("title"),
		Start:    start,
		Hours:    hours,
		Location: c.QueryParam("location"),
		Body:     c.QueryParam("body"),
	}, recipients)
	if err != nil {
		return s.redirectWithNotice(c, "/", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, calendar.Filename))
	return c.Blob(http.StatusOK, calendar.MIMEType, []byte(payload))
}

// filteredRecipients resolves the current user's rows through the facet
// filter and returns the visible email addresses.
func (s *Server) filteredRecipients(c echo.Context) ([]string, error) {
	sess := sessionFrom(c)

	records, err := s.contacts.ListForUser(c.Request().Context(), sess.Email)
	if err != nil {
		return nil, err
	}

	visible := s.filters.Apply(records, filterSelection(c))
	emails := make([]string, 0, len(visible))
	for _, rec := range visible {
		emails = append(emails, rec.Email)
	}
	return emails, nil
}

func filterSelection(c echo.Context) services.FilterSelection {
	q := c.QueryParams()
	return services.FilterSelection{
		Projects: q["projects"],
		Tags:     q["tags"],
		Teams:    q["teams"],
	}
}

// parseStart combines the selected date and time into the event start.
func parseStart(date, timeOfDay string) (time.Time, error) {
	if timeOfDay == "" {
		timeOfDay = "00:00"
	}
	return time.Parse("2006-01-02 15:04", fmt.Sprintf("%s %s", date, timeOfDay))
}

// redirectWithNotice renders service errors as user-visible notices; anything
// else is logged and reported generically.
func (s *Server) redirectWithNotice(c echo.Context, path string, err error) error {
	msg := err.Error()
	if !services.IsUserError(err) {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
		msg = "something went wrong, please try again"
	}
	return redirectNotice(c, path, msg)
}

func redirectNotice(c echo.Context, path, notice string) error {
	return c.Redirect(http.StatusFound, path+"?notice="+url.QueryEscape(notice))
}
