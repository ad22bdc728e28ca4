package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/ajramos/invitemate/internal/auth"
	"github.com/ajramos/invitemate/internal/calendar"
	"github.com/ajramos/invitemate/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// go.opencensus.io (pulled in by google.golang.org/api) starts a
	// background worker at package init that can never be stopped.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// memSessionStore is an in-memory services.SessionStore
type memSessionStore struct {
	mu sync.Mutex
	m  map[string]*auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{m: make(map[string]*auth.Session)}
}

func (s *memSessionStore) Get(_ context.Context, id string) (*auth.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	return sess, ok, nil
}

func (s *memSessionStore) Save(_ context.Context, sess *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ID] = sess
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

// memSheets is an in-memory services.SheetsClient seeded with a header row
type memSheets struct {
	mu   sync.Mutex
	rows []map[string]string
}

func (f *memSheets) GetAllRecords(context.Context) ([]map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]string, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *memSheets) AppendRow(_ context.Context, values []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	headers := []string{"UserID", "Email", "Project", "Tags", "Teams"}
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(values) {
			row[h] = fmt.Sprintf("%v", values[i])
		} else {
			row[h] = ""
		}
	}
	f.rows = append(f.rows, row)
	return nil
}

// captureSender records the last delivered message
type captureSender struct {
	mu       sync.Mutex
	fail     bool
	lastTo   string
	lastBody string
}

func (s *captureSender) Send(_ context.Context, to, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("delivery backend down")
	}
	s.lastTo = to
	s.lastBody = body
	return nil
}

func (s *captureSender) code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody[len(s.lastBody)-6:]
}

type fixture struct {
	server *Server
	sheets *memSheets
	sender *captureSender
	cookie *http.Cookie
	t      *testing.T
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sheets := &memSheets{}
	sender := &captureSender{}
	sessions := newMemSessionStore()

	repo := services.NewSheetsContactRepository(sheets)
	server := NewServer(
		sessions,
		services.NewAuthService(sessions, sender, "Your verification code"),
		services.NewContactService(repo),
		services.NewFilterService(),
		services.NewActionService(),
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	)

	return &fixture{server: server, sheets: sheets, sender: sender, t: t}
}

// do performs one request, carrying the session cookie across calls.
func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	f.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echoHeaderContentType, "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}

	rec := httptest.NewRecorder()
	f.server.Echo().ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieSession && c.Value != "logout" {
			f.cookie = c
		}
	}
	return rec
}

const echoHeaderContentType = "Content-Type"

// login walks the whole code flow for email.
func (f *fixture) login(email string) {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/send-code", url.Values{"email": {email}})
	require.Equal(f.t, http.StatusFound, rec.Code)

	rec = f.do(http.MethodPost, "/verify", url.Values{"code": {f.sender.code()}})
	require.Equal(f.t, http.StatusFound, rec.Code)
	require.Equal(f.t, "/", rec.Header().Get("Location"))
}

func TestServer_SessionCookieIssuedOnFirstContact(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/login", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.cookie)
	assert.NotEmpty(t, f.cookie.Value)
}

func TestServer_UnauthenticatedAccessRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/", "/actions/mailto", "/actions/invite"} {
		rec := f.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/login", rec.Header().Get("Location"), target)
	}
}

func TestServer_LoginFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/send-code", url.Values{"email": {"owner@x.com"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "owner@x.com", f.sender.lastTo)

	// Wrong code stays on login with a notice.
	rec = f.do(http.MethodPost, "/verify", url.Values{"code": {"000000"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?notice=")

	// The mailed code authenticates.
	rec = f.do(http.MethodPost, "/verify", url.Values{"code": {f.sender.code()}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "owner@x.com")
}

func TestServer_DeliveryFailureStaysOnEmailInput(t *testing.T) {
	f := newFixture(t)
	f.sender.fail = true

	rec := f.do(http.MethodPost, "/send-code", url.Values{"email": {"owner@x.com"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?notice=")

	// Still on the email-input step: the login page shows no code form.
	rec = f.do(http.MethodGet, "/login", nil)
	assert.NotContains(t, rec.Body.String(), `name="code"`)
}

func TestServer_SubmitAndFilterContacts(t *testing.T) {
	f := newFixture(t)
	f.login("owner@x.com")

	rec := f.do(http.MethodPost, "/contacts", url.Values{
		"emails":  {"a@x.com, b@x.com"},
		"project": {"alpha"},
		"tags":    {"devops, qa"},
		"teams":   {"core"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Added 2 contact(s)"))

	// Both rows visible unfiltered.
	rec = f.do(http.MethodGet, "/", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "a@x.com")
	assert.Contains(t, body, "b@x.com")

	// Substring facet filter still matches devops for "dev".
	rec = f.do(http.MethodGet, "/?tags=dev", nil)
	assert.Contains(t, rec.Body.String(), "a@x.com")

	rec = f.do(http.MethodGet, "/?tags=nothing", nil)
	assert.NotContains(t, rec.Body.String(), "a@x.com")
}

func TestServer_SubmitRejectsInvalidEmails(t *testing.T) {
	f := newFixture(t)
	f.login("owner@x.com")

	rec := f.do(http.MethodPost, "/contacts", url.Values{"emails": {"a@x.com, bad"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), url.QueryEscape("bad"))

	// Nothing appended.
	rec = f.do(http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "a@x.com")
}

func TestServer_MailtoAction(t *testing.T) {
	f := newFixture(t)
	f.login("owner@x.com")

	f.do(http.MethodPost, "/contacts", url.Values{"emails": {"a@x.com"}, "project": {"alpha"}})

	rec := f.do(http.MethodGet, "/actions/mailto?subject=Hi+there&body=See+you", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mailto:a@x.com?subject=Hi%20there&body=See%20you", rec.Body.String())
}

func TestServer_CalendarInviteDownload(t *testing.T) {
	f := newFixture(t)
	f.login("owner@x.com")

	f.do(http.MethodPost, "/contacts", url.Values{"emails": {"a@x.com, b@x.com"}})

	rec := f.do(http.MethodGet,
		"/actions/invite?title=Sync&date=2025-06-02&time=09:30&hours=2&location=HQ&body=Agenda", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), calendar.MIMEType)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), calendar.Filename)

	inv, err := calendar.Parse(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "Sync", inv.Title)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, inv.Attendees)
}

func TestServer_Logout(t *testing.T) {
	f := newFixture(t)
	f.login("owner@x.com")

	rec := f.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The old cookie no longer authenticates.
	rec = f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
