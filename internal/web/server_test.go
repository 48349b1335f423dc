package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JonMunkholm/nonprofit/internal/config"
	"github.com/JonMunkholm/nonprofit/internal/core"
	_ "github.com/JonMunkholm/nonprofit/internal/core/resources"
	"github.com/JonMunkholm/nonprofit/internal/session"
	"github.com/JonMunkholm/nonprofit/internal/store/memory"
)

const (
	testAdmin    = "admin@example.org"
	testPassword = "correct horse battery"
)

type testEnv struct {
	server   *Server
	service  *core.Service
	sessions *session.Store
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth, err := session.NewAuthenticator(testAdmin, string(hash), "")
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{RequestTimeout: 5 * time.Second},
		Security: config.SecurityConfig{EnableCSP: true},
		Rate:     config.RateLimitConfig{Enabled: false},
		Site:     config.SiteConfig{Name: "Test Foundation", Tagline: "Testing together"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	svc := core.NewService(memory.New())
	sessions := session.NewStore(time.Hour)
	return &testEnv{
		server:   NewServer(svc, sessions, auth, cfg),
		service:  svc,
		sessions: sessions,
	}
}

// adminCtx is the context used to seed data as an admin.
func adminCtx() context.Context {
	return core.ContextWithAdmin(context.Background(), testAdmin)
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, path string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if admin {
		e.authorize(req)
	}
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if admin {
		e.authorize(req)
	}
	return e.do(t, req)
}

func (e *testEnv) sendJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	e.authorize(req)
	return e.do(t, req)
}

func (e *testEnv) authorize(req *http.Request) {
	sess := e.sessions.Create(testAdmin)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sess.ID})
}

func (e *testEnv) mustCreate(t *testing.T, key string, form map[string]string) core.Row {
	t.Helper()
	row, err := e.service.Create(adminCtx(), key, form)
	if err != nil {
		t.Fatalf("Create %s: %v", key, err)
	}
	return row
}

func (e *testEnv) count(t *testing.T, key string) int64 {
	t.Helper()
	n, err := e.service.Count(context.Background(), key)
	if err != nil {
		t.Fatalf("Count %s: %v", key, err)
	}
	return n
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body:\n%s", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/api/health", false)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/", false)
	assertStatus(t, rec, http.StatusOK)

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "https://www.youtube-nocookie.com") {
		t.Errorf("CSP does not allow video embeds: %q", csp)
	}
}

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreate(t, core.KeyArticles, map[string]string{
		"title": "Library Opens", "body": "Doors open Monday.", "published": "true",
	})
	env.mustCreate(t, core.KeyArticles, map[string]string{
		"title": "Draft Notes", "body": "Not yet.", "published": "false",
	})
	env.mustCreate(t, core.KeyPrograms, map[string]string{
		"title": "Reading Club", "published": "true",
	})

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "Reading Club"},
		{"/about", http.StatusOK, "Test Foundation"},
		{"/programs", http.StatusOK, "Reading Club"},
		{"/programs/reading-club", http.StatusOK, "Reading Club"},
		{"/university", http.StatusOK, ""},
		{"/news", http.StatusOK, "Library Opens"},
		{"/news?search=library", http.StatusOK, "Library Opens"},
		{"/news/library-opens", http.StatusOK, "Doors open Monday."},
		{"/news/draft-notes", http.StatusNotFound, ""},
		{"/news/missing", http.StatusNotFound, ""},
		{"/videos", http.StatusOK, ""},
		{"/events", http.StatusOK, ""},
		{"/events/nothing", http.StatusNotFound, ""},
		{"/contact", http.StatusOK, "Contact us"},
		{"/get-involved", http.StatusOK, "Reading Club"},
		{"/no-such-page", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(t, tt.path, false)
			assertStatus(t, rec, tt.status)
			if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body does not contain %q", tt.want)
			}
		})
	}

	t.Run("unpublished article is hidden from the list", func(t *testing.T) {
		rec := env.get(t, "/news", false)
		if strings.Contains(rec.Body.String(), "Draft Notes") {
			t.Error("unpublished article listed on /news")
		}
	})
}

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.org"},
		"message": {"Hello there"},
	}, false)
	assertStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/contact" {
		t.Errorf("Location = %q", loc)
	}
	if n := env.count(t, core.KeyContactMessages); n != 1 {
		t.Errorf("contact messages = %d, want 1", n)
	}

	rec = env.postForm(t, "/contact", url.Values{"name": {"Ada"}, "message": {"no email"}}, false)
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	if !strings.Contains(rec.Body.String(), "no email") {
		t.Error("submitted values should be echoed back into the form")
	}
	if n := env.count(t, core.KeyContactMessages); n != 1 {
		t.Errorf("invalid submission was stored: %d messages", n)
	}
}

func TestDonateAndVolunteer(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/donate", url.Values{
		"donor_name": {"Grace"},
		"email":      {"grace@example.org"},
		"amount":     {"0"},
	}, false)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.postForm(t, "/donate", url.Values{
		"donor_name": {"Grace"},
		"email":      {"grace@example.org"},
		"amount":     {"25.50"},
		"frequency":  {"one_time"},
		"status":     {"received"},
	}, false)
	assertStatus(t, rec, http.StatusSeeOther)

	page, err := env.service.List(context.Background(), core.KeyDonations, core.ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || page.Items[0].String("status") == "received" {
		t.Errorf("donation should be stored as pending, got %v", page.Items)
	}

	rec = env.postForm(t, "/volunteer", url.Values{
		"name":  {"Linus"},
		"email": {"linus@example.org"},
	}, false)
	assertStatus(t, rec, http.StatusSeeOther)
	if n := env.count(t, core.KeyVolunteers); n != 1 {
		t.Errorf("volunteers = %d, want 1", n)
	}
}

func TestNewsletterSubscription(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/newsletter/subscribe", url.Values{"email": {"Reader@Example.org"}}, false)
	assertStatus(t, rec, http.StatusOK)

	rec = env.postForm(t, "/newsletter/subscribe", url.Values{"email": {"reader@example.org"}}, false)
	assertStatus(t, rec, http.StatusOK)
	if n := env.count(t, core.KeySubscribers); n != 1 {
		t.Errorf("subscribers = %d, want 1", n)
	}

	rec = env.postForm(t, "/newsletter/subscribe", url.Values{"email": {"not-an-email"}}, false)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.get(t, "/newsletter/unsubscribe?email=reader%40example.org", false)
	assertStatus(t, rec, http.StatusOK)
	subs, err := env.service.ActiveSubscribers(context.Background())
	if err != nil {
		t.Fatalf("ActiveSubscribers: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("active subscribers = %d after unsubscribe", len(subs))
	}

	// Unknown addresses get the same page.
	rec = env.get(t, "/newsletter/unsubscribe?email=nobody%40example.org", false)
	assertStatus(t, rec, http.StatusOK)
}

func TestAdminRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/admin/articles", false)
	assertStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/admin/login?next=") {
		t.Errorf("Location = %q", loc)
	}

	rec = env.get(t, "/api/admin/articles", false)
	assertStatus(t, rec, http.StatusUnauthorized)

	rec = env.get(t, "/admin/login", false)
	assertStatus(t, rec, http.StatusOK)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/admin/login", url.Values{
		"email":    {testAdmin},
		"password": {"wrong"},
	}, false)
	assertStatus(t, rec, http.StatusUnauthorized)
	if !strings.Contains(rec.Body.String(), "Email or password is incorrect") {
		t.Error("login failure message missing")
	}

	rec = env.postForm(t, "/admin/login", url.Values{
		"email":    {"ADMIN@example.org"},
		"password": {testPassword},
		"next":     {"/admin/articles"},
	}, false)
	assertStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/admin/articles" {
		t.Errorf("Location = %q, want /admin/articles", loc)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
	req.AddCookie(cookie)
	assertStatus(t, env.do(t, req), http.StatusOK)

	audit, err := env.service.List(context.Background(), core.KeyAuditLog, core.ListQuery{})
	if err != nil {
		t.Fatalf("List audit: %v", err)
	}
	actions := map[string]int{}
	for _, row := range audit.Items {
		actions[row.String("action")]++
	}
	if actions["login"] != 1 || actions["login_failed"] != 1 {
		t.Errorf("audit actions = %v", actions)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	assertStatus(t, env.do(t, req), http.StatusSeeOther)
	if _, ok := env.sessions.Get(cookie.Value); ok {
		t.Error("session should be deleted on logout")
	}
}

func TestAdminCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/admin/articles/new", true)
	assertStatus(t, rec, http.StatusOK)

	rec = env.postForm(t, "/admin/articles", url.Values{"title": {""}, "body": {"x"}}, true)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.postForm(t, "/admin/articles", url.Values{
		"title":     {"Annual Report"},
		"body":      {"Numbers."},
		"published": {"false", "true"},
	}, true)
	assertStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/admin/articles" {
		t.Errorf("Location = %q", loc)
	}

	row, err := env.service.Get(context.Background(), core.KeyArticles, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !row.Bool("published") || row.String("slug") != "annual-report" {
		t.Errorf("created row = %v", row)
	}

	rec = env.get(t, "/admin/articles?search=annual&sort=title&dir=asc", true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Annual Report") {
		t.Error("list does not show the created article")
	}

	rec = env.get(t, "/admin/articles/1/edit", true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Numbers.") {
		t.Error("edit form is not filled with the current values")
	}

	rec = env.postForm(t, "/admin/articles/1", url.Values{"title": {"Annual Report 2025"}}, true)
	assertStatus(t, rec, http.StatusSeeOther)
	row, _ = env.service.Get(context.Background(), core.KeyArticles, 1)
	if row.String("title") != "Annual Report 2025" || row.String("body") != "Numbers." {
		t.Errorf("updated row = %v", row)
	}

	rec = env.postForm(t, "/admin/articles/1/delete", nil, true)
	assertStatus(t, rec, http.StatusSeeOther)
	if _, err := env.service.Get(context.Background(), core.KeyArticles, 1); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}

	assertStatus(t, env.get(t, "/admin/articles/1/edit", true), http.StatusNotFound)
	assertStatus(t, env.get(t, "/admin/articles/abc/edit", true), http.StatusNotFound)
	assertStatus(t, env.get(t, "/admin/unknown", true), http.StatusNotFound)
}

func TestAdminReadOnlyAuditLog(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, core.KeyPrograms, map[string]string{"title": "Audited"})

	rec := env.get(t, "/admin/audit-log?filter%5Baction%5D=create", true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Audited") {
		t.Error("audit log does not list the create entry")
	}

	assertStatus(t, env.get(t, "/admin/audit_log/new", true), http.StatusForbidden)

	rec = env.sendJSON(t, http.MethodPost, "/api/admin/audit_log", `{}`)
	assertStatus(t, rec, http.StatusForbidden)
	if !strings.Contains(rec.Body.String(), "RES002") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, core.KeyPrograms, map[string]string{"title": "Counted"})

	rec := env.get(t, "/admin", true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Programs") {
		t.Error("dashboard does not list resources")
	}
}

func TestAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.sendJSON(t, http.MethodPost, "/api/admin/programs",
		`{"title":"Reading Club","published":true,"display_order":2}`)
	assertStatus(t, rec, http.StatusCreated)

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["slug"] != "reading-club" || created["published"] != true {
		t.Errorf("created = %v", created)
	}

	rec = env.sendJSON(t, http.MethodPost, "/api/admin/programs", `{"summary":"no title"}`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	var verr ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &verr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := verr.Fields["title"]; !ok {
		t.Errorf("validation response fields = %v", verr.Fields)
	}

	rec = env.sendJSON(t, http.MethodPost, "/api/admin/programs", `not json`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	q := url.Values{"filter[published]": {"true"}, "sort": {"title"}}
	rec = env.sendJSON(t, http.MethodGet, "/api/admin/programs?"+q.Encode(), "")
	assertStatus(t, rec, http.StatusOK)
	var list ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 || list.Page != 1 || list.TotalPages != 1 {
		t.Errorf("list = %+v", list)
	}

	rec = env.sendJSON(t, http.MethodPut, "/api/admin/programs/1", `{"summary":"Weekly"}`)
	assertStatus(t, rec, http.StatusOK)
	row, _ := env.service.Get(context.Background(), core.KeyPrograms, 1)
	if row.String("summary") != "Weekly" || row.String("title") != "Reading Club" {
		t.Errorf("partial update = %v", row)
	}

	rec = env.sendJSON(t, http.MethodGet, "/api/admin/programs/999", "")
	assertStatus(t, rec, http.StatusNotFound)
	if !strings.Contains(rec.Body.String(), "NF001") {
		t.Errorf("body = %s", rec.Body.String())
	}

	assertStatus(t, env.sendJSON(t, http.MethodDelete, "/api/admin/programs/1", ""), http.StatusNoContent)
	assertStatus(t, env.sendJSON(t, http.MethodDelete, "/api/admin/programs/1", ""), http.StatusNotFound)

	rec = env.sendJSON(t, http.MethodGet, "/api/admin/resources", "")
	assertStatus(t, rec, http.StatusOK)
	var resources []ResourceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resources); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resources) != len(core.All()) {
		t.Errorf("resources = %d, want %d", len(resources), len(core.All()))
	}

	assertStatus(t, env.sendJSON(t, http.MethodGet, "/api/admin/stats", ""), http.StatusOK)
}

func TestNewsletterBroadcast(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, email := range []string{"a@example.org", "b@example.org"} {
		if _, err := env.service.Subscribe(ctx, email, ""); err != nil {
			t.Fatalf("Subscribe: %v", err)
		}
	}

	assertStatus(t, env.get(t, "/admin/newsletter/compose", true), http.StatusOK)

	rec := env.postForm(t, "/admin/newsletter/compose", url.Values{"subject": {""}, "body": {"Hi"}}, true)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.postForm(t, "/admin/newsletter/compose", url.Values{
		"subject": {"Spring update"},
		"body":    {"Hello friends."},
	}, true)
	assertStatus(t, rec, http.StatusSeeOther)
	preview := rec.Header().Get("Location")
	if preview != "/admin/newsletter/preview/1" {
		t.Fatalf("Location = %q", preview)
	}

	rec = env.get(t, preview, true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "<strong>2</strong>") {
		t.Error("preview does not show the recipient count")
	}

	rec = env.postForm(t, "/admin/newsletter/send/1", nil, true)
	assertStatus(t, rec, http.StatusSeeOther)

	sent, err := env.service.Get(ctx, core.KeyBroadcasts, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sent.String("status") != core.BroadcastSent || sent.Int("recipient_count") != 2 {
		t.Errorf("sent broadcast = %v", sent)
	}

	assertStatus(t, env.postForm(t, "/admin/newsletter/send/1", nil, true), http.StatusConflict)
	assertStatus(t, env.get(t, preview, true), http.StatusConflict)
}

func TestRateLimitedForms(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Rate = config.RateLimitConfig{Enabled: true, FormsPerMinute: 2, LoginPerMinute: 1}
	})

	form := url.Values{"email": {"x@example.org"}}
	assertStatus(t, env.postForm(t, "/newsletter/subscribe", form, false), http.StatusOK)
	assertStatus(t, env.postForm(t, "/newsletter/subscribe", form, false), http.StatusOK)

	rec := env.postForm(t, "/newsletter/subscribe", form, false)
	assertStatus(t, rec, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, core.KeyPrograms, map[string]string{"title": "Reading Club", "category": "education"})
	env.mustCreate(t, core.KeyPrograms, map[string]string{"title": "Clinic Days", "category": "health"})

	rec := env.get(t, "/admin/programs/export.csv?filter%5Bcategory%5D=health", true)
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Clinic Days") || strings.Contains(body, "Reading Club") {
		t.Errorf("export body:\n%s", body)
	}

	rec = env.get(t, "/admin/audit-log/export.csv", true)
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Reading Club") {
		t.Error("audit export does not contain the create entries")
	}

	assertStatus(t, env.get(t, "/admin/nope/export.csv", true), http.StatusNotFound)
}
