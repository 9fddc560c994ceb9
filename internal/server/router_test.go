package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"logichain-web/internal/access"
	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/config"
	"logichain-web/internal/metrics"
	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAPI answers like the LogiChain REST API and remembers the
// Authorization header of each call by path.
type fakeAPI struct {
	mu     sync.Mutex
	auth   map[string]string
	calls  []string
	status map[string]int
	srv    *httptest.Server
}

var users = map[string]struct {
	password string
	result   models.LoginResult
}{
	"carol@example.com": {"secret1", models.LoginResult{Token: "tok-customer", ID: 3, Username: "carol", Email: "carol@example.com", Role: models.RoleCustomer}},
	"adam@example.com":  {"secret1", models.LoginResult{Token: "tok-admin", ID: 1, Username: "adam", Email: "adam@example.com", Role: models.RoleAdmin}},
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{auth: map[string]string{}, status: map[string]int{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth[r.URL.Path] = r.Header.Get("Authorization")
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	forced := f.status[r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if forced != 0 {
		w.WriteHeader(forced)
		_, _ = io.WriteString(w, `{"success":false,"message":"Token expired"}`)
		return
	}

	if r.URL.Path == "/auth/login" {
		var cred models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&cred)
		u, ok := users[cred.Email]
		if !ok || u.password != cred.Password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"message":"Invalid credentials"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(apiclient.Envelope[models.LoginResult]{Success: true, Data: u.result})
		return
	}

	switch r.URL.Path {
	case "/profile":
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":3,"username":"carol","email":"carol@example.com","role":"CUSTOMER"}}`)
	case "/orders/customer/3":
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":9,"orderNumber":"ORD-9","orderStatus":"SHIPPED","totalAmount":42.5}]}`)
	default:
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}
}

func (f *fakeAPI) authFor(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth[path]
}

func (f *fakeAPI) called(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.auth[path]
	return ok
}

func (f *fakeAPI) fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = status
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret:         "0123456789abcdef0123456789abcdef",
		SessionCookieName:     "logichain_session",
		SessionMaxAge:         time.Hour,
		DenyMode:              access.DenyNotFound,
		AuthAttemptsPerMinute: 100,
	}
}

type browser struct {
	t      *testing.T
	api    *fakeAPI
	audit  *audit.Memory
	srv    *httptest.Server
	client *http.Client
}

// newBrowser serves the router over HTTP with the real cookie session and
// a client that keeps cookies but does not follow redirects.
func newBrowser(t *testing.T, tweak func(*config.Config)) *browser {
	t.Helper()
	cfg := testConfig()
	if tweak != nil {
		tweak(cfg)
	}
	api := newFakeAPI(t)
	client, err := apiclient.New(api.srv.URL, session.ContextTokens{})
	require.NoError(t, err)

	backend, err := session.NewCookieBackend([]byte(cfg.SessionSecret), session.CookieOptions{MaxAge: 3600})
	require.NoError(t, err)

	rec := &audit.Memory{}
	r, err := NewRouter(Deps{
		Config:  cfg,
		API:     client,
		Backend: backend,
		Audit:   rec,
		Metrics: metrics.New(prometheus.NewRegistry()),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:     t,
		api:   api,
		audit: rec,
		srv:   srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type page struct {
	status   int
	location string
	body     string
}

func (b *browser) do(req *http.Request) page {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.srv.URL+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login(email string) page {
	b.t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {"secret1"}})
}

func TestCustomerLoginReachesCustomerDashboard(t *testing.T) {
	b := newBrowser(t, nil)

	p := b.login("carol@example.com")
	require.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/dashboard", p.location)

	p = b.get("/dashboard")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "My Dashboard")
	assert.Contains(t, p.body, "Welcome back, carol!")
	assert.Contains(t, p.body, "ORD-9")
	assert.Equal(t, "Bearer tok-customer", b.api.authFor("/orders/customer/3"))

	rows := b.audit.Rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, audit.ActionLogin, rows[0].Action)
	assert.Equal(t, audit.OutcomeSuccess, rows[0].Outcome)
}

func TestCustomerCannotOpenAdminPage(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("carol@example.com")

	p := b.get("/users")
	require.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/not-found", p.location)
	assert.False(t, b.api.called("/users"), "the denied view never runs")

	p = b.get(p.location)
	assert.Equal(t, http.StatusNotFound, p.status)
	assert.Contains(t, p.body, "Page not found")
}

func TestLogoutThenProtectedPageGoesToLogin(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("carol@example.com")

	p := b.post("/logout", nil)
	require.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/login", p.location)

	p = b.get("/dashboard")
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/login", p.location)
}

func TestLogoutIgnoresGet(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("carol@example.com")

	p := b.get("/logout")
	assert.Equal(t, http.StatusNotFound, p.status)

	p = b.get("/dashboard")
	assert.Equal(t, http.StatusOK, p.status, "a plain link does not end the session")
}

func TestAnonymousProtectedPageGoesToLogin(t *testing.T) {
	b := newBrowser(t, nil)
	for _, path := range []string{"/dashboard", "/inventory", "/users", "/order/5", "/track/TRK-1"} {
		p := b.get(path)
		assert.Equal(t, http.StatusFound, p.status, path)
		assert.Equal(t, "/login", p.location, path)
	}
}

func TestPublicPagesRender(t *testing.T) {
	b := newBrowser(t, nil)
	for _, path := range []string{"/", "/login", "/register", "/forgot-password"} {
		p := b.get(path)
		assert.Equal(t, http.StatusOK, p.status, path)
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	b := newBrowser(t, nil)
	p := b.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, p.status)
	assert.Contains(t, p.body, "Page not found")
}

func TestFailedLoginShowsServerMessageAndStaysAnonymous(t *testing.T) {
	b := newBrowser(t, nil)

	p := b.post("/login", url.Values{"email": {"carol@example.com"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, p.status)
	assert.Contains(t, p.body, "Invalid credentials")

	p = b.get("/dashboard")
	assert.Equal(t, "/login", p.location)
}

func TestFailedLoginDropsPreviousSession(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("carol@example.com")

	b.post("/login", url.Values{"email": {"adam@example.com"}, "password": {"wrong-pass"}})

	p := b.get("/dashboard")
	assert.Equal(t, "/login", p.location)
}

func TestLoginValidationSkipsTheAPI(t *testing.T) {
	b := newBrowser(t, nil)

	p := b.post("/login", url.Values{"email": {"not-an-email"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusBadRequest, p.status)
	assert.Contains(t, p.body, "valid email")
	assert.False(t, b.api.called("/auth/login"))
}

func TestForbiddenDenyMode(t *testing.T) {
	b := newBrowser(t, func(c *config.Config) { c.DenyMode = access.DenyForbidden })
	b.login("carol@example.com")

	p := b.get("/users")
	assert.Equal(t, http.StatusForbidden, p.status)
	assert.Contains(t, p.body, "Access denied")
}

func TestAdminReachesAdminPages(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("adam@example.com")

	for _, path := range []string{"/dashboard", "/users", "/analytics", "/inventory-overview", "/logs", "/settings", "/orders", "/products"} {
		p := b.get(path)
		assert.Equal(t, http.StatusOK, p.status, path)
	}
	assert.Equal(t, "Bearer tok-admin", b.api.authFor("/users"))
}

func TestUnauthorizedKeepsSessionByDefault(t *testing.T) {
	b := newBrowser(t, nil)
	b.login("carol@example.com")
	b.api.fail("/orders/customer/3", http.StatusUnauthorized)

	p := b.get("/my-orders")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Token expired")

	p = b.get("/profile")
	assert.Equal(t, http.StatusOK, p.status)
}

func TestUnauthorizedClearsSessionWhenEnabled(t *testing.T) {
	b := newBrowser(t, func(c *config.Config) { c.ClearOnUnauthorized = true })
	b.login("carol@example.com")
	b.api.fail("/orders/customer/3", http.StatusUnauthorized)

	p := b.get("/my-orders")
	require.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/login", p.location)

	p = b.get("/profile")
	assert.Equal(t, "/login", p.location)

	var expired bool
	for _, r := range b.audit.Rows() {
		expired = expired || r.Action == audit.ActionExpired
	}
	assert.True(t, expired)
}

func TestAuthPostsAreRateLimited(t *testing.T) {
	b := newBrowser(t, func(c *config.Config) { c.AuthAttemptsPerMinute = 2 })
	form := url.Values{"email": {"carol@example.com"}, "password": {"wrong-pass"}}

	assert.Equal(t, http.StatusUnauthorized, b.post("/login", form).status)
	assert.Equal(t, http.StatusUnauthorized, b.post("/login", form).status)
	assert.Equal(t, http.StatusTooManyRequests, b.post("/login", form).status)
}

func TestHealthAndMetrics(t *testing.T) {
	b := newBrowser(t, nil)
	b.get("/login")

	p := b.get("/health")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "ok", p.body)

	p = b.get("/metrics")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, `logichain_guard_decisions_total{decision="render",route="/login"} 1`)
}

func TestTamperedRoleFailsSafeOnDashboard(t *testing.T) {
	api := newFakeAPI(t)
	client, err := apiclient.New(api.srv.URL, session.ContextTokens{})
	require.NoError(t, err)

	store := session.NewMemoryStore()
	store.SetRaw("token", "tok-x")
	store.SetRaw("user", `{"id":5,"username":"mallory","role":"ROOT"}`)

	r, err := NewRouter(Deps{Config: testConfig(), API: client, Sessions: store.Provider()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code, "any-role pages still open for an unknown role")
}

func TestNewRouterNeedsSessions(t *testing.T) {
	api := newFakeAPI(t)
	client, err := apiclient.New(api.srv.URL, nil)
	require.NoError(t, err)

	_, err = NewRouter(Deps{Config: testConfig(), API: client})
	assert.Error(t, err)
}
