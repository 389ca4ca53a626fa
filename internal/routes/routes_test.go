package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"hospital-gin/internal/database"
	"hospital-gin/internal/handlers"
	"hospital-gin/internal/services"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := database.OpenTest(t)
	require.NoError(t, database.SeedAdmin(context.Background(), db, "admin", "admin-pw", zerolog.Nop()))

	mgr := session.NewManager(session.NewGormStore(db), "test-secret", time.Hour)
	svc := services.New(db, mgr, zerolog.Nop())
	h := handlers.New(svc, mgr, zerolog.Nop(), false)

	srv := httptest.NewServer(New(h, mgr, zerolog.Nop(), Options{}))
	t.Cleanup(srv.Close)
	return srv
}

// browser keeps its own cookies and does not follow redirects.
type browser struct {
	t    *testing.T
	base string
	c    *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: srv.URL,
		c: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type result struct {
	status   int
	location string
	body     string
}

func (b *browser) do(req *http.Request) result {
	b.t.Helper()
	resp, err := b.c.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return result{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}

func (b *browser) get(path string) result {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) result {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postJSON(path string, payload interface{}) result {
	b.t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(b.t, err)
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(string(raw)))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) login(path, username, password string) result {
	b.t.Helper()
	return b.post(path, url.Values{"username": {username}, "password": {password}})
}

func decode(t *testing.T, r result, v interface{}) {
	t.Helper()
	require.Equal(t, http.StatusOK, r.status, r.body)
	require.NoError(t, json.Unmarshal([]byte(r.body), v))
}

func register(t *testing.T, srv *httptest.Server, username, fname string) *browser {
	t.Helper()
	b := newBrowser(t, srv)
	r := b.post("/patient/register", url.Values{
		"username": {username},
		"password": {"pw-" + username},
		"fname":    {fname},
		"lname":    {"Tester"},
		"age":      {"30"},
		"gender":   {"F"},
		"phone":    {"555-0000"},
	})
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	require.Equal(t, "/login", r.location)

	r = b.login("/login", username, "pw-"+username)
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	require.Equal(t, "/patient/dashboard", r.location)
	return b
}

type appointmentView struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

func TestPortalScenario(t *testing.T) {
	srv := newServer(t)

	admin := newBrowser(t, srv)
	r := admin.login("/login/admin", "admin", "admin-pw")
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/admin/dashboard", r.location)

	r = admin.post("/dept/add", url.Values{"dname": {"Cardiology"}, "desc": {"Heart"}})
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/dept/list", r.location)

	r = admin.post("/doctor/add", url.Values{
		"username": {"drsmith"},
		"password": {"doc-pw"},
		"fname":    {"John"},
		"lname":    {"Smith"},
		"spec":     {"Cardiologist"},
		"dept_id":  {"1"},
	})
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/doctor/list", r.location)

	var docs struct {
		Docs []struct {
			ID uint `json:"id"`
		} `json:"docs"`
	}
	decode(t, admin.get("/doctor/list?q=SMITH"), &docs)
	require.Len(t, docs.Docs, 1)
	docID := docs.Docs[0].ID

	alice := register(t, srv, "alice", "Alice")
	bob := register(t, srv, "bob", "Bob")

	slot := url.Values{"doc_id": {"1"}, "date": {"2025-03-01"}, "time": {"09:00"}}
	r = alice.post("/appointment/book", slot)
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/patient/appointments", r.location)

	r = bob.post("/appointment/book", slot)
	assert.Equal(t, http.StatusConflict, r.status)
	assert.JSONEq(t, `{"msg":"slot taken"}`, r.body)

	doctor := newBrowser(t, srv)
	r = doctor.login("/login/doctor", "drsmith", "doc-pw")
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/doctor/dashboard", r.location)

	var apps struct {
		Apps []appointmentView `json:"apps"`
	}
	decode(t, doctor.get("/doctor/appointments"), &apps)
	require.Len(t, apps.Apps, 1)
	appID := apps.Apps[0].ID

	r = doctor.postJSON("/treatment/add/"+itoa(appID), map[string]string{"diag": "Arrhythmia", "presc": "Rest"})
	require.Equal(t, http.StatusSeeOther, r.status, r.body)
	assert.Equal(t, "/doctor/appointments", r.location)

	var mine struct {
		Apps       []appointmentView `json:"apps"`
		Treatments []struct {
			AppointmentID uint   `json:"appointment_id"`
			Diag          string `json:"diag"`
		} `json:"treatments"`
	}
	decode(t, alice.get("/patient/appointments"), &mine)
	require.Len(t, mine.Apps, 1)
	assert.Equal(t, "Completed", mine.Apps[0].Status)
	require.Len(t, mine.Treatments, 1)
	assert.Equal(t, appID, mine.Treatments[0].AppointmentID)

	r = alice.get("/patient/appointments/cancel/" + itoa(appID))
	assert.Equal(t, http.StatusConflict, r.status)

	r = admin.get("/admin/blacklist/doctor/" + itoa(docID))
	require.Equal(t, http.StatusFound, r.status, r.body)
	assert.Equal(t, "/doctor/list", r.location)

	r = doctor.get("/doctor/dashboard")
	assert.Equal(t, http.StatusForbidden, r.status, "blacklisting revokes live sessions")

	r = doctor.login("/login/doctor", "drsmith", "doc-pw")
	assert.Equal(t, http.StatusForbidden, r.status)
	assert.JSONEq(t, `{"msg":"Account is blacklisted"}`, r.body)

	r = bob.post("/appointment/book", url.Values{"doc_id": {"1"}, "date": {"2025-03-02"}, "time": {"10:00"}})
	assert.Equal(t, http.StatusConflict, r.status)
	assert.JSONEq(t, `{"msg":"doctor unavailable"}`, r.body)
}

func TestRoleGate(t *testing.T) {
	srv := newServer(t)
	anon := newBrowser(t, srv)
	alice := register(t, srv, "alice", "Alice")

	for _, path := range []string{"/admin/dashboard", "/dept/list", "/doctor/dashboard", "/patient/dashboard"} {
		r := anon.get(path)
		assert.Equal(t, http.StatusForbidden, r.status, path)
		assert.Equal(t, "Forbidden", r.body, path)
	}

	r := alice.get("/admin/dashboard")
	assert.Equal(t, http.StatusForbidden, r.status)
	r = alice.get("/doctor/appointments")
	assert.Equal(t, http.StatusForbidden, r.status)
	r = alice.get("/patient/dashboard")
	assert.Equal(t, http.StatusOK, r.status, r.body)

	r = alice.get("/logout")
	assert.Equal(t, http.StatusFound, r.status)
	assert.Equal(t, "/login", r.location)
	r = alice.get("/patient/dashboard")
	assert.Equal(t, http.StatusForbidden, r.status)
}

func TestLogin(t *testing.T) {
	srv := newServer(t)
	b := newBrowser(t, srv)

	r := b.login("/login", "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.JSONEq(t, `{"msg":"Invalid Credentials"}`, r.body)

	r = b.login("/login/doctor", "admin", "admin-pw")
	assert.Equal(t, http.StatusUnauthorized, r.status, "role-specific login filters by role")

	r = b.login("/login", "admin", "admin-pw")
	assert.Equal(t, http.StatusSeeOther, r.status)
	assert.Equal(t, "/admin/dashboard", r.location)

	r = b.get("/")
	assert.Equal(t, http.StatusFound, r.status)
	assert.Equal(t, "/login", r.location)

	r = b.get("/healthz")
	assert.Equal(t, http.StatusOK, r.status)
}

func TestAdminErrors(t *testing.T) {
	srv := newServer(t)
	admin := newBrowser(t, srv)
	require.Equal(t, http.StatusSeeOther, admin.login("/login/admin", "admin", "admin-pw").status)

	r := admin.get("/dept/edit/99")
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "Not found", r.body)

	r = admin.get("/admin/blacklist/patient/99")
	assert.Equal(t, http.StatusNotFound, r.status)

	r = admin.get("/doctor/delete/abc")
	assert.Equal(t, http.StatusNotFound, r.status)

	r = admin.post("/dept/add", url.Values{"dname": {""}})
	assert.Equal(t, http.StatusBadRequest, r.status)

	require.Equal(t, http.StatusSeeOther, admin.post("/dept/add", url.Values{"dname": {"Neuro"}}).status)
	r = admin.post("/dept/add", url.Values{"dname": {"Neuro"}})
	assert.Equal(t, http.StatusConflict, r.status)

	var stats map[string]int64
	decode(t, admin.get("/admin/dashboard"), &stats)
	assert.Equal(t, int64(1), stats["total_depts"])
	assert.Equal(t, int64(0), stats["total_apps"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
