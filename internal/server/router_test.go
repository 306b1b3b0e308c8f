package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"hours-tracker/internal/config"
	"hours-tracker/internal/handlers"
	"hours-tracker/internal/models"
	"hours-tracker/internal/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// browser хранит cookie сессии между запросами
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login(username string) {
	b.t.Helper()
	w := b.post("/login", url.Values{"username": {username}, "password": {testhelpers.Password}})
	require.Equal(b.t, http.StatusFound, w.Code, w.Body.String())
}

type fixture struct {
	db      *gorm.DB
	router  *gin.Engine
	emp     *models.User
	client  *models.Client
	project *models.Project
}

func setup(t *testing.T) fixture {
	gin.SetMode(gin.TestMode)
	db := testhelpers.NewSQLiteDB(t)

	prevNow := handlers.Now
	handlers.Now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { handlers.Now = prevNow })

	testhelpers.Staff(t, db, "admin")
	emp := testhelpers.Employee(t, db, "PEREZJ")
	client := testhelpers.Client(t, db, "Acme", "ABC010203XY1")
	project := testhelpers.Project(t, db, client, "Portal",
		testhelpers.Date(2024, 1, 1), testhelpers.Date(2024, 12, 31), models.StatusActive)
	testhelpers.Assign(t, db, emp, project)

	cfg := &config.Config{
		ServiceName:    "hours-tracker-test",
		Env:            "test",
		SessionSecret:  "test-secret-test-secret-test-sec",
		MetricsEnabled: true,
	}
	return fixture{db: db, router: NewRouter(cfg), emp: emp, client: client, project: project}
}

func (f fixture) browser(t *testing.T) *browser {
	return &browser{t: t, router: f.router, cookies: map[string]*http.Cookie{}}
}

func TestHealthAndMetrics(t *testing.T) {
	f := setup(t)
	b := f.browser(t)

	w := b.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = b.get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestLoginRedirectsByRole(t *testing.T) {
	f := setup(t)

	anon := f.browser(t)
	w := anon.get("/projects")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = anon.post("/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Usuario o contraseña incorrectos.")

	staff := f.browser(t)
	w = staff.post("/login", url.Values{"username": {"admin"}, "password": {testhelpers.Password}})
	assert.Equal(t, "/admin-home", w.Header().Get("Location"))

	emp := f.browser(t)
	w = emp.post("/login", url.Values{"username": {"PEREZJ"}, "password": {testhelpers.Password}})
	assert.Equal(t, "/employee-home", w.Header().Get("Location"))

	// чужая роль уходит на свой стартовый экран
	w = emp.get("/projects")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/employee-home", w.Header().Get("Location"))

	w = staff.get("/hours/new")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin-home", w.Header().Get("Location"))

	w = emp.get("/")
	assert.Equal(t, "/employee-home", w.Header().Get("Location"))

	w = emp.get("/logout")
	assert.Equal(t, "/login", w.Header().Get("Location"))
	w = emp.get("/hours/mine")
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestStaffPagesRender(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("admin")

	id := strconv.FormatUint(uint64(f.project.ID), 10)
	clientID := strconv.FormatUint(uint64(f.client.ID), 10)
	empID := strconv.FormatUint(uint64(f.emp.ID), 10)

	pages := []string{
		"/admin-home",
		"/projects",
		"/projects?status=ACT&client_id=" + clientID,
		"/projects/new",
		"/projects/" + id + "/edit",
		"/projects/" + id + "/history",
		"/clients",
		"/clients/new",
		"/clients/" + clientID,
		"/clients/" + clientID + "/edit",
		"/employees",
		"/employees/new",
		"/employees/" + empID + "/edit",
		"/employees/" + empID + "/assign",
		"/admin/hours?employee=" + empID,
		"/admin/activity",
		"/reports?from=2024-01-01&to=2024-12-31",
		"/password",
	}
	for _, p := range pages {
		t.Run(p, func(t *testing.T) {
			w := b.get(p)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}

	assert.Equal(t, http.StatusNotFound, b.get("/clients/9999").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/projects/abc/edit").Code)
}

func TestEmployeePagesRender(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("PEREZJ")

	for _, p := range []string{"/employee-home", "/hours/new", "/hours/mine", "/password"} {
		w := b.get(p)
		assert.Equal(t, http.StatusOK, w.Code, p)
	}
}

func TestClientFormRejectsDuplicateTaxID(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("admin")

	w := b.post("/clients/new", url.Values{
		"name":   {"Acme 2"},
		"tax_id": {"abc-010203-xy1"},
		"phone":  {"123"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "value=\"Acme 2\"")
	assert.Contains(t, body, "RFC")

	w = b.post("/clients/new", url.Values{
		"name":   {"Globex"},
		"tax_id": {"glo010203ab2"},
		"email":  {"info@globex.com"},
		"phone":  {"5512345678"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	var client models.Client
	require.NoError(t, f.db.Where("tax_id = ?", "GLO010203AB2").First(&client).Error)
	assert.Equal(t, "/clients/"+strconv.FormatUint(uint64(client.ID), 10), w.Header().Get("Location"))

	// flash показывается один раз
	w = b.get(w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Cliente guardado: Globex")
}

func TestProjectFormEndBeforeStart(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("admin")

	w := b.post("/projects/new", url.Values{
		"name":       {"Intranet"},
		"client_id":  {strconv.FormatUint(uint64(f.client.ID), 10)},
		"start_date": {"2024-05-01"},
		"end_date":   {"2024-04-01"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, f.db.Model(&models.Project{}).Where("name = ?", "Intranet").Count(&count).Error)
	assert.Zero(t, count)
}

func TestHoursFlow(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("PEREZJ")
	projectID := strconv.FormatUint(uint64(f.project.ID), 10)

	w := b.post("/hours/new", url.Values{"project_id": {projectID}, "date": {"2024-07-02"}, "hours": {"8"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No puedes registrar horas en fechas futuras.")

	w = b.post("/hours/new", url.Values{"project_id": {projectID}, "date": {"2024-06-15"}, "hours": {"8"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/hours/mine", w.Header().Get("Location"))

	w = b.get("/hours/mine")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "15/06/2024")
}

func TestAssignAndWithdraw(t *testing.T) {
	f := setup(t)
	b := f.browser(t)
	b.login("admin")

	other := testhelpers.Project(t, f.db, f.client, "ERP", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	empPath := "/employees/" + strconv.FormatUint(uint64(f.emp.ID), 10) + "/assign"

	w := b.post(empPath, url.Values{"project_id": {strconv.FormatUint(uint64(other.ID), 10)}, "role": {"PM"}})
	assert.Equal(t, http.StatusFound, w.Code)

	// уже назначен
	w = b.post(empPath, url.Values{"project_id": {strconv.FormatUint(uint64(f.project.ID), 10)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "asignacion activa")

	var a models.Assignment
	require.NoError(t, f.db.Where("project_id = ? AND withdrawn_at IS NULL", other.ID).First(&a).Error)
	w = b.post("/assignments/"+strconv.FormatUint(uint64(a.ID), 10)+"/withdraw", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, empPath, w.Header().Get("Location"))

	require.NoError(t, f.db.First(&a, a.ID).Error)
	assert.False(t, a.IsActive())
}

func TestReportExport(t *testing.T) {
	f := setup(t)
	testhelpers.Entry(t, f.db, f.emp, f.project, testhelpers.Date(2024, 6, 1), "8")
	b := f.browser(t)
	b.login("admin")

	w := b.get("/reports?export=excel")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = b.get("/reports?export=pdf")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = b.get("/reports")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portal")
}
