package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimiddleware "github.com/bigkaa/mygov-admin/internal/api/middleware"
	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/listquery"
	"github.com/bigkaa/mygov-admin/internal/session"
	"github.com/bigkaa/mygov-admin/internal/ui/auth"
	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend — MyGov backend с записью полученных запросов.
type fakeBackend struct {
	t *testing.T

	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, bodies: map[string]string{}, handlers: map[string]http.HandlerFunc{}}
}

// on регистрирует ответ на "METHOD /path" (путь без префикса /api).
func (b *fakeBackend) on(route string, h http.HandlerFunc) {
	b.handlers[route] = h
}

func (b *fakeBackend) json(route string, status int, body any) {
	b.on(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + strings.TrimPrefix(r.URL.EscapedPath(), "/api")
	raw, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, route)
	b.bodies[route] = string(raw)
	h, ok := b.handlers[route]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	h(w, r)
}

func (b *fakeBackend) called(route string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.requests {
		if r == route {
			return true
		}
	}
	return false
}

// testApp — роутер панели поверх фейкового backend.
type testApp struct {
	router  http.Handler
	backend *fakeBackend
	sm      *auth.SessionManager
}

func newTestApp(t *testing.T, limiter *apimiddleware.RateLimiter) *testApp {
	t.Helper()

	backend := newFakeBackend(t)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := gateway.New(gateway.Options{
		BaseURL:       srv.URL,
		TokenProvider: session.TokenFromContext,
		OnUnauthorized: func(ctx context.Context) {
			session.ClearFromContext(ctx, session.ReasonUnauthorized)
		},
		Logger: testLogger(),
	})

	require.NoError(t, i18n.LoadFromEmbedFS(i18n.Init(testLogger()), testLogger()))

	sm, err := auth.NewSessionManager("handlers-test", false)
	require.NoError(t, err)
	ua := uimiddleware.NewUIAuth(sm, testLogger())

	cfg := ListConfig{DefaultPageSize: 10, PageSizes: listquery.PageSizes, Location: time.UTC}
	authH := NewAuthHandler(client, limiter, testLogger())
	docsH := NewDocumentsHandler(client, client.Origin(), cfg, testLogger())
	createH := NewDocumentCreateHandler(client, client.Origin(), time.UTC, testLogger())
	filesH := NewFilesHandler(client, client.Origin(), cfg, testLogger())
	usersH := NewUsersHandler(client, time.UTC, testLogger())

	r := chi.NewRouter()
	r.Use(i18n.Middleware())
	r.Use(ua.Session())
	r.Get("/", authH.HandleRoot)
	r.Get("/login", authH.HandleLoginPage)
	r.Post("/login", authH.HandleLogin)
	r.Post("/logout", authH.HandleLogout)
	r.Group(func(r chi.Router) {
		r.Use(ua.Guard(rbac.PanelRoles...))
		r.Get("/documents", docsH.HandleList)
		r.Get("/documents/create", createH.HandleForm)
		r.Post("/documents/create", createH.HandleCreate)
		r.Get("/files", filesH.HandleList)
	})
	r.Group(func(r chi.Router) {
		r.Use(ua.Guard(rbac.AdminUsersRoles...))
		r.Post("/documents/{id}/delete", docsH.HandleDelete)
		r.Get("/files/{name}/delete", filesH.HandleDeleteConfirm)
		r.Post("/files/{name}/delete", filesH.HandleDelete)
		r.Get("/admin/users", usersH.HandleList)
		r.Post("/admin/users", usersH.HandleCreate)
		r.Post("/admin/users/{id}", usersH.HandleUpdate)
	})

	return &testApp{router: r, backend: backend, sm: sm}
}

// cookiesFor возвращает cookies сессии пользователя.
func (a *testApp) cookiesFor(t *testing.T, p model.Profile) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	store := session.NewStore(a.sm.Storage(w, httptest.NewRequest(http.MethodGet, "/", nil)), 0)
	require.NoError(t, store.Set("token-"+p.Username, p))
	return w.Result().Cookies()
}

func (a *testApp) do(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// cookie ищет cookie ответа по имени.
func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var (
	superAdmin = model.Profile{ID: "1", Username: "root", Email: "root@mygov.uz", Role: rbac.RoleSuperAdmin}
	mygovAdmin = model.Profile{ID: "7", Username: "operator", Email: "op@mygov.uz", Role: rbac.RoleMyGovAdmin}
)

func TestHandleRoot(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/", nil, app.cookiesFor(t, superAdmin))
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/", nil, app.cookiesFor(t, mygovAdmin))
	assert.Equal(t, "/documents", w.Header().Get("Location"))
}

func TestLoginSuccess(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("POST /auth/login", http.StatusOK, map[string]any{
		"success": true,
		"token":   "tok-123",
		"user":    map[string]any{"id": 1, "username": "root", "email": "root@mygov.uz", "role": "super_admin"},
	})

	w := app.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"secret"}}, nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	for _, name := range []string{session.KeyToken, session.KeyRole, session.KeyProfile} {
		c := cookie(w, name)
		require.NotNil(t, c, "cookie %s", name)
		assert.True(t, c.HttpOnly)
	}
	assert.Contains(t, app.backend.bodies["POST /auth/login"], `"username":"root"`)
}

func TestLoginInvalidResponse(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("POST /auth/login", http.StatusOK, map[string]any{"success": true})

	w := app.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"secret"}}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Неверный формат ответа от сервера")
	assert.Nil(t, cookie(w, session.KeyToken), "сессия не должна создаваться")
}

func TestLoginRejectedKeepsSession(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("POST /auth/login", http.StatusUnauthorized, map[string]any{"message": "Неверный логин или пароль"})

	w := app.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {"bad"}}, app.cookiesFor(t, mygovAdmin))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Неверный логин или пароль")
	assert.Nil(t, cookie(w, session.KeyToken), "существующая сессия не трогается")
}

func TestLoginRateLimit(t *testing.T) {
	app := newTestApp(t, apimiddleware.NewRateLimiter(1, time.Minute))
	app.backend.json("POST /auth/login", http.StatusUnauthorized, map[string]any{"message": "Неверный логин или пароль"})

	form := url.Values{"username": {"root"}, "password": {"bad"}}
	app.do(http.MethodPost, "/login", form, nil)
	w := app.do(http.MethodPost, "/login", form, nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Слишком много попыток входа. Попробуйте позже.")
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, nil)
	w := app.do(http.MethodPost, "/logout", nil, app.cookiesFor(t, superAdmin))

	assert.Equal(t, "/login", w.Header().Get("Location"))
	c := cookie(w, session.KeyToken)
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)
}

func TestGuardBeforeBackend(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(http.MethodGet, "/admin/users", nil, app.cookiesFor(t, mygovAdmin))

	assert.Equal(t, "/documents", w.Header().Get("Location"))
	assert.False(t, app.backend.called("GET /admin/users"), "backend не должен вызываться до проверки роли")
}

func TestUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	routes := []struct {
		path    string
		backend string
	}{
		{"/documents", "GET /documents"},
		{"/files", "GET /files"},
		{"/admin/users", "GET /admin/users"},
	}

	for _, rt := range routes {
		t.Run(rt.path, func(t *testing.T) {
			app := newTestApp(t, nil)
			app.backend.json(rt.backend, http.StatusUnauthorized, map[string]any{"message": "Token expired"})

			w := app.do(http.MethodGet, rt.path, nil, app.cookiesFor(t, superAdmin))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			for _, name := range []string{session.KeyToken, session.KeyRole, session.KeyProfile} {
				c := cookie(w, name)
				require.NotNil(t, c, "cookie %s должна удаляться", name)
				assert.Less(t, c.MaxAge, 0)
			}
		})
	}
}

func TestDocumentListScopedToOwner(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("GET /documents", http.StatusOK, []map[string]any{
		{"id": 1, "doc_number": "DOC-OWN", "patient_name": "Иванов", "created_at": "2025-01-10T10:00:00Z", "creator_id": 7},
		{"id": 2, "doc_number": "DOC-FOREIGN", "patient_name": "Петров", "created_at": "2025-01-11T10:00:00Z", "creator_id": 8},
		{"id": 3, "doc_number": "DOC-BY-NAME", "patient_name": "Сидоров", "created_at": "2025-01-12T10:00:00Z", "creator_username": "operator"},
	})

	w := app.do(http.MethodGet, "/documents", nil, app.cookiesFor(t, mygovAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "DOC-OWN")
	assert.Contains(t, body, "DOC-BY-NAME")
	assert.NotContains(t, body, "DOC-FOREIGN")
	assert.NotContains(t, body, "sort=patient_name", "сортировка по ФИО недоступна mygov_admin")
	assert.NotContains(t, body, "/delete", "удаление недоступно mygov_admin")
	assert.NotContains(t, body, "Создатель", "колонка создателя только для super_admin")
	assert.Contains(t, body, "/api/documents/1/download")
}

func TestDocumentListSuperAdmin(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("GET /documents", http.StatusOK, map[string]any{"documents": []map[string]any{
		{"id": 1, "doc_number": "DOC-A", "patient_name": "Жуков", "created_at": "2025-01-10T10:00:00Z", "creator_id": 7},
		{"id": 2, "doc_number": "DOC-B", "patient_name": "Ёлкин", "created_at": "2025-01-11T10:00:00Z", "creator_id": 8},
	}})

	w := app.do(http.MethodGet, "/documents?sort=patient_name&order=asc", nil, app.cookiesFor(t, superAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "DOC-B"), strings.Index(body, "DOC-A"), "Ёлкин раньше Жукова")
	assert.Contains(t, body, "/documents/1/delete")
	assert.Contains(t, body, "Создатель")
}

func TestDocumentListCreatorColumn(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("GET /documents", http.StatusOK, []map[string]any{
		{"id": 1, "doc_number": "DOC-U", "created_at": "2025-01-10T10:00:00Z", "creator_username": "operator", "creator_email": "op@mygov.uz"},
		{"id": 2, "doc_number": "DOC-E", "created_at": "2025-01-11T10:00:00Z", "creator_email": "second@mygov.uz"},
	})

	w := app.do(http.MethodGet, "/documents", nil, app.cookiesFor(t, superAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<td>operator</td>")
	assert.NotContains(t, body, "<td>op@mygov.uz</td>", "email только при пустом username")
	assert.Contains(t, body, "<td>second@mygov.uz</td>")
}

func TestCreatorLabel(t *testing.T) {
	tests := []struct {
		name string
		doc  model.Document
		want string
	}{
		{"username", model.Document{CreatorUsername: "operator", CreatorEmail: "op@mygov.uz"}, "operator"},
		{"email", model.Document{CreatorEmail: "op@mygov.uz"}, "op@mygov.uz"},
		{"пусто", model.Document{}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creatorLabel(tt.doc))
		})
	}
}

func TestDocumentDelete(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.on("DELETE /documents/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := app.do(http.MethodPost, "/documents/5/delete", url.Values{"return": {"q=abc&page=2"}}, app.cookiesFor(t, superAdmin))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/documents?q=abc&page=2", w.Header().Get("Location"))
	assert.True(t, app.backend.called("DELETE /documents/5"))
	assert.NotNil(t, cookie(w, "flash"))
}

func TestDocumentDeleteForbiddenForMyGovAdmin(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(http.MethodPost, "/documents/5/delete", url.Values{}, app.cookiesFor(t, mygovAdmin))

	assert.Equal(t, "/documents", w.Header().Get("Location"))
	assert.False(t, app.backend.called("DELETE /documents/5"))
}

func TestDocumentCreate(t *testing.T) {
	form := url.Values{
		"patient_name":    {"ИВАНОВ ИВАН"},
		"gender":          {"Erkak"},
		"age":             {"25 yosh"},
		"diagnosis":       {"ОРВИ"},
		"organization":    {"Поликлиника №4"},
		"doctor_name":     {"Петров П.П."},
		"doctor_position": {"Терапевт"},
	}

	t.Run("успех", func(t *testing.T) {
		app := newTestApp(t, nil)
		app.backend.json("POST /documents/generate", http.StatusOK, map[string]any{
			"success":      true,
			"doc_number":   "01-2025-000123",
			"pin_code":     "4821",
			"download_url": "/api/documents/9/download",
			"document_id":  9,
		})

		w := app.do(http.MethodPost, "/documents/create", form, app.cookiesFor(t, mygovAdmin))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "01-2025-000123")
		assert.Contains(t, body, "4821")
		assert.Contains(t, body, "data:image/png;base64,")
		assert.NotContains(t, body, "/api/api/")
		assert.Contains(t, app.backend.bodies["POST /documents/generate"], `"issue_date":"`)
	})

	t.Run("ошибка базы данных", func(t *testing.T) {
		app := newTestApp(t, nil)
		app.backend.json("POST /documents/generate", http.StatusInternalServerError, map[string]any{"message": "Database connection lost"})

		w := app.do(http.MethodPost, "/documents/create", form, app.cookiesFor(t, mygovAdmin))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), gateway.MsgDatabase)
	})

	t.Run("обязательные поля", func(t *testing.T) {
		app := newTestApp(t, nil)
		w := app.do(http.MethodPost, "/documents/create", url.Values{"patient_name": {"X"}}, app.cookiesFor(t, mygovAdmin))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, app.backend.called("POST /documents/generate"))
	})
}

func TestFilesListStats(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("GET /files", http.StatusOK, map[string]any{
		"success": true,
		"files": []map[string]any{
			{"name": "a.pdf", "size": 1024, "created_at": "2025-01-01T00:00:00Z"},
			{"name": "b.PDF", "size": 1024, "created_at": "2025-01-02T00:00:00Z"},
			{"name": "c.docx", "size": 1024, "created_at": "2025-01-03T00:00:00Z"},
		},
	})

	w := app.do(http.MethodGet, "/files?type=pdf", nil, app.cookiesFor(t, superAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "a.pdf")
	assert.Contains(t, body, "b.PDF")
	assert.NotContains(t, body, "c.docx")
	assert.Contains(t, body, "2 KB")
}

func TestFileDelete(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.on("DELETE /files/delete/report%20final.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := app.do(http.MethodPost, "/files/report%20final.pdf/delete", url.Values{}, app.cookiesFor(t, superAdmin))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/files", w.Header().Get("Location"))
	assert.True(t, app.backend.called("DELETE /files/delete/report%20final.pdf"))
	assert.NotNil(t, cookie(w, "flash"))
}

func TestFileDeleteForbiddenForMyGovAdmin(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("GET /files", http.StatusOK, map[string]any{
		"success": true,
		"files":   []map[string]any{{"name": "a.pdf", "size": 10, "created_at": "2025-01-01T00:00:00Z"}},
	})
	cookies := app.cookiesFor(t, mygovAdmin)

	w := app.do(http.MethodGet, "/files", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a.pdf")
	assert.NotContains(t, w.Body.String(), "/delete", "ссылка удаления недоступна mygov_admin")

	w = app.do(http.MethodGet, "/files/a.pdf/delete", nil, cookies)
	assert.Equal(t, "/documents", w.Header().Get("Location"))

	w = app.do(http.MethodPost, "/files/a.pdf/delete", url.Values{}, cookies)
	assert.Equal(t, "/documents", w.Header().Get("Location"))
	assert.False(t, app.backend.called("DELETE /files/delete/a.pdf"))
}

func TestFileDeleteMessagesLocalized(t *testing.T) {
	app := newTestApp(t, nil)
	cookies := app.cookiesFor(t, superAdmin)

	w := app.do(http.MethodGet, "/files/a.pdf/delete", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Вы уверены, что хотите удалить файл")

	en := append([]*http.Cookie{{Name: i18n.LangCookieName, Value: "en"}}, cookies...)
	w = app.do(http.MethodGet, "/files/a.pdf/delete", nil, en)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure you want to delete the file")
	assert.NotContains(t, w.Body.String(), "Вы уверены")

	app.backend.json("DELETE /files/delete/a.pdf", http.StatusNotFound, map[string]any{"message": "file missing"})
	app.backend.json("GET /files", http.StatusOK, map[string]any{"success": true, "files": []map[string]any{}})

	w = app.do(http.MethodPost, "/files/a.pdf/delete", url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	flash := cookie(w, "flash")
	require.NotNil(t, flash)

	w = app.do(http.MethodGet, "/files", nil, append(cookies, flash))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ошибка удаления файла: ")
}

func TestUsersCreateAndUpdate(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.on("POST /admin/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	app.backend.on("PUT /admin/users/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	cookies := app.cookiesFor(t, superAdmin)

	w := app.do(http.MethodPost, "/admin/users", url.Values{
		"username": {"newop"}, "email": {"newop@mygov.uz"}, "password": {"p@ss"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, app.backend.bodies["POST /admin/users"], `"role":"mygov_admin"`)

	w = app.do(http.MethodPost, "/admin/users/3", url.Values{
		"username": {"newop"}, "email": {"newop@mygov.uz"}, "password": {""}, "role": {"admin"},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, app.backend.bodies["PUT /admin/users/3"], "password")
}

func TestUsersCreateBackendError(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.json("POST /admin/users", http.StatusConflict, map[string]any{"message": "Пользователь уже существует"})

	w := app.do(http.MethodPost, "/admin/users", url.Values{
		"username": {"root"}, "email": {"root@mygov.uz"}, "password": {"x"},
	}, app.cookiesFor(t, superAdmin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Пользователь уже существует")
}

func TestUsersValidationLocalized(t *testing.T) {
	app := newTestApp(t, nil)
	cookies := app.cookiesFor(t, superAdmin)
	form := url.Values{"username": {"newop"}, "password": {"x"}}

	w := app.do(http.MethodPost, "/admin/users", form, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заполните имя пользователя и email")

	en := append([]*http.Cookie{{Name: i18n.LangCookieName, Value: "en"}}, cookies...)
	w = app.do(http.MethodPost, "/admin/users", form, en)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Fill in username and email")
	assert.False(t, app.backend.called("POST /admin/users"))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{1, 1, []int{1}},
		{1, 10, []int{1, 2, 3, 4, 5, 6, 7}},
		{10, 10, []int{4, 5, 6, 7, 8, 9, 10}},
		{5, 10, []int{2, 3, 4, 5, 6, 7, 8}},
		{2, 3, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageWindow(tt.page, tt.total), "page=%d total=%d", tt.page, tt.total)
	}
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "q=abc&page=2", safeReturn("?q=abc&page=2"))
	assert.Equal(t, "", safeReturn("//evil.example/x"))
	assert.Equal(t, "", safeReturn("https://evil.example"))
}
