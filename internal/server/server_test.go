package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/config"
	"course-platform/internal/domain/course"
	domain "course-platform/internal/domain/user"
	"course-platform/internal/handler/health"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/internal/repository/memory"
	"course-platform/internal/server"
	courseuc "course-platform/internal/usecase/course"
	"course-platform/pkg/logger"
	"course-platform/pkg/password"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const strongPassword = "Str0ng!Pass"

// ==== Fakes ====

type fakeEmailSender struct {
	mu    sync.Mutex
	links []string
}

func (s *fakeEmailSender) SendVerificationEmail(_ context.Context, _, _, link string, _ time.Duration, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, link)
	return nil
}

func (s *fakeEmailSender) lastLink(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.links)
	return s.links[len(s.links)-1]
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://images.test/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

// ==== Test app ====

type testApp struct {
	t        *testing.T
	router   *gin.Engine
	users    repo.UserRepository
	services *server.Services
	emails   *fakeEmailSender
	images   *fakeStorage
}

func testConfig() *config.Config {
	return &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://front.test"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
		JWT: config.JWTConfig{
			AccessSecret:  "access-secret",
			RefreshSecret: "refresh-secret",
			Issuer:        "test",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
		},
		Email: config.EmailConfig{
			VerificationTTL:         24 * time.Hour,
			VerificationMaxAttempts: 5,
		},
		Roles:     config.RolesConfig{Admin: "Admin", User: "User"},
		Frontend:  config.FrontendConfig{BaseURL: "http://front.test", EmailVerifiedPath: "/email-verified"},
		PublicURL: "http://api.test",
		AppEnv:    "test",
	}
}

func memoryRepositories(m *memory.Repos) server.Repositories {
	return server.Repositories{
		Tx:            m.Tx,
		Users:         m.Users,
		Verifications: m.Verifications,
		Categories:    m.Categories,
		Courses:       m.Courses,
		Chapters:      m.Chapters,
		SubChapters:   m.SubChapters,
		Registrations: m.Registrations,
		Feedbacks:     m.Feedbacks,
		Bans:          m.Bans,
		Jobs:          m.Jobs,
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newAppWith(t, memoryRepositories(memory.New()), fakePinger{})
}

func newAppWith(t *testing.T, repos server.Repositories, db health.Pinger) *testApp {
	t.Helper()

	cfg := testConfig()
	emails := &fakeEmailSender{}
	images := &fakeStorage{objects: map[string][]byte{}}
	services := server.NewServices(cfg, repos, emails, images, logger.Nop())

	srv, err := server.NewServer(cfg, db, services, logger.Nop())
	require.NoError(t, err)

	return &testApp{
		t:        t,
		router:   srv.Router(),
		users:    repos.Users,
		services: services,
		emails:   emails,
		images:   images,
	}
}

// createUser сохраняет пользователя напрямую в репозиторий и выпускает access-токен.
func (a *testApp) createUser(username, role string) (*domain.User, string) {
	a.t.Helper()
	hash, err := password.Hash(strongPassword)
	require.NoError(a.t, err)
	u := domain.NewUser(username+"@example.com", hash, username, domain.Role(role))
	require.NoError(a.t, a.users.Create(context.Background(), u))
	token, err := a.services.JWT.GenerateAccessToken(u)
	require.NoError(a.t, err)
	return u, token
}

func (a *testApp) createCourse(creatorID uuid.UUID, name string) *course.Course {
	a.t.Helper()
	start := time.Now().UTC().Add(72 * time.Hour)
	c, err := a.services.Courses.Create(context.Background(), courseuc.Input{
		Name:        name,
		Description: "Course description",
		CreatorID:   creatorID,
		StartDate:   start,
		FinishDate:  start.Add(30 * 24 * time.Hour),
	})
	require.NoError(a.t, err)
	return c
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[errorResponse](t, rec)
	require.Equal(t, code, body.Error.Code)
	return body
}

type tokenResponse struct {
	UserID          string `json:"userId"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Tokens          struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"tokens"`
}

type chapterResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

type page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// ==== Tests ====

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/health/db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	srv, err := server.NewServer(testConfig(), fakePinger{err: errors.New("connection refused")}, app.services, logger.Nop())
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/db", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "connection refused")
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	app := newTestApp(t)

	weak := app.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "ann@example.com", "password": "password", "username": "ann",
	})
	body := requireErrorCode(t, weak, http.StatusBadRequest, "invalid_request")
	require.Contains(t, body.Error.Details, "password")

	rec := app.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "ann@example.com", "password": strongPassword, "username": "ann",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[tokenResponse](t, rec)
	require.False(t, registered.IsEmailVerified)
	require.NotEmpty(t, registered.Tokens.AccessToken)
	require.NotEmpty(t, registered.Tokens.RefreshToken)

	dup := app.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "ann@example.com", "password": strongPassword, "username": "ann2",
	})
	requireErrorCode(t, dup, http.StatusConflict, "email_already_exists")

	link, err := url.Parse(app.emails.lastLink(t))
	require.NoError(t, err)
	require.Equal(t, "api.test", link.Host)
	require.Equal(t, registered.UserID, link.Query().Get("userId"))

	rec = app.do(http.MethodGet, link.RequestURI(), "", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "http://front.test/email-verified?status=success", rec.Header().Get("Location"))

	rec = app.do(http.MethodGet, link.RequestURI(), "", nil)
	require.Equal(t, "http://front.test/email-verified?status=already_verified", rec.Header().Get("Location"))

	rec = app.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "ann@example.com", "password": "Wr0ng!Pass",
	})
	requireErrorCode(t, rec, http.StatusUnauthorized, "invalid_credentials")

	rec = app.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "ann@example.com", "password": strongPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[tokenResponse](t, rec).Tokens.AccessToken

	rec = app.do(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	require.Equal(t, true, me["isEmailVerified"])
	require.Equal(t, "User", me["role"])

	rec = app.do(http.MethodPut, "/api/v1/users/me", token, map[string]string{
		"oldPassword": "Wr0ng!Pass", "newPassword": "N3w!Password",
	})
	requireErrorCode(t, rec, http.StatusUnauthorized, "invalid_password")

	rec = app.do(http.MethodPut, "/api/v1/users/me", token, map[string]string{
		"phoneNumber": "+380 67 123 4567", "oldPassword": strongPassword, "newPassword": "N3w!Password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "+380 67 123 4567", decode[map[string]any](t, rec)["phoneNumber"])

	rec = app.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "ann@example.com", "password": "N3w!Password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyEmailRedirectsWithErrorStatus(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/users/verify-email?userId=not-a-uuid&token=x", "", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "http://front.test/email-verified?status=invalid", rec.Header().Get("Location"))

	rec = app.do(http.MethodGet, "/api/v1/users/verify-email?userId="+uuid.NewString()+"&token=x", "", nil)
	require.Equal(t, "http://front.test/email-verified?status=not_found", rec.Header().Get("Location"))
}

func TestAuthorization(t *testing.T) {
	app := newTestApp(t)
	_, userToken := app.createUser("user", "User")
	_, adminToken := app.createUser("admin", "Admin")

	rec := app.do(http.MethodGet, "/api/v1/courses", "", nil)
	requireErrorCode(t, rec, http.StatusUnauthorized, "missing_authorization_header")

	rec = app.do(http.MethodGet, "/api/v1/courses", "garbage", nil)
	requireErrorCode(t, rec, http.StatusUnauthorized, "invalid_token")

	rec = app.do(http.MethodPost, "/api/v1/categories", userToken, map[string]string{"name": "Technology"})
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")

	rec = app.do(http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Technology"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "technology"})
	requireErrorCode(t, rec, http.StatusConflict, "category_already_exists")

	rec = app.do(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = app.do(http.MethodGet, "/api/v1/categories/not-a-uuid", "", nil)
	requireErrorCode(t, rec, http.StatusBadRequest, "invalid_id")

	rec = app.do(http.MethodGet, "/api/v1/course-chapters", userToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")
}

func TestCourseCreateWithImage(t *testing.T) {
	app := newTestApp(t)
	admin, adminToken := app.createUser("admin", "Admin")

	rec := app.do(http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Science"})
	require.Equal(t, http.StatusCreated, rec.Code)
	categoryID := decode[map[string]any](t, rec)["id"].(string)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Physics basics"))
	require.NoError(t, w.WriteField("description", "Mechanics and optics"))
	require.NoError(t, w.WriteField("startDate", start.Format(time.RFC3339)))
	require.NoError(t, w.WriteField("finishDate", start.Add(30*24*time.Hour).Format(time.RFC3339)))
	require.NoError(t, w.WriteField("categoryIds", categoryID))
	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="cover.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	id := created["id"].(string)
	require.Equal(t, admin.ID.String(), created["creatorId"])
	require.Equal(t, "https://images.test/courses/"+id, created["imageUrl"])
	require.Len(t, created["categories"], 1)
	require.Equal(t, []byte("png-bytes"), app.images.objects["courses/"+id])

	rec = app.do(http.MethodGet, "/api/v1/courses/created-by/"+admin.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = app.do(http.MethodDelete, "/api/v1/courses/"+id, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotContains(t, app.images.objects, "courses/"+id)

	rec = app.do(http.MethodGet, "/api/v1/courses/"+id, adminToken, nil)
	requireErrorCode(t, rec, http.StatusNotFound, "course_not_found")
}

func TestChapterOrderingOverHTTP(t *testing.T) {
	app := newTestApp(t)
	admin, adminToken := app.createUser("admin", "Admin")
	c := app.createCourse(admin.ID, "Go in practice")

	var ids []string
	for i, name := range []string{"Basics", "Concurrency", "Testing"} {
		rec := app.do(http.MethodPost, "/api/v1/course-chapters", adminToken, map[string]any{
			"courseId": c.ID.String(), "name": name + " chapter", "estimatedLearningTimeMinutes": 30,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ch := decode[chapterResponse](t, rec)
		require.Equal(t, i+1, ch.Number)
		ids = append(ids, ch.ID)
	}

	listNames := func() []string {
		rec := app.do(http.MethodGet, "/api/v1/course-chapters/by-course/"+c.ID.String(), adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var names []string
		for i, ch := range decode[[]chapterResponse](t, rec) {
			require.Equal(t, i+1, ch.Number)
			names = append(names, strings.TrimSuffix(ch.Name, " chapter"))
		}
		return names
	}

	rec := app.do(http.MethodPut, "/api/v1/course-chapters/order", adminToken, map[string]any{
		"ids": []string{ids[0], ids[2]}, "numbers": []int{3, 1},
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Equal(t, []string{"Testing", "Concurrency", "Basics"}, listNames())

	rec = app.do(http.MethodPut, "/api/v1/course-chapters/order", adminToken, map[string]any{
		"ids": []string{ids[0], uuid.NewString()}, "numbers": []int{1, 3},
	})
	requireErrorCode(t, rec, http.StatusNotFound, "chapter_not_found")
	require.Equal(t, []string{"Testing", "Concurrency", "Basics"}, listNames())

	rec = app.do(http.MethodPut, "/api/v1/course-chapters/order", adminToken, map[string]any{
		"ids": []string{ids[0], ids[1]}, "numbers": []int{1},
	})
	requireErrorCode(t, rec, http.StatusBadRequest, "invalid_order")

	rec = app.do(http.MethodDelete, "/api/v1/course-chapters/"+ids[1], adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"Testing", "Basics"}, listNames())

	rec = app.do(http.MethodPost, "/api/v1/course-chapters", adminToken, map[string]any{
		"courseId": c.ID.String(), "name": "Basics chapter", "estimatedLearningTimeMinutes": 10,
	})
	requireErrorCode(t, rec, http.StatusConflict, "chapter_already_exists")
}

func TestEnrollBanAndFeedback(t *testing.T) {
	app := newTestApp(t)
	admin, adminToken := app.createUser("admin", "Admin")
	student, studentToken := app.createUser("student", "User")
	_, otherToken := app.createUser("other", "User")
	c := app.createCourse(admin.ID, "Databases 101")
	courseID := c.ID.String()

	rec := app.do(http.MethodPost, "/api/v1/feedbacks", studentToken, map[string]any{
		"courseId": courseID, "content": "Great course", "rating": 9,
	})
	requireErrorCode(t, rec, http.StatusConflict, "not_registered")

	rec = app.do(http.MethodPost, "/api/v1/users/enroll/"+courseID, studentToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/v1/users/enroll/"+courseID, studentToken, nil)
	requireErrorCode(t, rec, http.StatusConflict, "already_registered")

	rec = app.do(http.MethodPost, "/api/v1/feedbacks", studentToken, map[string]any{
		"courseId": courseID, "content": "Great course", "rating": 9,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	feedbackID := decode[map[string]any](t, rec)["id"].(string)

	rec = app.do(http.MethodGet, "/api/v1/feedbacks/"+feedbackID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Great course", decode[map[string]any](t, rec)["content"])

	rec = app.do(http.MethodGet, "/api/v1/feedbacks/"+feedbackID, studentToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")

	rec = app.do(http.MethodPost, "/api/v1/feedbacks", studentToken, map[string]any{
		"courseId": courseID, "content": "Second review", "rating": 2,
	})
	requireErrorCode(t, rec, http.StatusConflict, "feedback_already_exists")

	rec = app.do(http.MethodDelete, "/api/v1/feedbacks/"+feedbackID, otherToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")

	rec = app.do(http.MethodGet, "/api/v1/users/"+student.ID.String()+"/registrations", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decode[page[map[string]any]](t, rec).TotalCount)

	rec = app.do(http.MethodGet, "/api/v1/users/"+student.ID.String()+"/registrations", otherToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")

	rec = app.do(http.MethodPost, "/api/v1/bans", adminToken, map[string]any{
		"userId": student.ID.String(), "courseId": courseID, "reason": "Spam in comments",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/v1/bans", adminToken, map[string]any{
		"userId": student.ID.String(), "courseId": courseID, "reason": "Spam again",
	})
	requireErrorCode(t, rec, http.StatusConflict, "already_banned")

	rec = app.do(http.MethodGet, "/api/v1/users/"+student.ID.String()+"/registrations", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, decode[page[map[string]any]](t, rec).TotalCount)

	rec = app.do(http.MethodPost, "/api/v1/users/enroll/"+courseID, studentToken, nil)
	requireErrorCode(t, rec, http.StatusConflict, "banned_from_course")

	rec = app.do(http.MethodGet, "/api/v1/bans/by-user/"+student.ID.String()+"?page=1&pageSize=10", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bans := decode[page[map[string]any]](t, rec)
	require.EqualValues(t, 1, bans.TotalCount)
	require.Equal(t, 1, bans.Page)
	require.Equal(t, 10, bans.PageSize)
	require.Len(t, bans.Items, 1)

	rec = app.do(http.MethodDelete, "/api/v1/users/unregister/"+courseID, studentToken, nil)
	requireErrorCode(t, rec, http.StatusNotFound, "registration_not_found")

	rec = app.do(http.MethodDelete, "/api/v1/feedbacks/"+feedbackID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUsersListAndDelete(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.createUser("admin", "Admin")
	otherAdmin, _ := app.createUser("root", "Admin")
	alice, aliceToken := app.createUser("alice", "User")
	app.createUser("alina", "User")
	app.createUser("bob", "User")

	rec := app.do(http.MethodGet, "/api/v1/users?search=ali&pageSize=1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[page[map[string]any]](t, rec)
	require.EqualValues(t, 2, users.TotalCount)
	require.Equal(t, 1, users.PageSize)
	require.Len(t, users.Items, 1)

	rec = app.do(http.MethodGet, "/api/v1/users", aliceToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "forbidden")

	rec = app.do(http.MethodDelete, "/api/v1/users/"+otherAdmin.ID.String(), aliceToken, nil)
	requireErrorCode(t, rec, http.StatusUnauthorized, "unauthorized_access")

	rec = app.do(http.MethodDelete, "/api/v1/users/"+otherAdmin.ID.String(), adminToken, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "cannot_delete_admin")

	rec = app.do(http.MethodDelete, "/api/v1/users/"+alice.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/users/me", aliceToken, nil)
	requireErrorCode(t, rec, http.StatusNotFound, "user_not_found")
}
