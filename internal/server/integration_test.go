//go:build integration

package server_test

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appcfg "course-platform/internal/config"
	"course-platform/internal/database"
	"course-platform/internal/server"
)

// Запуск: TEST_DB_NAME=course_platform_test go test -tags integration ./internal/server/...
// Тесты используют отдельную БД, таблицы очищаются перед каждым тестом.

var integrationTables = []string{
	"email_jobs",
	"course_bans",
	"feedbacks",
	"registrations",
	"subchapters",
	"chapters",
	"course_categories",
	"courses",
	"categories",
	"email_verifications",
	"users",
}

func newPostgresApp(t *testing.T) *testApp {
	t.Helper()
	db := openPostgres(t)
	return newAppWith(t, server.PostgresRepositories(db.DB), db)
}

// openPostgres подключается к тестовой БД, применяет миграции и очищает таблицы.
func openPostgres(t *testing.T) *database.DB {
	t.Helper()

	rootDir, err := findProjectRoot()
	require.NoError(t, err)
	// .env лежит в корне проекта
	t.Chdir(rootDir)

	cfg, err := appcfg.Load()
	require.NoError(t, err)
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.Database.DBName = testDB
	}

	db, err := database.NewConnection(&cfg.Database, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	truncate := "TRUNCATE TABLE " + strings.Join(integrationTables, ", ") + " RESTART IDENTITY CASCADE"
	require.NoError(t, db.Exec(truncate).Error)
	return db
}

// findProjectRoot находит корень проекта по файлу go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func TestPostgres_RegisterVerifyLoginRefresh(t *testing.T) {
	app := newPostgresApp(t)

	rec := app.do(http.MethodGet, "/health/db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "itest1@example.com", "password": strongPassword, "username": "itest1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[tokenResponse](t, rec)

	rec = app.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "ITEST1@example.com", "password": strongPassword, "username": "itest2",
	})
	requireErrorCode(t, rec, http.StatusConflict, "email_already_exists")

	rec = app.do(http.MethodPost, "/api/v1/users/resend-verification", "", map[string]string{
		"email": "itest1@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	link, err := url.Parse(app.emails.lastLink(t))
	require.NoError(t, err)
	rec = app.do(http.MethodGet, link.RequestURI(), "", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "status=success")

	rec = app.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "itest1@example.com", "password": strongPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	logged := decode[tokenResponse](t, rec)
	require.Equal(t, registered.UserID, logged.UserID)
	require.True(t, logged.IsEmailVerified)

	rec = app.do(http.MethodPost, "/api/v1/users/refresh", "", map[string]string{
		"refreshToken": logged.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPostgres_ChaptersEnrollmentAndBan(t *testing.T) {
	app := newPostgresApp(t)
	admin, adminToken := app.createUser("admin", "Admin")
	student, studentToken := app.createUser("student", "User")
	c := app.createCourse(admin.ID, "Postgres internals")

	var ids []string
	for _, name := range []string{"Storage", "Indexes", "Planner"} {
		rec := app.do(http.MethodPost, "/api/v1/course-chapters", adminToken, map[string]any{
			"courseId": c.ID.String(), "name": name + " chapter", "estimatedLearningTimeMinutes": 45,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, decode[chapterResponse](t, rec).ID)
	}

	rec := app.do(http.MethodPut, "/api/v1/course-chapters/order", adminToken, map[string]any{
		"ids": []string{ids[2], ids[0]}, "numbers": []int{1, 3},
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/course-chapters/by-course/"+c.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	for _, ch := range decode[[]chapterResponse](t, rec) {
		names = append(names, strings.TrimSuffix(ch.Name, " chapter"))
	}
	require.Equal(t, []string{"Planner", "Indexes", "Storage"}, names)

	rec = app.do(http.MethodPost, "/api/v1/users/enroll/"+c.ID.String(), studentToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/v1/bans", adminToken, map[string]any{
		"userId": student.ID.String(), "courseId": c.ID.String(), "reason": "Cheating on tests",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/users/"+student.ID.String()+"/registrations", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 0, decode[page[map[string]any]](t, rec).TotalCount)

	rec = app.do(http.MethodPost, "/api/v1/users/enroll/"+c.ID.String(), studentToken, nil)
	requireErrorCode(t, rec, http.StatusConflict, "banned_from_course")
}

func TestPostgres_MigrateKeepsPoolOpen(t *testing.T) {
	db := openPostgres(t)

	// Повторный запуск ничего не применяет и возвращает соединение в пул
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.Zero(t, sqlDB.Stats().InUse)
	require.NoError(t, sqlDB.Ping())

	app := newAppWith(t, server.PostgresRepositories(db.DB), db)
	rec := app.do(http.MethodGet, "/health/db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
