package courseController

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"
)

type jsonEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type enrollmentListData struct {
	Enrollments []models.Enrollment `json:"enrollments"`
	Pagination  struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"pagination"`
}

// setupEnrollmentApp mounts the handler twice: the normal route behind the
// pagination validator, and a bare route the way a caller without the
// validator middleware reaches it.
func setupEnrollmentApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "enrollment-test-key"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Payment{},
		&models.Enrollment{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/user/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), GetEnrollments)
	app.Get("/user/enrollments/all", middleware.JWTMiddleware, GetEnrollments)
	return app, db
}

func seedEnrolledStudent(t *testing.T, db *gorm.DB, courseCount int) models.User {
	t.Helper()

	student := models.User{Name: "asha", Email: "asha@example.com", Role: "STUDENT"}
	require.NoError(t, db.Create(&student).Error)

	for i := 0; i < courseCount; i++ {
		course := models.Course{
			Title:        fmt.Sprintf("Course %d", i+1),
			InstructorID: 42,
			Price:        10000,
			Status:       "ACTIVE",
		}
		require.NoError(t, db.Create(&course).Error)
		require.NoError(t, db.Create(&models.Enrollment{
			StudentID: student.ID,
			CourseID:  course.ID,
		}).Error)
	}
	return student
}

func fetchEnrollments(t *testing.T, app *fiber.App, path string, user models.User) (*http.Response, jsonEnvelope) {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope jsonEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func TestGetEnrollmentsPaginated(t *testing.T) {
	app, db := setupEnrollmentApp(t)
	student := seedEnrolledStudent(t, db, 3)

	resp, envelope := fetchEnrollments(t, app, "/user/enrollments?page=1&limit=2", student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, envelope.Status)

	var data enrollmentListData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	assert.Len(t, data.Enrollments, 2)
	assert.EqualValues(t, 3, data.Pagination.Total)
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, 2, data.Pagination.Limit)
	for _, enrollment := range data.Enrollments {
		assert.Equal(t, student.ID, enrollment.StudentID)
		assert.NotEmpty(t, enrollment.Course.Title)
	}
}

func TestGetEnrollmentsSecondPage(t *testing.T) {
	app, db := setupEnrollmentApp(t)
	student := seedEnrolledStudent(t, db, 3)

	resp, envelope := fetchEnrollments(t, app, "/user/enrollments?page=2&limit=2", student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data enrollmentListData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	assert.Len(t, data.Enrollments, 1)
	assert.EqualValues(t, 3, data.Pagination.Total)
	assert.Equal(t, 2, data.Pagination.Page)
}

func TestGetEnrollmentsRejectsMissingPagination(t *testing.T) {
	app, db := setupEnrollmentApp(t)
	student := seedEnrolledStudent(t, db, 1)

	resp, envelope := fetchEnrollments(t, app, "/user/enrollments", student)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, envelope.Status)
}

func TestGetEnrollmentsWithoutValidatorReturnsAll(t *testing.T) {
	app, db := setupEnrollmentApp(t)
	student := seedEnrolledStudent(t, db, 3)

	resp, envelope := fetchEnrollments(t, app, "/user/enrollments/all", student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, envelope.Status)

	var data enrollmentListData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	assert.Len(t, data.Enrollments, 3)
	assert.EqualValues(t, 3, data.Pagination.Total)
	assert.Equal(t, 3, data.Pagination.Limit)
}

func TestGetEnrollmentsRequiresAuth(t *testing.T) {
	app, _ := setupEnrollmentApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/user/enrollments", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetEnrollmentsOnlyReturnsOwnRows(t *testing.T) {
	app, db := setupEnrollmentApp(t)
	student := seedEnrolledStudent(t, db, 2)

	other := models.User{Name: "ravi", Email: "ravi@example.com", Role: "STUDENT"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Enrollment{StudentID: other.ID, CourseID: 1}).Error)

	resp, envelope := fetchEnrollments(t, app, "/user/enrollments?page=1&limit=10", student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data enrollmentListData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	assert.Len(t, data.Enrollments, 2)
	for _, enrollment := range data.Enrollments {
		assert.Equal(t, student.ID, enrollment.StudentID)
	}
}
