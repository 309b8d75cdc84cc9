package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/database"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/routes"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/utils"
)

type testEnv struct {
	app          *fiber.App
	db           *gorm.DB
	cfg          *config.Config
	studentToken string
	tutorToken   string
	course       models.Course
	quiz         models.ModuleItem
	assignment   models.ModuleItem
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{DBDriver: "sqlite", DBName: ":memory:", JWTSecret: "test-secret"}
	db, err := database.InitDB(cfg)
	require.NoError(t, err)

	env := &testEnv{app: fiber.New(), db: db, cfg: cfg}
	routes.SetupRoutes(env.app, db, cfg, nil)

	student := models.User{Username: "student", Email: "student@example.test", Role: models.RoleStudent}
	tutor := models.User{Username: "tutor", Email: "tutor@example.test", Role: models.RoleTutor}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&tutor).Error)

	env.studentToken, err = utils.GenerateJWTToken(student.ID, cfg)
	require.NoError(t, err)
	env.tutorToken, err = utils.GenerateJWTToken(tutor.ID, cfg)
	require.NoError(t, err)

	env.course = models.Course{Title: "Logic 101"}
	require.NoError(t, db.Create(&env.course).Error)
	module := models.CourseModule{CourseID: env.course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&module).Error)

	metadata, err := json.Marshal(map[string]interface{}{
		"questions": []map[string]interface{}{
			{"prompt": "Capital of France?", "correctAnswer": "paris"},
			{"prompt": "The answer", "correctAnswer": 42},
		},
		"maxAttempts":  2,
		"passingGrade": 50,
	})
	require.NoError(t, err)
	env.quiz = models.ModuleItem{
		ModuleID: module.ID, CourseID: env.course.ID,
		Type: models.ItemTypeQuiz, Title: "Quiz", Metadata: metadata,
	}
	env.assignment = models.ModuleItem{
		ModuleID: module.ID, CourseID: env.course.ID,
		Type: models.ItemTypeAssignment, Title: "Essay",
	}
	require.NoError(t, db.Create(&env.quiz).Error)
	require.NoError(t, db.Create(&env.assignment).Error)

	require.NoError(t, db.Create(&models.Enrollment{StudentID: student.ID, CourseID: env.course.ID}).Error)
	return env
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out["data"].(map[string]interface{})
	return data
}

func quizPath(env *testEnv) string {
	return "/api/quizzes/" + uintString(env.quiz.ID)
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestRoutesRequireAuth(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "GET", quizPath(env), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, "POST", quizPath(env)+"/attempts", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFetchQuizStateSanitized(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "GET", quizPath(env), env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	questions := data["questions"].([]interface{})
	require.Len(t, questions, 2)
	for _, q := range questions {
		_, hasKey := q.(map[string]interface{})["correctAnswer"]
		assert.False(t, hasKey)
	}
	assert.Equal(t, float64(2), data["maxAttempts"])
	assert.Nil(t, data["submission"])
}

func TestSubmitQuizAttemptOverHTTP(t *testing.T) {
	env := setup(t)

	body := map[string]interface{}{
		"course_id": env.course.ID,
		"answers":   []interface{}{"Paris", "42"},
	}
	resp := env.request(t, "POST", quizPath(env)+"/attempts", env.studentToken, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, true, data["passed"])
	assert.Equal(t, float64(2), data["score"])
	assert.NotNil(t, data["results"])

	// second attempt on a passed quiz is a policy rejection
	resp = env.request(t, "POST", quizPath(env)+"/attempts", env.studentToken, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSubmitQuizValidation(t *testing.T) {
	env := setup(t)

	// missing answers
	resp := env.request(t, "POST", quizPath(env)+"/attempts", env.studentToken,
		map[string]interface{}{"course_id": env.course.ID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizAnalyticsRoleGate(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "GET", quizPath(env)+"/analytics", env.studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "GET", quizPath(env)+"/analytics", env.tutorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAssignmentFlowOverHTTP(t *testing.T) {
	env := setup(t)

	resp := env.request(t, "POST", "/api/items/"+uintString(env.assignment.ID)+"/submission",
		env.studentToken, map[string]interface{}{
			"course_id":   env.course.ID,
			"attachments": []string{"essay.pdf"},
			"comment":     "done",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	submissionID := data["ID"].(string)
	assert.Equal(t, "submitted", data["Status"])

	// students cannot grade
	gradeBody := map[string]interface{}{"points": 90, "feedback": "nice"}
	resp = env.request(t, "PUT", "/api/submissions/"+submissionID+"/grade", env.studentToken, gradeBody)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "PUT", "/api/submissions/"+submissionID+"/grade", env.tutorToken, gradeBody)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, "graded", data["Status"])
}

func TestProgressOverHTTP(t *testing.T) {
	env := setup(t)

	lesson := models.ModuleItem{
		ModuleID: env.quiz.ModuleID, CourseID: env.course.ID,
		Type: models.ItemTypeLesson, Title: "Reading",
	}
	require.NoError(t, env.db.Create(&lesson).Error)

	path := "/api/courses/" + uintString(env.course.ID) + "/progress"
	resp := env.request(t, "POST", path, env.studentToken, map[string]interface{}{
		"item_id":      lesson.ID,
		"is_completed": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "GET", path, env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0].(map[string]interface{})["is_completed"])
	// one of three items complete
	assert.Equal(t, float64(33), data["percent"])
}
