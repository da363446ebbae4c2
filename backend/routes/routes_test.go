package routes

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"examprep/backend/cache"
	"examprep/backend/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.send(t, fiber.MethodGet, "/health", "", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.Status)
	assert.Equal(t, "ok", resp.JSON(t)["status"])

	resp = h.send(t, fiber.MethodGet, "/api/nowhere", "", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
	assert.Contains(t, resp.JSON(t), "error")
}

func TestStudentAccountFlow(t *testing.T) {
	h := newHarness(t, nil)
	credentials := map[string]string{
		"name":        "Meera",
		"email":       "meera@example.com",
		"password":    "s3cret-pass",
		"phoneNumber": "9876543210",
		"dateOfBirth": "2001-04-12",
	}

	t.Run("Signup", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/student/signup", "", credentials)
		require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))

		body := resp.JSON(t)
		assert.Equal(t, "Student registered successfully", body["message"])
		assert.NotEmpty(t, body["token"])
		student := body["student"].(map[string]interface{})
		assert.Equal(t, "meera@example.com", student["email"])
		assert.NotContains(t, student, "password")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/student/signup", "", credentials)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		assert.Equal(t, "Email already registered", resp.JSON(t)["error"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/student/signup", "", map[string]string{"email": "x@example.com"})
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		details := resp.JSON(t)["details"].(map[string]interface{})
		assert.Equal(t, "required", details["name"])
		assert.Equal(t, "required", details["password"])
	})

	var token string
	t.Run("Signin", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/student/signin", "", map[string]string{
			"email": "meera@example.com", "password": "s3cret-pass",
		})
		require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))
		body := resp.JSON(t)
		assert.Equal(t, "Login successful", body["message"])
		token = body["token"].(string)
	})

	t.Run("SigninFailuresLookAlike", func(t *testing.T) {
		wrongPassword := h.json(t, fiber.MethodPost, "/api/student/signin", "", map[string]string{
			"email": "meera@example.com", "password": "nope",
		})
		unknownEmail := h.json(t, fiber.MethodPost, "/api/student/signin", "", map[string]string{
			"email": "ghost@example.com", "password": "s3cret-pass",
		})

		assert.Equal(t, fiber.StatusUnauthorized, wrongPassword.Status)
		assert.Equal(t, fiber.StatusUnauthorized, unknownEmail.Status)
		assert.JSONEq(t, string(wrongPassword.Body), string(unknownEmail.Body))
	})

	t.Run("Profile", func(t *testing.T) {
		resp := h.send(t, fiber.MethodGet, "/api/student/profile", token, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		student := resp.JSON(t)["student"].(map[string]interface{})
		assert.Equal(t, "Meera", student["name"])

		resp = h.send(t, fiber.MethodGet, "/api/student/profile", "", nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.Status)

		resp = h.send(t, fiber.MethodGet, "/api/teacher/profile", token, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
	})
}

func TestPrelimsExamOwnership(t *testing.T) {
	h := newHarness(t, nil)
	_, teacherA := h.signup(t, "teacher", "Anil", "anil@example.com")
	_, teacherB := h.signup(t, "teacher", "Bina", "bina@example.com")

	examID := h.createPrelimsExam(t, teacherA, "RAS Prelims Mock 1", "Free")
	h.createPrelimsExam(t, teacherA, "RAS Prelims Premium", "Paid")

	t.Run("OwnerCanView", func(t *testing.T) {
		resp := h.send(t, fiber.MethodGet, "/api/exam/prelims/"+examID, teacherA, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		exam := resp.JSON(t)["exam"].(map[string]interface{})
		assert.Equal(t, "Prelims", exam["category"])
		assert.NotNil(t, exam["prelimsAnswerKey"])
	})

	t.Run("OtherTeacherForbidden", func(t *testing.T) {
		resp := h.send(t, fiber.MethodGet, "/api/exam/prelims/"+examID, teacherB, nil, "")
		assert.Equal(t, fiber.StatusForbidden, resp.Status)

		resp = h.send(t, fiber.MethodDelete, "/api/exam/prelims/"+examID, teacherB, nil, "")
		assert.Equal(t, fiber.StatusForbidden, resp.Status)
	})

	t.Run("ListMine", func(t *testing.T) {
		var list struct {
			Exams []models.Exam `json:"exams"`
		}
		h.send(t, fiber.MethodGet, "/api/exam/prelims", teacherB, nil, "").Decode(t, &list)
		assert.Empty(t, list.Exams)

		h.send(t, fiber.MethodGet, "/api/exam/prelims", teacherA, nil, "").Decode(t, &list)
		require.Len(t, list.Exams, 2)
		for _, exam := range list.Exams {
			assert.NotNil(t, exam.PrelimsAnswerKey)
		}
	})

	t.Run("PublicListsSplitByType", func(t *testing.T) {
		var list struct {
			FreeExams []models.Exam `json:"freeExams"`
			PaidExams []models.Exam `json:"paidExams"`
		}
		resp := h.send(t, fiber.MethodGet, "/api/exam/prelims/free-and-paid-info", "", nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		resp.Decode(t, &list)

		require.Len(t, list.FreeExams, 1)
		require.Len(t, list.PaidExams, 1)
		assert.Equal(t, models.ExamTypeFree, list.FreeExams[0].Type)
		assert.Equal(t, models.ExamTypePaid, list.PaidExams[0].Type)
		assert.Nil(t, list.FreeExams[0].PrelimsAnswerKey, "answer key must stay private")
		assert.Nil(t, list.PaidExams[0].PrelimsAnswerKey, "answer key must stay private")

		resp = h.send(t, fiber.MethodGet, "/api/exam/prelims/free", "", nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		assert.NotContains(t, string(resp.Body), "prelimsAnswerKey")
	})

	t.Run("InvalidAnswerKey", func(t *testing.T) {
		payload := prelimsExamPayload("Broken", "Free")
		payload["answerKeyData"] = []map[string]interface{}{{"correctAnswerIndex": 5}}
		resp := h.json(t, fiber.MethodPost, "/api/exam/prelims", teacherA, payload)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		resp := h.send(t, fiber.MethodDelete, "/api/exam/prelims/"+examID, teacherA, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)

		resp = h.send(t, fiber.MethodGet, "/api/exam/prelims/"+examID, teacherA, nil, "")
		assert.Equal(t, fiber.StatusNotFound, resp.Status)
	})
}

func TestPrelimsAttemptsAndStreak(t *testing.T) {
	h := newHarness(t, nil)
	_, teacher := h.signup(t, "teacher", "Anil", "anil@example.com")
	_, student := h.signup(t, "student", "Ravi", "ravi@example.com")
	examID := h.createPrelimsExam(t, teacher, "Mock", "Free")

	t.Run("GradedSubmission", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/exam/prelims/attempt", student, map[string]interface{}{
			"examId":  examID,
			"answers": []interface{}{0, 0, 1, nil},
		})
		require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))

		attempt := resp.JSON(t)["attempt"].(map[string]interface{})
		assert.Equal(t, 50.0, attempt["score"])
		assert.InDelta(t, 66.67, attempt["accuracy"], 0.001)
		assert.Equal(t, 3.0, attempt["attempts"])
		assert.Len(t, resp.JSON(t)["answerKey"], 4)
	})

	t.Run("ExplicitSubmission", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/exam/prelims/attempt", student, map[string]interface{}{
			"examId": examID, "score": 80, "accuracy": 90, "attempts": 4,
		})
		require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))
		assert.NotContains(t, resp.JSON(t), "answerKey")

		resp = h.json(t, fiber.MethodPost, "/api/exam/prelims/attempt", student, map[string]interface{}{
			"examId": examID, "score": 80,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	})

	t.Run("UnknownExam", func(t *testing.T) {
		resp := h.json(t, fiber.MethodPost, "/api/exam/prelims/attempt", student, map[string]interface{}{
			"examId": "6f1c7c53-0d5c-4f7e-9d6b-3f0f5a0e9b11", "score": 1, "accuracy": 1, "attempts": 1,
		})
		assert.Equal(t, fiber.StatusNotFound, resp.Status)
	})

	t.Run("Scores", func(t *testing.T) {
		var list struct {
			Attempts []models.PrelimsAttempt `json:"attempts"`
		}
		h.send(t, fiber.MethodGet, "/api/exam/prelims/scores", student, nil, "").Decode(t, &list)
		require.Len(t, list.Attempts, 2)
		require.NotNil(t, list.Attempts[0].Exam)
		assert.Equal(t, "Mock", list.Attempts[0].Exam.Title)
	})

	streakCount := func(t *testing.T) float64 {
		t.Helper()
		resp := h.send(t, fiber.MethodGet, "/api/exam/streak", student, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		return resp.JSON(t)["streak"].(map[string]interface{})["streakCount"].(float64)
	}

	t.Run("StreakFollowsVisits", func(t *testing.T) {
		assert.Equal(t, 1.0, streakCount(t), "submissions count as a visit")

		h.clock.Advance(3 * time.Hour)
		h.send(t, fiber.MethodPost, "/api/exam/streak/update", student, nil, "")
		assert.Equal(t, 1.0, streakCount(t))

		h.clock.Advance(25 * time.Hour)
		h.send(t, fiber.MethodPost, "/api/exam/streak/update", student, nil, "")
		assert.Equal(t, 2.0, streakCount(t))

		h.clock.Advance(72 * time.Hour)
		h.send(t, fiber.MethodPost, "/api/exam/streak/update", student, nil, "")
		assert.Equal(t, 1.0, streakCount(t))
	})

	t.Run("NoStreakYet", func(t *testing.T) {
		_, fresh := h.signup(t, "student", "New", "new@example.com")
		resp := h.send(t, fiber.MethodGet, "/api/exam/streak", fresh, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		assert.JSONEq(t, `{"streak":{"streakCount":0}}`, string(resp.Body))
	})
}

func TestMainsExamAndEvaluation(t *testing.T) {
	h := newHarness(t, nil)
	_, teacherA := h.signup(t, "teacher", "Anil", "anil@example.com")
	_, teacherB := h.signup(t, "teacher", "Bina", "bina@example.com")
	_, student := h.signup(t, "student", "Ravi", "ravi@example.com")

	examID, fileURL := h.createMainsExam(t, teacherA, "RAS Mains GS-1")
	assert.Contains(t, fileURL, "/mains-exams/")

	countAttempts := func() int64 {
		var count int64
		require.NoError(t, h.db.Model(&models.MainsAttempt{}).Count(&count).Error)
		return count
	}

	t.Run("RejectsNonPDF", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/attempt", student, map[string]string{"examId": examID},
			&upload{Filename: "answers.txt", ContentType: "text/plain", Data: []byte("my answers")})
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		assert.Equal(t, "File upload error", resp.JSON(t)["error"])
		assert.Zero(t, countAttempts())
	})

	t.Run("RejectsOversizedPDF", func(t *testing.T) {
		data := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte{' '}, 10*1024*1024)...)
		resp := h.multipart(t, "/api/exam/mains/attempt", student, map[string]string{"examId": examID},
			&upload{Filename: "big.pdf", ContentType: "application/pdf", Data: data})
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		assert.Zero(t, countAttempts())
	})

	t.Run("RequiresFile", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/attempt", student, map[string]string{"examId": examID}, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
		assert.Equal(t, "No file uploaded", resp.JSON(t)["error"])
	})

	var attemptID, answerSheetURL string
	t.Run("Submit", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/attempt", student, map[string]string{"examId": examID},
			&upload{Filename: "answers.pdf", ContentType: "application/pdf", Data: samplePDF})
		require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))

		attempt := resp.JSON(t)["attempt"].(map[string]interface{})
		attemptID = attempt["id"].(string)
		answerSheetURL = attempt["answerSheetUrl"].(string)
		assert.Contains(t, answerSheetURL, "/mains-attempts/")
		assert.Equal(t, "", attempt["feedback"])
	})

	t.Run("Pending", func(t *testing.T) {
		var list struct {
			Attempts []models.MainsAttempt `json:"attempts"`
		}
		h.send(t, fiber.MethodGet, "/api/exam/mains/pending-attempts", teacherA, nil, "").Decode(t, &list)
		require.Len(t, list.Attempts, 1)
		require.NotNil(t, list.Attempts[0].Student)
		assert.Equal(t, "Ravi", list.Attempts[0].Student.Name)

		h.send(t, fiber.MethodGet, "/api/exam/mains/pending-attempts", teacherB, nil, "").Decode(t, &list)
		assert.Empty(t, list.Attempts)
	})

	t.Run("OtherTeacherCannotEvaluate", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/evaluate", teacherB, map[string]string{"attemptId": attemptID, "score": "10"}, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.Status)
	})

	t.Run("ScoreAboveTotalMarks", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/evaluate", teacherA, map[string]string{"attemptId": attemptID, "score": "251"}, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	})

	t.Run("EvaluateWithoutFile", func(t *testing.T) {
		uploadsBefore := h.uploader.Count()
		resp := h.multipart(t, "/api/exam/mains/evaluate", teacherA, map[string]string{"attemptId": attemptID, "score": "120"}, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))

		attempt := resp.JSON(t)["attempt"].(map[string]interface{})
		assert.Equal(t, answerSheetURL, attempt["answerSheetUrl"])
		assert.Equal(t, models.EvaluatedFeedback, attempt["feedback"])
		assert.Equal(t, 120.0, attempt["score"])
		assert.Equal(t, uploadsBefore, h.uploader.Count())
	})

	t.Run("EvaluateWithJSONBody", func(t *testing.T) {
		for _, score := range []interface{}{"10", 90} {
			resp := h.json(t, fiber.MethodPost, "/api/exam/mains/evaluate", teacherA, map[string]interface{}{
				"attemptId": attemptID, "score": score,
			})
			require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))

			attempt := resp.JSON(t)["attempt"].(map[string]interface{})
			assert.Equal(t, answerSheetURL, attempt["answerSheetUrl"])
			assert.Equal(t, models.EvaluatedFeedback, attempt["feedback"])
		}

		resp := h.json(t, fiber.MethodPost, "/api/exam/mains/evaluate", teacherA, map[string]interface{}{
			"attemptId": attemptID, "score": 12.5,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	})

	t.Run("EvaluateWithURLEncodedBody", func(t *testing.T) {
		form := url.Values{"attemptId": {attemptID}, "score": {"75"}, "feedback": {"Needs examples"}}
		resp := h.send(t, fiber.MethodPost, "/api/exam/mains/evaluate", teacherA,
			strings.NewReader(form.Encode()), fiber.MIMEApplicationForm)
		require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))

		attempt := resp.JSON(t)["attempt"].(map[string]interface{})
		assert.Equal(t, 75.0, attempt["score"])
		assert.Equal(t, "Needs examples", attempt["feedback"])
		assert.Equal(t, answerSheetURL, attempt["answerSheetUrl"])
	})

	t.Run("EvaluateWithFileAndFeedback", func(t *testing.T) {
		resp := h.multipart(t, "/api/exam/mains/evaluate", teacherA,
			map[string]string{"attemptId": attemptID, "score": "150", "feedback": "Good structure"},
			&upload{Filename: "marked.pdf", ContentType: "application/pdf", Data: samplePDF})
		require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))

		attempt := resp.JSON(t)["attempt"].(map[string]interface{})
		assert.Contains(t, attempt["answerSheetUrl"], "/mains-evaluations/")
		assert.Equal(t, "Good structure", attempt["feedback"])
	})

	t.Run("StudentSeesEvaluation", func(t *testing.T) {
		var list struct {
			Attempts []models.MainsAttempt `json:"attempts"`
		}
		h.send(t, fiber.MethodGet, "/api/exam/mains/attempts", student, nil, "").Decode(t, &list)
		require.Len(t, list.Attempts, 1)
		assert.Equal(t, 150, list.Attempts[0].Score)
		assert.False(t, list.Attempts[0].Pending())
	})

	t.Run("DeleteRemovesStoredFile", func(t *testing.T) {
		resp := h.send(t, fiber.MethodDelete, "/api/exam/mains/"+examID, teacherB, nil, "")
		assert.Equal(t, fiber.StatusForbidden, resp.Status)

		resp = h.send(t, fiber.MethodDelete, "/api/exam/mains/"+examID, teacherA, nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		assert.Contains(t, h.uploader.Deleted, fileURL)
		assert.Zero(t, countAttempts())
	})
}

func TestMainsCatalogIsCached(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := newHarness(t, cache.NewRedisCatalog(client, time.Minute))
	_, teacher := h.signup(t, "teacher", "Anil", "anil@example.com")

	freeMains := func() []models.Exam {
		var list struct {
			MainsExams []models.Exam `json:"mainsExams"`
		}
		resp := h.send(t, fiber.MethodGet, "/api/exam/mains/free", "", nil, "")
		require.Equal(t, fiber.StatusOK, resp.Status)
		resp.Decode(t, &list)
		return list.MainsExams
	}

	assert.Empty(t, freeMains())
	assert.True(t, server.Exists(cache.KeyMainsFree))

	h.createMainsExam(t, teacher, "GS-2")
	assert.False(t, server.Exists(cache.KeyMainsFree), "create drops the cached listing")
	assert.Len(t, freeMains(), 1)

	// rows written behind the API are not seen until the entry expires
	require.NoError(t, h.db.WithContext(context.Background()).Where("1 = 1").Delete(&models.Exam{}).Error)
	assert.Len(t, freeMains(), 1)
	server.FastForward(2 * time.Minute)
	assert.Empty(t, freeMains())
}

func TestTodos(t *testing.T) {
	h := newHarness(t, nil)
	_, owner := h.signup(t, "student", "Ravi", "ravi@example.com")
	_, other := h.signup(t, "student", "Sita", "sita@example.com")

	resp := h.json(t, fiber.MethodPost, "/api/student/todos/create", owner, map[string]string{
		"title": "Revise polity", "description": "Chapters 1-3",
	})
	require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))
	todoID := resp.JSON(t)["id"].(string)

	resp = h.json(t, fiber.MethodPost, "/api/student/todos/create", owner, map[string]string{"description": "no title"})
	assert.Equal(t, fiber.StatusBadRequest, resp.Status)

	var todos []models.Todo
	h.send(t, fiber.MethodGet, "/api/student/todos/get", owner, nil, "").Decode(t, &todos)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Completed)

	h.send(t, fiber.MethodGet, "/api/student/todos/get", other, nil, "").Decode(t, &todos)
	assert.Empty(t, todos)

	resp = h.json(t, fiber.MethodPut, "/api/student/todos/update/"+todoID, other, map[string]bool{"completed": true})
	assert.Equal(t, fiber.StatusForbidden, resp.Status)

	resp = h.json(t, fiber.MethodPut, "/api/student/todos/update/"+todoID, owner, map[string]bool{"completed": true})
	require.Equal(t, fiber.StatusOK, resp.Status)
	var todo models.Todo
	resp.Decode(t, &todo)
	assert.True(t, todo.Completed)
	assert.Equal(t, "Revise polity", todo.Title)

	resp = h.send(t, fiber.MethodDelete, "/api/student/todos/delete/"+todoID, other, nil, "")
	assert.Equal(t, fiber.StatusForbidden, resp.Status)

	resp = h.send(t, fiber.MethodDelete, "/api/student/todos/delete/"+todoID, owner, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.Status)

	resp = h.send(t, fiber.MethodDelete, "/api/student/todos/delete/"+todoID, owner, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
}

func TestSyllabus(t *testing.T) {
	h := newHarness(t, nil)
	teacherAID, teacherA := h.signup(t, "teacher", "Anil", "anil@example.com")
	teacherBID, teacherB := h.signup(t, "teacher", "Bina", "bina@example.com")

	resp := h.json(t, fiber.MethodPost, "/api/syllabus/create", teacherA, map[string]string{"title": "empty"})
	assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	assert.Equal(t, "Content is required", resp.JSON(t)["error"])

	resp = h.json(t, fiber.MethodPost, "/api/syllabus/create", teacherA, map[string]interface{}{
		"title":   "RAS Prelims",
		"content": map[string]interface{}{"units": []string{"History", "Geography"}},
	})
	require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))
	syllabus := resp.JSON(t)["syllabus"].(map[string]interface{})
	syllabusID := syllabus["id"].(string)
	assert.Equal(t, map[string]interface{}{"units": []interface{}{"History", "Geography"}}, syllabus["content"])

	resp = h.send(t, fiber.MethodGet, "/api/syllabus/get/"+syllabusID, teacherB, nil, "")
	assert.Equal(t, fiber.StatusOK, resp.Status)

	resp = h.send(t, fiber.MethodGet, "/api/syllabus/teacher/"+teacherBID, teacherA, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.Status)

	resp = h.send(t, fiber.MethodGet, "/api/syllabus/teacher/"+teacherAID, teacherB, nil, "")
	assert.Equal(t, fiber.StatusOK, resp.Status)

	resp = h.send(t, fiber.MethodGet, "/api/syllabus/all", teacherB, nil, "")
	require.Equal(t, fiber.StatusOK, resp.Status)
	assert.JSONEq(t, `{"syllabuses":[]}`, string(resp.Body))

	update := map[string]interface{}{"content": []string{"Economy"}}
	resp = h.json(t, fiber.MethodPut, "/api/syllabus/update/"+syllabusID, teacherB, update)
	assert.Equal(t, fiber.StatusForbidden, resp.Status)

	resp = h.json(t, fiber.MethodPost, "/api/syllabus/update/"+syllabusID, teacherA, update)
	require.Equal(t, fiber.StatusOK, resp.Status, string(resp.Body))
	updated := resp.JSON(t)["syllabus"].(map[string]interface{})
	assert.Equal(t, "RAS Prelims", updated["title"])
	assert.Equal(t, []interface{}{"Economy"}, updated["content"])

	resp = h.send(t, fiber.MethodDelete, "/api/syllabus/delete/"+syllabusID, teacherB, nil, "")
	assert.Equal(t, fiber.StatusForbidden, resp.Status)

	resp = h.send(t, fiber.MethodPost, "/api/syllabus/delete/"+syllabusID, teacherA, nil, "")
	assert.Equal(t, fiber.StatusOK, resp.Status)

	resp = h.send(t, fiber.MethodGet, "/api/syllabus/get/"+syllabusID, teacherA, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
}
