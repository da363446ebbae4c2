package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"examprep/backend/cache"
	"examprep/backend/config"
	"examprep/backend/testutil"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type harness struct {
	app      *fiber.App
	db       *gorm.DB
	uploader *testutil.FakeUploader
	clock    *testutil.Clock
}

func newHarness(t *testing.T, catalog cache.Catalog) *harness {
	t.Helper()

	cfg := &config.Config{JWTSecret: "routes-test-secret", ServerPort: "3000"}
	logger := utils.DiscardLogger()

	h := &harness{
		app:      NewApp(cfg, logger),
		db:       testutil.NewDB(t),
		uploader: &testutil.FakeUploader{},
		clock:    testutil.NewClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, SetupRoutes(h.app, h.db, cfg, Services{
		Uploader: h.uploader,
		Catalog:  catalog,
		Logger:   logger,
		Now:      h.clock.Now,
	}))
	return h
}

type response struct {
	Status int
	Body   []byte
}

func (r response) JSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &out), string(r.Body))
	return out
}

func (r response) Decode(t *testing.T, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, dst), string(r.Body))
}

func (h *harness) send(t *testing.T, method, path, token string, body io.Reader, contentType string) response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{Status: resp.StatusCode, Body: raw}
}

func (h *harness) json(t *testing.T, method, path, token string, payload interface{}) response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return h.send(t, method, path, token, body, fiber.MIMEApplicationJSON)
}

type upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (h *harness) multipart(t *testing.T, path, token string, fields map[string]string, file *upload) response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+file.Filename+`"`)
		header.Set("Content-Type", file.ContentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.Data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return h.send(t, fiber.MethodPost, path, token, &buf, writer.FormDataContentType())
}

// signup registers an account of the given role and returns its id and token.
func (h *harness) signup(t *testing.T, role, name, email string) (string, string) {
	t.Helper()

	resp := h.json(t, fiber.MethodPost, "/api/"+role+"/signup", "", map[string]string{
		"name":        name,
		"email":       email,
		"password":    "pa55word",
		"phoneNumber": "9999999999",
	})
	require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))

	body := resp.JSON(t)
	account := body[role].(map[string]interface{})
	return account["id"].(string), body["token"].(string)
}

func prelimsExamPayload(title, examType string) map[string]interface{} {
	return map[string]interface{}{
		"title":      title,
		"type":       examType,
		"testType":   "SECTIONAL",
		"duration":   60,
		"totalMarks": 100,
		"questionData": []map[string]interface{}{
			{"question": "Capital of Rajasthan?", "answers": []string{"Jaipur", "Jodhpur", "Udaipur"}},
			{"question": "Longest river?", "answers": []string{"Ganga", "Chambal"}},
			{"question": "Largest district?", "answers": []string{"Barmer", "Jaisalmer"}},
			{"question": "Thar is a?", "answers": []string{"Desert", "Forest"}},
		},
		"answerKeyData": []map[string]interface{}{
			{"correctAnswerIndex": 0, "reason": "State capital"},
			{"correctAnswerIndex": 1},
			{"correctAnswerIndex": 1},
			{"correctAnswerIndex": 0},
		},
		"subjects": map[string]interface{}{
			"subject":   "Geography",
			"subtopics": []string{"Rivers", "Districts"},
		},
	}
}

func (h *harness) createPrelimsExam(t *testing.T, token, title, examType string) string {
	t.Helper()

	resp := h.json(t, fiber.MethodPost, "/api/exam/prelims", token, prelimsExamPayload(title, examType))
	require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))
	return resp.JSON(t)["exam"].(map[string]interface{})["id"].(string)
}

func (h *harness) createMainsExam(t *testing.T, token, title string) (string, string) {
	t.Helper()

	resp := h.multipart(t, "/api/exam/mains", token, map[string]string{
		"title":      title,
		"type":       "Free",
		"duration":   "180",
		"totalMarks": "250",
	}, &upload{Filename: "paper.pdf", ContentType: "application/pdf", Data: samplePDF})
	require.Equal(t, fiber.StatusCreated, resp.Status, string(resp.Body))

	exam := resp.JSON(t)["exam"].(map[string]interface{})
	return exam["id"].(string), exam["fileUrl"].(string)
}
