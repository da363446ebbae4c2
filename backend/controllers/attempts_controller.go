package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/services"
	"examprep/backend/storage"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// submitPrelimsRequest carries either a self-reported result or the raw
// answers, which are then graded against the answer key.
type submitPrelimsRequest struct {
	ExamID   string   `json:"examId" validate:"required,uuid"`
	Score    *float64 `json:"score" validate:"omitempty,min=0"`
	Accuracy *float64 `json:"accuracy" validate:"omitempty,min=0,max=100"`
	Attempts *int     `json:"attempts" validate:"omitempty,min=0"`
	Answers  []*int   `json:"answers"`
}

type PrelimsAttemptController struct {
	Repo    *repository.Repository
	Streaks *services.StreakService
	Logger  *log.Logger
}

func NewPrelimsAttemptController(repo *repository.Repository, streaks *services.StreakService, logger *log.Logger) *PrelimsAttemptController {
	return &PrelimsAttemptController{Repo: repo, Streaks: streaks, Logger: logger}
}

// Submit godoc
// @Summary Record a Prelims attempt
// @Tags attempt
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /exam/prelims/attempt [post]
func (ac *PrelimsAttemptController) Submit(c *fiber.Ctx) error {
	var input submitPrelimsRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	if input.Answers == nil && (input.Score == nil || input.Accuracy == nil || input.Attempts == nil) {
		return utils.BadRequest(c, "All fields are required")
	}

	ctx := c.UserContext()
	exam, err := ac.Repo.FindExam(ctx, uuid.MustParse(input.ExamID), models.CategoryPrelims)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Prelims exam not found")
	}
	if err != nil {
		return utils.InternalServerError(c, ac.Logger, "Internal server error", err)
	}

	attempt := models.PrelimsAttempt{
		StudentID: identityID(c),
		ExamID:    exam.ID,
	}
	response := fiber.Map{
		"message": "Score submitted successfully",
		"attempt": &attempt,
	}
	if input.Answers != nil {
		if exam.PrelimsAnswerKey == nil {
			return utils.BadRequest(c, "Exam has no answer key")
		}
		result, err := services.GradePrelims(exam.QuestionData, exam.PrelimsAnswerKey.AnswerKeyData, exam.TotalMarks, input.Answers)
		if err != nil {
			return utils.BadRequest(c, "Validation error", fiber.Map{"answers": err.Error()})
		}
		attempt.Score = result.Score
		attempt.Accuracy = result.Accuracy
		attempt.Attempts = result.Attempts
		// graded attempts get the key back for review
		response["answerKey"] = exam.PrelimsAnswerKey.AnswerKeyData
	} else {
		attempt.Score = *input.Score
		attempt.Accuracy = *input.Accuracy
		attempt.Attempts = *input.Attempts
	}

	if err := ac.Repo.CreatePrelimsAttempt(ctx, &attempt); err != nil {
		return utils.InternalServerError(c, ac.Logger, "Internal server error", err)
	}
	touchStreak(c, ac.Streaks, ac.Logger)

	return utils.Created(c, response)
}

func (ac *PrelimsAttemptController) ListScores(c *fiber.Ctx) error {
	attempts, err := ac.Repo.ListPrelimsAttemptsByStudent(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, ac.Logger, "Internal server error", err)
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

// touchStreak counts a submission as a visit. The submission has already
// been stored, so a failure here is logged rather than returned.
func touchStreak(c *fiber.Ctx, streaks *services.StreakService, logger *log.Logger) {
	if _, err := streaks.Touch(c.UserContext(), identityID(c)); err != nil {
		logger.Printf("update streak for %s: %v", identityID(c), err)
	}
}

type MainsAttemptController struct {
	Repo     *repository.Repository
	Uploader storage.Uploader
	Streaks  *services.StreakService
	Logger   *log.Logger
}

func NewMainsAttemptController(repo *repository.Repository, uploader storage.Uploader, streaks *services.StreakService, logger *log.Logger) *MainsAttemptController {
	return &MainsAttemptController{Repo: repo, Uploader: uploader, Streaks: streaks, Logger: logger}
}

// Submit godoc
// @Summary Upload a Mains answer sheet
// @Tags attempt
// @Accept multipart/form-data
// @Produce json
// @Param examId formData string true "Exam ID"
// @Param file formData file true "Answer sheet (PDF)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /exam/mains/attempt [post]
func (mc *MainsAttemptController) Submit(c *fiber.Ctx) error {
	header, err := formFile(c, "file")
	if err != nil {
		return utils.BadRequest(c, "Invalid form data")
	}
	if header == nil {
		return utils.BadRequest(c, "No file uploaded")
	}

	examID, err := uuid.Parse(strings.TrimSpace(c.FormValue("examId")))
	if err != nil {
		return utils.BadRequest(c, "Validation error", fiber.Map{"examId": "uuid"})
	}

	ctx := c.UserContext()
	exam, err := mc.Repo.FindExam(ctx, examID, models.CategoryMains)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Mains exam not found")
	}
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to submit mains attempt", err)
	}

	answerSheetURL, err := uploadFile(c, mc.Uploader, mc.Logger, header, storage.PDFOnly, storage.CategoryMainsAttempts)
	if err != nil {
		return finish(err)
	}

	attempt := models.MainsAttempt{
		StudentID:      identityID(c),
		ExamID:         exam.ID,
		AnswerSheetURL: answerSheetURL,
	}
	if err := mc.Repo.CreateMainsAttempt(ctx, &attempt); err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to submit mains attempt", err)
	}
	touchStreak(c, mc.Streaks, mc.Logger)

	return utils.Created(c, fiber.Map{
		"message": "Mains exam attempt submitted successfully",
		"attempt": attempt,
	})
}

func (mc *MainsAttemptController) ListMine(c *fiber.Ctx) error {
	attempts, err := mc.Repo.ListMainsAttemptsByStudent(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to fetch attempts", err)
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

// ListPending returns unevaluated attempts on the caller's exams.
func (mc *MainsAttemptController) ListPending(c *fiber.Ctx) error {
	attempts, err := mc.Repo.ListPendingMainsAttempts(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to fetch pending attempts", err)
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

// scoreValue is a whole-number score sent either as a JSON number or as
// text, as multipart and urlencoded forms do.
type scoreValue string

func (s *scoreValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = scoreValue(strings.TrimSpace(text))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = scoreValue(number.String())
	return nil
}

type evaluateRequest struct {
	AttemptID string     `json:"attemptId" form:"attemptId" validate:"required,uuid"`
	Score     scoreValue `json:"score" form:"score" validate:"required,number"`
	Feedback  string     `json:"feedback" form:"feedback"`
}

// Evaluate godoc
// @Summary Grade a Mains attempt
// @Description Optional file replaces the answer sheet with the marked copy.
// @Tags attempt
// @Accept multipart/form-data,json
// @Produce json
// @Param attemptId formData string true "Attempt ID"
// @Param score formData int true "Score"
// @Param feedback formData string false "Feedback"
// @Param file formData file false "Evaluated answer sheet (PDF)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /exam/mains/evaluate [post]
func (mc *MainsAttemptController) Evaluate(c *fiber.Ctx) error {
	header, err := formFile(c, "file")
	if err != nil {
		return utils.BadRequest(c, "Invalid form data")
	}

	var input evaluateRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	score, err := strconv.Atoi(string(input.Score))
	if err != nil {
		return utils.BadRequest(c, "Validation error", fiber.Map{"score": "number"})
	}

	ctx := c.UserContext()
	attempt, err := mc.Repo.FindMainsAttempt(ctx, uuid.MustParse(input.AttemptID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Attempt not found")
	}
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to evaluate attempt", err)
	}
	if attempt.Exam == nil || attempt.Exam.TeacherID != identityID(c) {
		return utils.Forbidden(c, "Not authorized to evaluate this attempt")
	}
	if score > attempt.Exam.TotalMarks {
		return utils.BadRequest(c, "Validation error", fiber.Map{"score": "max=" + strconv.Itoa(attempt.Exam.TotalMarks)})
	}

	answerSheetURL := attempt.AnswerSheetURL
	if header != nil {
		answerSheetURL, err = uploadFile(c, mc.Uploader, mc.Logger, header, storage.PDFOnly, storage.CategoryMainsEvaluations)
		if err != nil {
			return finish(err)
		}
	}

	feedback := strings.TrimSpace(input.Feedback)
	if feedback == "" {
		feedback = models.EvaluatedFeedback
	}

	updated, err := mc.Repo.UpdateMainsAttempt(ctx, attempt.ID, map[string]interface{}{
		"score":            score,
		"answer_sheet_url": answerSheetURL,
		"feedback":         feedback,
	})
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to evaluate attempt", err)
	}

	return c.JSON(fiber.Map{
		"message": "Attempt evaluated successfully",
		"attempt": updated,
	})
}
