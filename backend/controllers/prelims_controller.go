package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"examprep/backend/cache"
	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/services"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createPrelimsExamRequest struct {
	Title         string                   `json:"title" validate:"required"`
	Type          models.ExamType          `json:"type" validate:"required,oneof=Free Paid"`
	TestType      string                   `json:"testType" validate:"required,oneof=SECTIONAL MULTI_SECTIONAL FULL_LENGTH"`
	Duration      int                      `json:"duration" validate:"gt=0"`
	TotalMarks    int                      `json:"totalMarks" validate:"gt=0"`
	QuestionData  []models.PrelimsQuestion `json:"questionData" validate:"required,min=1,dive"`
	AnswerKeyData []models.AnswerKeyEntry  `json:"answerKeyData" validate:"required,min=1,dive"`
	Subjects      models.SubjectScope      `json:"subjects"`
}

type examList struct {
	Exams []models.Exam `json:"exams"`
}

type freeAndPaidList struct {
	FreeExams []models.Exam `json:"freeExams"`
	PaidExams []models.Exam `json:"paidExams"`
}

type PrelimsExamController struct {
	Repo    *repository.Repository
	Catalog cache.Catalog
	Logger  *log.Logger
}

func NewPrelimsExamController(repo *repository.Repository, catalog cache.Catalog, logger *log.Logger) *PrelimsExamController {
	return &PrelimsExamController{Repo: repo, Catalog: catalog, Logger: logger}
}

// Create godoc
// @Summary Create a Prelims exam with its answer key
// @Tags exam
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /exam/prelims [post]
func (pc *PrelimsExamController) Create(c *fiber.Ctx) error {
	var input createPrelimsExamRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	if err := services.ValidateAnswerKey(input.QuestionData, input.AnswerKeyData); err != nil {
		return utils.BadRequest(c, "Validation error", fiber.Map{"answerKeyData": err.Error()})
	}

	subjects, err := json.Marshal(input.Subjects)
	if err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to create prelims exam", err)
	}

	exam := models.Exam{
		Title:        input.Title,
		Type:         input.Type,
		TestType:     input.TestType,
		Category:     models.CategoryPrelims,
		Duration:     input.Duration,
		TotalMarks:   input.TotalMarks,
		QuestionData: input.QuestionData,
		Subjects:     datatypes.JSON(subjects),
		TeacherID:    identityID(c),
		PrelimsAnswerKey: &models.PrelimsAnswerKey{
			AnswerKeyData: input.AnswerKeyData,
		},
	}
	if err := pc.Repo.CreateExam(c.UserContext(), &exam); err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to create prelims exam", err)
	}
	invalidate(c.UserContext(), pc.Catalog, pc.Logger, cache.PrelimsKeys)

	return utils.Created(c, fiber.Map{
		"message": "Prelims exam created successfully",
		"exam":    exam,
	})
}

func (pc *PrelimsExamController) ListMine(c *fiber.Ctx) error {
	exams, err := pc.Repo.ListExams(c.UserContext(), repository.ExamFilter{
		Category:      models.CategoryPrelims,
		TeacherID:     identityID(c),
		WithAnswerKey: true,
	})
	if err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to fetch prelims exams", err)
	}
	return c.JSON(examList{Exams: exams})
}

// owned loads the exam behind :id and checks that the caller created it.
func (pc *PrelimsExamController) owned(c *fiber.Ctx, action string) (*models.Exam, error) {
	id, ok := paramID(c, "id")
	if !ok {
		_ = utils.NotFound(c, "Prelims exam not found")
		return nil, errResponded
	}

	exam, err := pc.Repo.FindExam(c.UserContext(), id, models.CategoryPrelims)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.NotFound(c, "Prelims exam not found")
		return nil, errResponded
	}
	if err != nil {
		_ = utils.InternalServerError(c, pc.Logger, "Failed to "+action+" prelims exam", err)
		return nil, errResponded
	}
	if exam.TeacherID != identityID(c) {
		_ = utils.Forbidden(c, "Not authorized to "+action+" this prelims exam")
		return nil, errResponded
	}
	return exam, nil
}

func (pc *PrelimsExamController) Get(c *fiber.Ctx) error {
	exam, err := pc.owned(c, "access")
	if err != nil {
		return finish(err)
	}
	return c.JSON(fiber.Map{"exam": exam})
}

func (pc *PrelimsExamController) Delete(c *fiber.Ctx) error {
	exam, err := pc.owned(c, "delete")
	if err != nil {
		return finish(err)
	}

	if err := pc.Repo.DeleteExam(c.UserContext(), exam.ID); err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to delete prelims exam", err)
	}
	invalidate(c.UserContext(), pc.Catalog, pc.Logger, cache.PrelimsKeys)

	return c.JSON(fiber.Map{"message": "Prelims exam deleted successfully"})
}

// ListFree is public.
func (pc *PrelimsExamController) ListFree(c *fiber.Ctx) error {
	ctx := c.UserContext()
	list, err := cachedList(ctx, pc.Catalog, pc.Logger, cache.KeyPrelimsFree, func() (examList, error) {
		exams, err := pc.Repo.ListExams(ctx, repository.ExamFilter{Category: models.CategoryPrelims, Type: models.ExamTypeFree})
		return examList{Exams: exams}, err
	})
	if err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to fetch prelims exams", err)
	}
	return c.JSON(list)
}

// ListFreeAndPaidInfo is public.
func (pc *PrelimsExamController) ListFreeAndPaidInfo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	list, err := cachedList(ctx, pc.Catalog, pc.Logger, cache.KeyPrelimsFreeAndPaid, func() (freeAndPaidList, error) {
		free, err := pc.Repo.ListExams(ctx, repository.ExamFilter{Category: models.CategoryPrelims, Type: models.ExamTypeFree})
		if err != nil {
			return freeAndPaidList{}, err
		}
		paid, err := pc.Repo.ListExams(ctx, repository.ExamFilter{Category: models.CategoryPrelims, Type: models.ExamTypePaid})
		if err != nil {
			return freeAndPaidList{}, err
		}
		return freeAndPaidList{FreeExams: free, PaidExams: paid}, nil
	})
	if err != nil {
		return utils.InternalServerError(c, pc.Logger, "Failed to fetch prelims exams", err)
	}
	return c.JSON(list)
}
