package controllers

import (
	"errors"
	"log"

	"examprep/backend/cache"
	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/storage"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type createMainsExamRequest struct {
	Title      string          `form:"title" validate:"required"`
	Type       models.ExamType `form:"type" validate:"required,oneof=Free Paid"`
	Duration   int             `form:"duration" validate:"gt=0"`
	TotalMarks int             `form:"totalMarks" validate:"gt=0"`
}

type mainsExamList struct {
	MainsExams []models.Exam `json:"mainsExams"`
}

type MainsExamController struct {
	Repo     *repository.Repository
	Uploader storage.Uploader
	Catalog  cache.Catalog
	Logger   *log.Logger
}

func NewMainsExamController(repo *repository.Repository, uploader storage.Uploader, catalog cache.Catalog, logger *log.Logger) *MainsExamController {
	return &MainsExamController{Repo: repo, Uploader: uploader, Catalog: catalog, Logger: logger}
}

// Create godoc
// @Summary Create a Mains exam from an uploaded PDF or presentation
// @Tags exam
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question paper"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /exam/mains [post]
func (mc *MainsExamController) Create(c *fiber.Ctx) error {
	header, err := formFile(c, "file")
	if err != nil {
		return utils.BadRequest(c, "Invalid form data")
	}
	if header == nil {
		return utils.BadRequest(c, "No file uploaded")
	}

	var input createMainsExamRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}

	fileURL, err := uploadFile(c, mc.Uploader, mc.Logger, header, storage.PDFOrPresentation, storage.CategoryMainsExams)
	if err != nil {
		return finish(err)
	}

	exam := models.Exam{
		Title:      input.Title,
		Type:       input.Type,
		Category:   models.CategoryMains,
		Duration:   input.Duration,
		TotalMarks: input.TotalMarks,
		FileURL:    fileURL,
		TeacherID:  identityID(c),
	}
	if err := mc.Repo.CreateExam(c.UserContext(), &exam); err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to create mains exam", err)
	}
	invalidate(c.UserContext(), mc.Catalog, mc.Logger, cache.MainsKeys)

	return utils.Created(c, fiber.Map{
		"message": "Mains exam created successfully",
		"exam":    exam,
	})
}

func (mc *MainsExamController) ListMine(c *fiber.Ctx) error {
	exams, err := mc.Repo.ListExams(c.UserContext(), repository.ExamFilter{
		Category:  models.CategoryMains,
		TeacherID: identityID(c),
	})
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to fetch mains exams", err)
	}
	return c.JSON(examList{Exams: exams})
}

func (mc *MainsExamController) owned(c *fiber.Ctx, action string) (*models.Exam, error) {
	id, ok := paramID(c, "id")
	if !ok {
		_ = utils.NotFound(c, "Mains exam not found")
		return nil, errResponded
	}

	exam, err := mc.Repo.FindExam(c.UserContext(), id, models.CategoryMains)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.NotFound(c, "Mains exam not found")
		return nil, errResponded
	}
	if err != nil {
		_ = utils.InternalServerError(c, mc.Logger, "Failed to "+action+" mains exam", err)
		return nil, errResponded
	}
	if exam.TeacherID != identityID(c) {
		_ = utils.Forbidden(c, "Not authorized to "+action+" this mains exam")
		return nil, errResponded
	}
	return exam, nil
}

func (mc *MainsExamController) Get(c *fiber.Ctx) error {
	exam, err := mc.owned(c, "access")
	if err != nil {
		return finish(err)
	}
	return c.JSON(fiber.Map{"exam": exam})
}

// Delete removes the exam and its attempts, then the stored question paper.
// A failed object delete is only logged.
func (mc *MainsExamController) Delete(c *fiber.Ctx) error {
	exam, err := mc.owned(c, "delete")
	if err != nil {
		return finish(err)
	}

	ctx := c.UserContext()
	if err := mc.Repo.DeleteExam(ctx, exam.ID); err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to delete mains exam", err)
	}
	invalidate(ctx, mc.Catalog, mc.Logger, cache.MainsKeys)

	if exam.FileURL != "" {
		if err := mc.Uploader.Delete(ctx, exam.FileURL); err != nil {
			mc.Logger.Printf("delete mains exam file %s: %v", exam.FileURL, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Mains exam deleted successfully"})
}

// ListFree is public.
func (mc *MainsExamController) ListFree(c *fiber.Ctx) error {
	ctx := c.UserContext()
	list, err := cachedList(ctx, mc.Catalog, mc.Logger, cache.KeyMainsFree, func() (mainsExamList, error) {
		exams, err := mc.Repo.ListExams(ctx, repository.ExamFilter{Category: models.CategoryMains, Type: models.ExamTypeFree})
		return mainsExamList{MainsExams: exams}, err
	})
	if err != nil {
		return utils.InternalServerError(c, mc.Logger, "Failed to fetch mains exams", err)
	}
	return c.JSON(list)
}
