package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type syllabusRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// content returns the JSON document to store, or "" with the reason it was
// rejected.
func (r *syllabusRequest) content() (datatypes.JSON, string) {
	raw := bytes.TrimSpace(r.Content)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, "Content is required"
	}
	if !json.Valid(raw) {
		return nil, "Invalid content format"
	}
	return datatypes.JSON(raw), ""
}

type SyllabusController struct {
	Repo   *repository.Repository
	Logger *log.Logger
}

func NewSyllabusController(repo *repository.Repository, logger *log.Logger) *SyllabusController {
	return &SyllabusController{Repo: repo, Logger: logger}
}

func (sc *SyllabusController) Create(c *fiber.Ctx) error {
	var input syllabusRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	content, problem := input.content()
	if problem != "" {
		return utils.BadRequest(c, problem)
	}

	syllabus := models.Syllabus{
		Title:     strings.TrimSpace(input.Title),
		Content:   content,
		TeacherID: identityID(c),
	}
	if err := sc.Repo.CreateSyllabus(c.UserContext(), &syllabus); err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}

	return utils.Created(c, fiber.Map{
		"message":  "Syllabus created successfully",
		"syllabus": syllabus,
	})
}

func (sc *SyllabusController) find(c *fiber.Ctx) (*models.Syllabus, error) {
	id, ok := paramID(c, "id")
	if !ok {
		_ = utils.NotFound(c, "Syllabus not found")
		return nil, errResponded
	}

	syllabus, err := sc.Repo.FindSyllabus(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.NotFound(c, "Syllabus not found")
		return nil, errResponded
	}
	if err != nil {
		_ = utils.InternalServerError(c, sc.Logger, "Internal server error", err)
		return nil, errResponded
	}
	return syllabus, nil
}

func (sc *SyllabusController) owned(c *fiber.Ctx, action string) (*models.Syllabus, error) {
	syllabus, err := sc.find(c)
	if err != nil {
		return nil, err
	}
	if syllabus.TeacherID != identityID(c) {
		_ = utils.Forbidden(c, "Not authorized to "+action+" this syllabus")
		return nil, errResponded
	}
	return syllabus, nil
}

// Get is readable by any teacher.
func (sc *SyllabusController) Get(c *fiber.Ctx) error {
	syllabus, err := sc.find(c)
	if err != nil {
		return finish(err)
	}
	return c.JSON(fiber.Map{"syllabus": syllabus})
}

func (sc *SyllabusController) ListByTeacher(c *fiber.Ctx) error {
	teacherID, ok := paramID(c, "id")
	if !ok {
		return utils.NotFound(c, "No syllabuses found for this teacher")
	}

	syllabuses, err := sc.Repo.ListSyllabusesByTeacher(c.UserContext(), teacherID)
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	if len(syllabuses) == 0 {
		return utils.NotFound(c, "No syllabuses found for this teacher")
	}
	return c.JSON(fiber.Map{"syllabuses": syllabuses})
}

// ListMine returns the caller's syllabuses; an empty list is not an error.
func (sc *SyllabusController) ListMine(c *fiber.Ctx) error {
	syllabuses, err := sc.Repo.ListSyllabusesByTeacher(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	return c.JSON(fiber.Map{"syllabuses": syllabuses})
}

func (sc *SyllabusController) Update(c *fiber.Ctx) error {
	syllabus, err := sc.owned(c, "update")
	if err != nil {
		return finish(err)
	}

	var input syllabusRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	content, problem := input.content()
	if problem != "" {
		return utils.BadRequest(c, problem)
	}

	fields := map[string]interface{}{"content": content}
	if title := strings.TrimSpace(input.Title); title != "" {
		fields["title"] = title
	}

	updated, err := sc.Repo.UpdateSyllabus(c.UserContext(), syllabus.ID, fields)
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Syllabus updated successfully",
		"syllabus": updated,
	})
}

func (sc *SyllabusController) Delete(c *fiber.Ctx) error {
	syllabus, err := sc.owned(c, "delete")
	if err != nil {
		return finish(err)
	}

	if err := sc.Repo.DeleteSyllabus(c.UserContext(), syllabus.ID); err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	return c.JSON(fiber.Map{"message": "Syllabus deleted successfully"})
}
