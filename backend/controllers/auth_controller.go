package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"examprep/backend/auth"
	"examprep/backend/middleware"
	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type signupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	DateOfBirth string `json:"dateOfBirth"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// parseDateOfBirth accepts YYYY-MM-DD or RFC 3339.
func parseDateOfBirth(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("dateOfBirth must be YYYY-MM-DD or RFC 3339")
}

func readSignin(c *fiber.Ctx) (*signinRequest, error) {
	var input signinRequest
	if err := c.BodyParser(&input); err != nil {
		_ = utils.BadRequest(c, "Cannot parse request body")
		return nil, errResponded
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		_ = utils.BadRequest(c, "Email and password are required")
		return nil, errResponded
	}
	return &input, nil
}

func profile(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{key: middleware.CurrentIdentity(c)})
	}
}

type TeacherController struct {
	Repo   *repository.Repository
	Tokens *auth.TokenIssuer
	Logger *log.Logger
}

func NewTeacherController(repo *repository.Repository, tokens *auth.TokenIssuer, logger *log.Logger) *TeacherController {
	return &TeacherController{Repo: repo, Tokens: tokens, Logger: logger}
}

// Signup godoc
// @Summary Register a teacher
// @Tags teacher
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /teacher/signup [post]
func (tc *TeacherController) Signup(c *fiber.Ctx) error {
	var input signupRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	input.normalize()

	ctx := c.UserContext()
	exists, err := tc.Repo.TeacherEmailExists(ctx, input.Email)
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	if exists {
		return utils.BadRequest(c, "Email already registered")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}

	teacher := models.Teacher{
		Name:        input.Name,
		Email:       input.Email,
		Password:    hash,
		PhoneNumber: input.PhoneNumber,
	}
	if err := tc.Repo.CreateTeacher(ctx, &teacher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.BadRequest(c, "Email already registered")
		}
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}

	token, err := tc.Tokens.Issue(auth.Identity{ID: teacher.ID, Email: teacher.Email, Role: models.RoleTeacher})
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}

	return utils.Created(c, fiber.Map{
		"message": "Teacher registered successfully",
		"teacher": teacher,
		"token":   token,
	})
}

// Signin godoc
// @Summary Teacher login
// @Tags teacher
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /teacher/signin [post]
func (tc *TeacherController) Signin(c *fiber.Ctx) error {
	input, err := readSignin(c)
	if err != nil {
		return finish(err)
	}

	teacher, err := tc.Repo.FindTeacherByEmail(c.UserContext(), input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	if !auth.VerifyPassword(input.Password, teacher.Password) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := tc.Tokens.Issue(auth.Identity{ID: teacher.ID, Email: teacher.Email, Role: models.RoleTeacher})
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"teacher": teacher,
		"token":   token,
	})
}

func (tc *TeacherController) Profile(c *fiber.Ctx) error {
	return profile("teacher")(c)
}

type StudentController struct {
	Repo   *repository.Repository
	Tokens *auth.TokenIssuer
	Logger *log.Logger
}

func NewStudentController(repo *repository.Repository, tokens *auth.TokenIssuer, logger *log.Logger) *StudentController {
	return &StudentController{Repo: repo, Tokens: tokens, Logger: logger}
}

// Signup godoc
// @Summary Register a student
// @Tags student
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /student/signup [post]
func (sc *StudentController) Signup(c *fiber.Ctx) error {
	var input signupRequest
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}
	input.normalize()

	dateOfBirth, err := parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return utils.BadRequest(c, "Validation error", fiber.Map{"dateOfBirth": err.Error()})
	}

	ctx := c.UserContext()
	exists, err := sc.Repo.StudentEmailExists(ctx, input.Email)
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	if exists {
		return utils.BadRequest(c, "Email already registered")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}

	student := models.Student{
		Name:        input.Name,
		Email:       input.Email,
		Password:    hash,
		PhoneNumber: input.PhoneNumber,
		DateOfBirth: dateOfBirth,
	}
	if err := sc.Repo.CreateStudent(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.BadRequest(c, "Email already registered")
		}
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}

	token, err := sc.Tokens.Issue(auth.Identity{ID: student.ID, Email: student.Email, Role: models.RoleStudent})
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}

	return utils.Created(c, fiber.Map{
		"message": "Student registered successfully",
		"student": student,
		"token":   token,
	})
}

func (sc *StudentController) Signin(c *fiber.Ctx) error {
	input, err := readSignin(c)
	if err != nil {
		return finish(err)
	}

	student, err := sc.Repo.FindStudentByEmail(c.UserContext(), input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	if !auth.VerifyPassword(input.Password, student.Password) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := sc.Tokens.Issue(auth.Identity{ID: student.ID, Email: student.Email, Role: models.RoleStudent})
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"student": student,
		"token":   token,
	})
}

func (sc *StudentController) Profile(c *fiber.Ctx) error {
	return profile("student")(c)
}
