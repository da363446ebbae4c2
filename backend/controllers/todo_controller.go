package controllers

import (
	"errors"
	"log"

	"examprep/backend/models"
	"examprep/backend/repository"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TodoController struct {
	Repo   *repository.Repository
	Logger *log.Logger
}

func NewTodoController(repo *repository.Repository, logger *log.Logger) *TodoController {
	return &TodoController{Repo: repo, Logger: logger}
}

func (tc *TodoController) Create(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}

	todo := models.Todo{
		StudentID:   identityID(c),
		Title:       input.Title,
		Description: input.Description,
	}
	if err := tc.Repo.CreateTodo(c.UserContext(), &todo); err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	return utils.Created(c, todo)
}

func (tc *TodoController) List(c *fiber.Ctx) error {
	todos, err := tc.Repo.ListTodosByStudent(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	return c.JSON(todos)
}

// own loads the todo behind :id, answering 404 or 403 itself.
func (tc *TodoController) own(c *fiber.Ctx) (*models.Todo, error) {
	id, ok := paramID(c, "id")
	if !ok {
		_ = utils.NotFound(c, "Todo not found")
		return nil, errResponded
	}

	todo, err := tc.Repo.FindTodo(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.NotFound(c, "Todo not found")
		return nil, errResponded
	}
	if err != nil {
		_ = utils.InternalServerError(c, tc.Logger, "Internal server error", err)
		return nil, errResponded
	}
	if todo.StudentID != identityID(c) {
		_ = utils.Forbidden(c, "Not authorized to modify this todo")
		return nil, errResponded
	}
	return todo, nil
}

// Update changes only the fields present in the body.
func (tc *TodoController) Update(c *fiber.Ctx) error {
	todo, err := tc.own(c)
	if err != nil {
		return finish(err)
	}

	var input struct {
		Title       *string `json:"title" validate:"omitempty,min=1"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := parseBody(c, &input); err != nil {
		return finish(err)
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}

	updated, err := tc.Repo.UpdateTodo(c.UserContext(), todo.ID, fields)
	if err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	return c.JSON(updated)
}

func (tc *TodoController) Delete(c *fiber.Ctx) error {
	todo, err := tc.own(c)
	if err != nil {
		return finish(err)
	}

	if err := tc.Repo.DeleteTodo(c.UserContext(), todo.ID); err != nil {
		return utils.InternalServerError(c, tc.Logger, "Internal server error", err)
	}
	return utils.NoContent(c)
}
