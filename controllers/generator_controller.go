package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursegen/generator"
)

// CourseGenerator produces course drafts from user constraints.
type CourseGenerator interface {
	GenerateCourse(ctx context.Context, input generator.Input) (*generator.CourseDocument, error)
}

type GeneratorController struct {
	Generator CourseGenerator
}

func NewGeneratorController(gen CourseGenerator) *GeneratorController {
	return &GeneratorController{Generator: gen}
}

// Generate godoc
// @Summary Generate a course draft
// @Description Produces an AI-generated course for review; nothing is persisted
// @Tags generator
// @Accept json
// @Produce json
// @Router /generator [post]
func (gc *GeneratorController) Generate(c *fiber.Ctx) error {
	var input generator.Input
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"course": nil,
			"error":  "Cannot parse JSON",
		})
	}

	doc, err := gc.Generator.GenerateCourse(c.UserContext(), input)
	if err != nil {
		return c.Status(generationStatus(err)).JSON(fiber.Map{
			"course": nil,
			"error":  generationMessage(err),
		})
	}

	return c.JSON(fiber.Map{
		"course": doc,
		"error":  nil,
	})
}

func generationStatus(err error) int {
	switch {
	case errors.Is(err, generator.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, generator.ErrMalformedResponse), errors.Is(err, generator.ErrEmptyResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// generationMessage keeps the caller-facing text stable while the wrapped
// errors stay in the logs.
func generationMessage(err error) string {
	switch {
	case errors.Is(err, generator.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, generator.ErrMalformedResponse):
		return "Failed to generate valid course structure. The model's response was not in the expected format. Please try adjusting your query."
	case errors.Is(err, generator.ErrEmptyResponse):
		return "API returned an empty response. The model may have refused to answer."
	default:
		return "An unexpected error occurred while generating the course. Please try again later."
	}
}
