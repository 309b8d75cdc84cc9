package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/assessment"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/utils"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/validators"
)

type AssignmentsController struct {
	Engine *assessment.Engine
	Cfg    *config.Config
}

func NewAssignmentsController(engine *assessment.Engine, cfg *config.Config) *AssignmentsController {
	return &AssignmentsController{Engine: engine, Cfg: cfg}
}

type submitAssignmentRequest struct {
	CourseID    uint     `json:"course_id" validate:"required"`
	CohortID    *uint    `json:"cohort_id"`
	Attachments []string `json:"attachments"`
	Comment     string   `json:"comment"`
}

func (ac *AssignmentsController) SubmitAssignment(c *fiber.Ctx) error {
	studentID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var req submitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if fields := validators.Struct(req); fields != nil {
		return utils.ValidationFailed(c, fields)
	}

	sub, err := ac.Engine.SubmitAssignment(assessment.SubmitAssignmentInput{
		StudentID:   studentID,
		CourseID:    req.CourseID,
		ItemID:      uint(itemID),
		CohortID:    req.CohortID,
		Attachments: req.Attachments,
		Comment:     req.Comment,
	})
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, sub)
}

type gradeRequest struct {
	Points   float64 `json:"points" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}

func (ac *AssignmentsController) GradeSubmission(c *fiber.Ctx) error {
	graderID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	submissionID := c.Params("id")
	if submissionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission ID",
		})
	}

	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if fields := validators.Struct(req); fields != nil {
		return utils.ValidationFailed(c, fields)
	}

	sub, err := ac.Engine.GradeAssignment(submissionID, req.Points, req.Feedback, graderID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, sub)
}
