package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/assessment"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/utils"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/validators"
)

type ProgressController struct {
	Engine *assessment.Engine
	Cfg    *config.Config
}

func NewProgressController(engine *assessment.Engine, cfg *config.Config) *ProgressController {
	return &ProgressController{Engine: engine, Cfg: cfg}
}

func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	studentID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}
	cohortID, err := queryCohortID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cohort ID",
		})
	}

	report, err := pc.Engine.GetProgress(studentID, uint(courseID), cohortID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, report)
}

type setProgressRequest struct {
	ItemID      uint  `json:"item_id" validate:"required"`
	CohortID    *uint `json:"cohort_id"`
	IsCompleted bool  `json:"is_completed"`
}

func (pc *ProgressController) SetCourseProgress(c *fiber.Ctx) error {
	studentID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var req setProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if fields := validators.Struct(req); fields != nil {
		return utils.ValidationFailed(c, fields)
	}

	record, err := pc.Engine.SetProgress(studentID, uint(courseID), req.ItemID, req.CohortID, req.IsCompleted)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, record)
}
