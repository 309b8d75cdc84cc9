package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/assessment"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/config"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/utils"
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/validators"
)

type QuizController struct {
	Engine *assessment.Engine
	Cfg    *config.Config
}

func NewQuizController(engine *assessment.Engine, cfg *config.Config) *QuizController {
	return &QuizController{Engine: engine, Cfg: cfg}
}

// queryCohortID reads the optional cohort_id query parameter; nil means the
// direct enrollment path.
func queryCohortID(c *fiber.Ctx) (*uint, error) {
	raw := c.Query("cohort_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid cohort ID")
	}
	u := uint(id)
	return &u, nil
}

type submitQuizRequest struct {
	CourseID uint          `json:"course_id" validate:"required"`
	CohortID *uint         `json:"cohort_id"`
	Answers  []interface{} `json:"answers" validate:"required"`
}

func (qc *QuizController) SubmitAttempt(c *fiber.Ctx) error {
	studentID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	var req submitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if fields := validators.Struct(req); fields != nil {
		return utils.ValidationFailed(c, fields)
	}

	result, err := qc.Engine.SubmitQuizAttempt(assessment.SubmitQuizInput{
		StudentID: studentID,
		CourseID:  req.CourseID,
		QuizID:    uint(quizID),
		CohortID:  req.CohortID,
		Answers:   req.Answers,
	})
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, result)
}

func (qc *QuizController) GetQuizState(c *fiber.Ctx) error {
	studentID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}
	cohortID, err := queryCohortID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cohort ID",
		})
	}

	state, err := qc.Engine.GetQuizState(studentID, uint(quizID), cohortID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, state)
}

func (qc *QuizController) GetQuizAnalytics(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	summaries, err := qc.Engine.QuizAnalytics(uint(quizID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"analytics": summaries,
	})
}
