package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Toolbox/src/models"
	"Backend-Toolbox/src/services/questionnaires"
	"Backend-Toolbox/src/services/submissions"
	"Backend-Toolbox/src/utils"
)

type SubmissionController struct {
	svc *submissions.Service
}

func NewSubmissionController(svc *submissions.Service) *SubmissionController {
	return &SubmissionController{svc: svc}
}

// SubmitAnswers godoc
// @Summary      Submit answers to a questionnaire
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Questionnaire ID"
// @Param        body body models.SubmitAnswersRequest true "Answers"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      410  {string}  string  "This questionnaire is closed."
// @Failure      429  {object}  models.ErrorResponse
// @Router       /questionnaires/{id}/submissions [post]
func (ctl *SubmissionController) SubmitAnswers(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid questionnaire ID")
	}

	var req models.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	// Each answer is either free text or an option reference, never both and
	// never neither.
	for _, a := range req.Answers {
		if _, err := primitive.ObjectIDFromHex(a.QuestionID); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "invalid question_id")
		}
		hasText := a.AnswerText != nil && *a.AnswerText != ""
		hasOption := a.OptionID != nil && *a.OptionID != ""
		if hasText == hasOption {
			return utils.HandleError(c, fiber.StatusBadRequest, "each answer needs exactly one of answer_text or option_id")
		}
		if hasOption {
			if _, err := primitive.ObjectIDFromHex(*a.OptionID); err != nil {
				return utils.HandleError(c, fiber.StatusBadRequest, "invalid option_id")
			}
		}
	}

	origin := c.Get("X-Forwarded-For")
	if origin == "" {
		origin = c.IP()
	}
	agent := c.Get("User-Agent")

	_, err = ctl.svc.Submit(c.Context(), id, req.Answers, origin, agent)
	if err != nil {
		switch {
		case errors.Is(err, questionnaires.ErrQuestionnaireNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, "Questionnaire not found")
		case errors.Is(err, questionnaires.ErrQuestionnaireClosed):
			return c.Status(fiber.StatusGone).SendString("This questionnaire is closed.")
		case errors.Is(err, submissions.ErrDuplicateSubmission):
			return utils.HandleError(c, fiber.StatusTooManyRequests, "You have already submitted this questionnaire.")
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to submit answers")
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
