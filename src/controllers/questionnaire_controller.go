package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Toolbox/src/models"
	"Backend-Toolbox/src/services/questionnaires"
	"Backend-Toolbox/src/utils"
)

var validate = validator.New()

type QuestionnaireController struct {
	svc *questionnaires.Service
}

func NewQuestionnaireController(svc *questionnaires.Service) *QuestionnaireController {
	return &QuestionnaireController{svc: svc}
}

// GetQuestionnaire godoc
// @Summary      Retrieve a questionnaire with its questions and options
// @Tags         questionnaires
// @Produce      json
// @Param        id   path      string  true  "Questionnaire ID"
// @Success      200  {object}  models.QuestionnaireDetail
// @Failure      404  {object}  models.ErrorResponse
// @Failure      410  {string}  string  "This questionnaire is closed."
// @Router       /questionnaires/{id} [get]
func (ctl *QuestionnaireController) GetQuestionnaire(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid questionnaire ID")
	}

	detail, err := ctl.svc.GetQuestionnaireDetail(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, questionnaires.ErrQuestionnaireNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, "Questionnaire not found")
		case errors.Is(err, questionnaires.ErrQuestionnaireClosed):
			// terminal, non-retriable; deliberately not a JSON error body
			return c.Status(fiber.StatusGone).SendString("This questionnaire is closed.")
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load questionnaire")
		}
	}

	return c.JSON(detail)
}

// CreateQuestionnaire godoc
// @Summary      Create a questionnaire with questions and options
// @Tags         questionnaires
// @Accept       json
// @Produce      json
// @Param        body body models.CreateQuestionnaireRequest true "Questionnaire definition"
// @Success      201  {object}  models.QuestionnaireDetail
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /questionnaires [post]
func (ctl *QuestionnaireController) CreateQuestionnaire(c *fiber.Ctx) error {
	var req models.CreateQuestionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	for _, q := range req.Questions {
		if models.IsChoiceType(q.Type) && len(q.Options) == 0 {
			return utils.HandleError(c, fiber.StatusBadRequest, "choice questions need at least one option")
		}
	}

	detail, err := ctl.svc.CreateQuestionnaire(c.Context(), &req)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to create questionnaire")
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

// UpdateQuestionnaireStatus godoc
// @Summary      Open or close a questionnaire
// @Tags         questionnaires
// @Accept       json
// @Param        id   path      string  true  "Questionnaire ID"
// @Param        body body models.UpdateQuestionnaireStatusRequest true "New status"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /questionnaires/{id}/status [patch]
func (ctl *QuestionnaireController) UpdateQuestionnaireStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid questionnaire ID")
	}

	var req models.UpdateQuestionnaireStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.svc.UpdateQuestionnaireStatus(c.Context(), id, req.Status); err != nil {
		if errors.Is(err, questionnaires.ErrQuestionnaireNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, "Questionnaire not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to update status")
	}

	return c.JSON(fiber.Map{"success": true})
}
