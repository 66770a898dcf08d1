package routes

import (
	"Backend-Toolbox/src/controllers"
	"Backend-Toolbox/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// questionnaireRoutes กำหนด route สำหรับ questionnaire engine
func questionnaireRoutes(router fiber.Router, qc *controllers.QuestionnaireController, sc *controllers.SubmissionController) {
	qs := router.Group("/questionnaires")

	// public: retrieval and submission
	qs.Get("/:id", qc.GetQuestionnaire)
	qs.Post("/:id/submissions", sc.SubmitAnswers)

	// authoring flow, admin only
	qs.Post("/", middleware.AuthJWT, qc.CreateQuestionnaire)
	qs.Patch("/:id/status", middleware.AuthJWT, qc.UpdateQuestionnaireStatus)
}
