package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Toolbox/src/controllers"
	"Backend-Toolbox/src/services/questionnaires"
	"Backend-Toolbox/src/services/submissions"
)

func InitRoutes(app *fiber.App) {
	questionnaireSvc := questionnaires.NewService(questionnaires.NewMongoStore())
	submissionSvc := submissions.NewService(submissions.NewMongoStore())

	questionnaireRoutes(app,
		controllers.NewQuestionnaireController(questionnaireSvc),
		controllers.NewSubmissionController(submissionSvc),
	)
	authRoutes(app)
	cronRoutes(app)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
