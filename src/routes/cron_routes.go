package routes

import (
	"Backend-Toolbox/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func cronRoutes(router fiber.Router) {
	cron := router.Group("/cron")

	cron.Get("/next", controllers.GetCronNextRuns)
}
