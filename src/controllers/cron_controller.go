package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Backend-Toolbox/src/services/cronexpr"
	"Backend-Toolbox/src/utils"
)

type cronNextResponse struct {
	Expression string   `json:"expression"`
	NextRuns   []string `json:"next_runs"`
}

// GetCronNextRuns godoc
// @Summary      Compute the next execution times of a cron expression
// @Tags         cron
// @Produce      json
// @Param        expr   query  string  true   "Cron expression (5 or 6 fields)"
// @Param        count  query  int     false  "Number of runs to compute" default(5)
// @Success      200  {object}  cronNextResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /cron/next [get]
func GetCronNextRuns(c *fiber.Ctx) error {
	expr := c.Query("expr")
	if expr == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "expr query parameter is required")
	}

	count, _ := strconv.Atoi(c.Query("count", "5"))

	runs, err := cronexpr.NextRuns(expr, count, time.Now())
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	formatted := make([]string, 0, len(runs))
	for _, run := range runs {
		formatted = append(formatted, run.Format(time.RFC3339))
	}

	return c.JSON(cronNextResponse{Expression: expr, NextRuns: formatted})
}
