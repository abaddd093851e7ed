package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/lotwise/backend/internal/server/svr"
	"github.com/lotwise/backend/internal/service"
)

type Health struct {
	fx.In

	HealthService *service.Health
}

func RegisterHealth(v1 *svr.V1, c Health) {
	v1.Get("/health", c.Health)
}

func (c *Health) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
