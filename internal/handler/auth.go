package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

const actorLocalKey = "actor"

// ActorMiddleware extracts the acting user from the X-Actor-Id and
// X-Actor-Role headers set by the upstream session subsystem and stores it
// in the request locals. The engine trusts the headers: authentication
// itself happens before requests reach this service.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(actorLocalKey, model.Actor{
			ID:   c.Get("X-Actor-Id"),
			Role: model.Role(c.Get("X-Actor-Role")),
		})
		return c.Next()
	}
}

// requestActor returns the actor stored by ActorMiddleware, or a zero actor
// when the middleware is not installed.
func requestActor(c *fiber.Ctx) model.Actor {
	if actor, ok := c.Locals(actorLocalKey).(model.Actor); ok {
		return actor
	}
	return model.Actor{}
}

// parseIDParam parses the :id route parameter as a UUID.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
