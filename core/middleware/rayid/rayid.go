package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id on requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber locals key read by logger.WithRayID.
	LocalsKey = "ray_id"
)

// New returns a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is kept so calls can be traced across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
