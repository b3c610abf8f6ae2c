package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the request and response header carrying the RayID.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the fiber.Ctx locals key read by logger.WithRayID.
	LocalsKey = "ray_id"
)

// New returns a middleware that assigns every request a RayID. An incoming
// header value is kept so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
