// Package rayid assigns a unique ray id to every request so log lines from
// one request can be correlated across middleware and handlers.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName carries the ray id to and from upstream proxies.
const HeaderName = "X-Ray-Id"

// New returns the ray id middleware. An incoming header is trusted so that
// proxies can correlate; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
