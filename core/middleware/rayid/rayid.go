package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray ID on responses (and on requests from trusted
// upstream proxies).
const Header = "X-Ray-ID"

// LocalsKey is the fiber locals key the logger helper reads.
const LocalsKey = "ray_id"

// New returns middleware that assigns every request a ray ID. An inbound
// X-Ray-ID is reused so IDs stay stable across proxy hops.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
