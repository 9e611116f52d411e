package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// activityRealm is shown by browsers in the credentials prompt.
const activityRealm = "License Activity"

// ActivityGuard protects the activity log with HTTP basic auth.
// The log records create and stats calls and upstream error text, so with no
// users configured every request is refused.
func ActivityGuard(users map[string]string) fiber.Handler {
	if len(users) == 0 {
		return func(c *fiber.Ctx) error {
			return writeError(c, fiber.StatusForbidden, "ACTIVITY_DISABLED", "activity log access is not configured")
		}
	}
	return basicauth.New(basicauth.Config{
		Users: users,
		Realm: activityRealm,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+activityRealm+`"`)
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "activity log requires credentials")
		},
	})
}
