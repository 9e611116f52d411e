package handler

import (
	"github.com/gofiber/fiber/v2"

	"licenseadmin/internal/service"
	"licenseadmin/internal/view"
)

// RegisterRoutes attaches the console pages, the JSON API and health probes.
// db may be nil when the activity log is not persisted. activityGuard runs
// before both activity routes.
func RegisterRoutes(app *fiber.App, db Pinger, licenses service.LicenseService, activity service.ActivityService, pages *view.Renderer, activityGuard fiber.Handler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/validate", fiber.StatusFound)
	})

	app.Get("/validate", ValidatePage(pages))
	app.Post("/validate", SubmitValidate(licenses, pages))
	app.Get("/create", CreatePage(pages))
	app.Post("/create", SubmitCreate(licenses, pages))
	app.Get("/stats", StatsPage(pages))
	app.Post("/stats", SubmitStats(licenses, pages))
	app.Get("/activity", activityGuard, ActivityLog(activity, pages))

	api := app.Group("/api/v1")
	api.Post("/licenses/validate", APIValidateLicense(licenses))
	api.Post("/licenses", APICreateLicense(licenses))
	api.Get("/stats", APIStats(licenses))
	api.Get("/activity", activityGuard, APIActivity(activity))

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
}
