package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"licenseadmin/docs"
)

// RegisterSwagger serves the JSON API docs under /swagger/*.
// The shared swag spec is filled in here, once, before any request can read it;
// handlers never write to it. An empty host makes Swagger UI use its own origin.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = nil

	app.Get("/swagger/*", swagger.HandlerDefault)
}
