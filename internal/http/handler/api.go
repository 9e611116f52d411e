package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"licenseadmin/internal/service"
)

// createLicenseRequest is the JSON body of POST /api/v1/licenses.
// Omitted numbers fall back to the form defaults.
type createLicenseRequest struct {
	LicenseKey    string `json:"license_key"`
	ExpiresInDays *int   `json:"expires_in_days"`
	MaxInstances  *int   `json:"max_instances"`
}

// APIValidateLicense godoc
// @Summary Validate a license key
// @Tags licenses
// @Accept json
// @Produce json
// @Param body body service.ValidateInput true "license key and device fingerprint"
// @Success 200 {object} model.ValidateResult
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/v1/licenses/validate [post]
func APIValidateLicense(svc service.LicenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ValidateInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		res, err := svc.Validate(c.UserContext(), in)
		if err != nil {
			return apiFailure(err).write(c)
		}
		return c.JSON(res)
	}
}

// APICreateLicense godoc
// @Summary Create a license
// @Tags licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createLicenseRequest true "license parameters"
// @Success 201 {object} model.CreateResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/v1/licenses [post]
func APICreateLicense(svc service.LicenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return writeError(c, fiber.StatusUnauthorized, "ADMIN_TOKEN_REQUIRED", "Admin Token is required")
		}

		var body createLicenseRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		in := service.CreateInput{
			AdminToken:    token,
			LicenseKey:    body.LicenseKey,
			ExpiresInDays: service.DefaultExpiresInDays,
			MaxInstances:  service.DefaultMaxInstances,
		}
		if body.ExpiresInDays != nil {
			in.ExpiresInDays = *body.ExpiresInDays
		}
		if body.MaxInstances != nil {
			in.MaxInstances = *body.MaxInstances
		}

		res, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return apiFailure(err).write(c)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// APIStats godoc
// @Summary License statistics
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Stats
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/v1/stats [get]
func APIStats(svc service.LicenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return writeError(c, fiber.StatusUnauthorized, "ADMIN_TOKEN_REQUIRED", "Admin Token is required")
		}

		res, err := svc.Stats(c.UserContext(), token)
		if err != nil {
			return apiFailure(err).write(c)
		}
		return c.JSON(res)
	}
}

// APIActivity godoc
// @Summary Recorded console activity
// @Tags activity
// @Produce json
// @Param limit query int false "page size" default(20)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.ActivityListResult
// @Failure 400 {object} errorPayload
// @Router /api/v1/activity [get]
func APIActivity(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// apiFailure maps service errors: input problems are 400, anything else came
// from the license API and is 502 with its text.
func apiFailure(err error) *apiError {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return &apiError{fiber.StatusBadRequest, "VALIDATION_ERROR", vErr.Error()}
	}
	return &apiError{fiber.StatusBadGateway, "UPSTREAM_ERROR", "license api request failed: " + err.Error()}
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
