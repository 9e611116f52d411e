package handler

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"licenseadmin/internal/model"
	"licenseadmin/internal/service"
	"licenseadmin/internal/view"
)

const (
	headingValidate = "Validate License"
	headingCreate   = "Create License (Admin)"
	headingStats    = "License Statistics (Admin)"
	headingActivity = "Activity"
)

// ValidatePage renders the empty validate form.
func ValidatePage(pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, pages, fiber.StatusOK, view.PageValidate, view.Page{
			Heading: headingValidate,
			Nav:     "validate",
		})
	}
}

// SubmitValidate handles the validate form.
func SubmitValidate(svc service.LicenseService, pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.ValidateInput{
			LicenseKey: c.FormValue("license_key"),
			MachineID:  c.FormValue("machine_id"),
			Platform:   c.FormValue("platform"),
			Arch:       c.FormValue("arch"),
		}
		page := view.Page{
			Heading: headingValidate,
			Nav:     "validate",
			Form: map[string]string{
				"license_key": in.LicenseKey,
				"machine_id":  in.MachineID,
				"platform":    in.Platform,
				"arch":        in.Arch,
			},
		}

		res, err := svc.Validate(c.UserContext(), in)
		if err != nil {
			page.Result = view.Failure(model.OperationValidate, err)
			return render(c, pages, failureStatus(err), view.PageValidate, page)
		}
		page.Result = view.ValidateResult(res)
		return render(c, pages, fiber.StatusOK, view.PageValidate, page)
	}
}

// CreatePage renders the empty create form with its defaults.
func CreatePage(pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, pages, fiber.StatusOK, view.PageCreate, view.Page{
			Heading: headingCreate,
			Nav:     "create",
			Form: map[string]string{
				"expires_in_days": strconv.Itoa(service.DefaultExpiresInDays),
				"max_instances":   strconv.Itoa(service.DefaultMaxInstances),
			},
		})
	}
}

// SubmitCreate handles the create form. The admin token is never echoed back.
func SubmitCreate(svc service.LicenseService, pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := view.Page{
			Heading: headingCreate,
			Nav:     "create",
			Form: map[string]string{
				"license_key":     c.FormValue("license_key"),
				"expires_in_days": c.FormValue("expires_in_days", strconv.Itoa(service.DefaultExpiresInDays)),
				"max_instances":   c.FormValue("max_instances", strconv.Itoa(service.DefaultMaxInstances)),
			},
		}

		in, err := createInputFromForm(c)
		if err == nil {
			var res *model.CreateResult
			res, err = svc.Create(c.UserContext(), in)
			if err == nil {
				page.Result = view.CreateResult(res)
				return render(c, pages, fiber.StatusOK, view.PageCreate, page)
			}
		}

		page.Result = view.Failure(model.OperationCreate, err)
		return render(c, pages, failureStatus(err), view.PageCreate, page)
	}
}

// StatsPage renders the statistics form.
func StatsPage(pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, pages, fiber.StatusOK, view.PageStats, view.Page{
			Heading: headingStats,
			Nav:     "stats",
		})
	}
}

// SubmitStats fetches statistics with the submitted admin token.
func SubmitStats(svc service.LicenseService, pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := view.Page{Heading: headingStats, Nav: "stats"}

		res, err := svc.Stats(c.UserContext(), c.FormValue("admin_token"))
		if err != nil {
			page.Result = view.Failure(model.OperationStats, err)
			return render(c, pages, failureStatus(err), view.PageStats, page)
		}
		page.Result = view.StatsResult(res)
		return render(c, pages, fiber.StatusOK, view.PageStats, page)
	}
}

// ActivityLog renders a page of recorded interactions.
func ActivityLog(svc service.ActivityService, pages *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return render(c, pages, fiber.StatusOK, view.PageActivity, view.Page{
			Heading:  headingActivity,
			Nav:      "activity",
			Activity: view.NewActivityPage(res.Items, res.Total, res.Limit, res.Offset),
		})
	}
}

func createInputFromForm(c *fiber.Ctx) (service.CreateInput, error) {
	in := service.CreateInput{
		AdminToken: c.FormValue("admin_token"),
		LicenseKey: c.FormValue("license_key"),
	}
	// Token is checked first so a missing token wins over bad numbers.
	if strings.TrimSpace(in.AdminToken) == "" {
		return in, &service.ValidationError{Field: "Admin Token", Reason: "is required"}
	}

	var err error
	if in.ExpiresInDays, err = formInt(c, "expires_in_days", "Expires In Days", service.DefaultExpiresInDays); err != nil {
		return in, err
	}
	if in.MaxInstances, err = formInt(c, "max_instances", "Max Instances", service.DefaultMaxInstances); err != nil {
		return in, err
	}
	return in, nil
}

func formInt(c *fiber.Ctx, key, field string, def int) (int, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: field, Reason: "must be a whole number"}
	}
	return n, nil
}

// apiError is an error response decided before it is written.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) write(c *fiber.Ctx) error {
	return writeError(c, e.status, e.code, e.message)
}

// pagination parses limit/offset query parameters the same way for HTML and JSON.
func pagination(c *fiber.Ctx) (int, int, *apiError) {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		return 0, 0, &apiError{fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit"}
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &apiError{fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}

func failureStatus(err error) int {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusBadGateway
}

func render(c *fiber.Ctx, pages *view.Renderer, status int, page string, data view.Page) error {
	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
